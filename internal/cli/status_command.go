package cli

import (
	"flag"
	"fmt"

	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/catalog"
	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/orchestrator"
	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/statestore"
)

type batchStatus struct {
	BatchID   string `json:"batch"`
	Category  string `json:"category,omitempty"`
	Total     int    `json:"total"`
	Generated int    `json:"generated"`
	Failed    int    `json:"failed"`
	Pending   int    `json:"pending"`
}

type statusResult struct {
	CatalogPath string        `json:"catalog_path"`
	StatePath   string        `json:"state_path"`
	LastUpdated string        `json:"last_updated,omitempty"`
	Total       int           `json:"total"`
	Generated   int           `json:"generated"`
	Failed      int           `json:"failed"`
	Pending     int           `json:"pending"`
	Orphaned    int           `json:"orphaned_state_paths,omitempty"`
	Batches     []batchStatus `json:"batches"`
}

func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	catalogPath := fs.String("catalog", catalog.DefaultPath, "prompts catalog path")
	statePath := fs.String("state", statestore.DefaultPath, "generation state file path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	jobs, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}
	state, err := statestore.New(*statePath).Load()
	if err != nil {
		return err
	}

	result := statusResult{
		CatalogPath: *catalogPath,
		StatePath:   *statePath,
		LastUpdated: state.LastUpdated,
		Total:       len(jobs),
	}

	known := make(map[string]bool, len(jobs))
	byBatch := make(map[string]*batchStatus)
	order := make([]string, 0)
	for _, job := range jobs {
		known[job.Path] = true
		bs, ok := byBatch[job.BatchID]
		if !ok {
			order = append(order, job.BatchID)
			bs = &batchStatus{BatchID: job.BatchID, Category: job.Category}
			byBatch[job.BatchID] = bs
		}
		bs.Total++
		switch {
		case state.IsGenerated(job.Path):
			bs.Generated++
			result.Generated++
		case state.IsFailed(job.Path):
			bs.Failed++
			result.Failed++
		default:
			bs.Pending++
			result.Pending++
		}
	}
	for _, id := range order {
		result.Batches = append(result.Batches, *byBatch[id])
	}
	for _, p := range append(append([]string{}, state.Generated...), state.Failed...) {
		if !known[p] {
			result.Orphaned++
		}
	}

	if *jsonOut {
		return printJSON(result)
	}
	fmt.Println("generation status")
	fmt.Printf("catalog: %s\n", result.CatalogPath)
	fmt.Printf("state: %s\n", result.StatePath)
	if result.LastUpdated != "" {
		fmt.Printf("last_updated: %s\n", result.LastUpdated)
	}
	fmt.Printf("total: %d\n", result.Total)
	fmt.Printf("generated: %d\n", result.Generated)
	fmt.Printf("failed: %d\n", result.Failed)
	fmt.Printf("pending: %d\n", result.Pending)
	if result.Orphaned > 0 {
		fmt.Printf("orphaned_state_paths: %d (in state but not in catalog)\n", result.Orphaned)
	}
	for _, b := range result.Batches {
		fmt.Printf("batch %s (%s): %d generated, %d failed, %d pending of %d\n",
			b.BatchID, b.Category, b.Generated, b.Failed, b.Pending, b.Total)
	}
	if result.Failed > 0 {
		fmt.Println("next: run `skillgen generate --retry` to retry failed skills")
	}
	return nil
}

func runReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	statePath := fs.String("state", statestore.DefaultPath, "generation state file path")
	out := fs.String("out", orchestrator.DefaultReportPath, "report output path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := orchestrator.ExportReport(statestore.New(*statePath), *out)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(result)
	}
	fmt.Printf("report exported to: %s\n", result.OutPath)
	fmt.Printf("generated: %d\n", result.Generated)
	fmt.Printf("failed: %d\n", result.Failed)
	return nil
}
