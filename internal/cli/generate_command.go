package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/catalog"
	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/genapi"
	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/orchestrator"
	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/statestore"
)

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	catalogPath := fs.String("catalog", catalog.DefaultPath, "prompts catalog path")
	statePath := fs.String("state", statestore.DefaultPath, "generation state file path")
	outputRoot := fs.String("output-root", "", "root directory generated skill paths are written under")
	batch := fs.String("batch", "", `batch id ("01") or inclusive range ("01-05")`)
	priority := fs.String("priority", "", "generate by priority: low|medium|high")
	retry := fs.Bool("retry", false, "retry previously failed skills")
	delay := fs.Int("delay", 5, "delay between requests (seconds)")
	report := fs.Bool("report", false, "export generation report after the run")
	reportOut := fs.String("report-out", orchestrator.DefaultReportPath, "report output path")
	dryRun := fs.Bool("dry-run", false, "list selected jobs without generating or touching state")
	model := fs.String("model", genapi.DefaultModel, "generation model")
	maxTokens := fs.Int("max-tokens", genapi.DefaultMaxTokens, "max tokens per generated skill")
	baseURL := fs.String("base-url", "", "generation API base URL override")
	jsonOut := fs.Bool("json", false, "print JSON output")

	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *delay < 0 {
		return errors.New("--delay must be >= 0 seconds")
	}

	startBatch, endBatch, batchID, err := parseBatchSelector(*batch)
	if err != nil {
		return err
	}

	// Catalog problems are fatal: nothing is attempted on a partial catalog.
	jobs, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}

	store := statestore.New(*statePath)
	opts := orchestrator.RunOptions{
		Jobs:       jobs,
		Store:      store,
		Retry:      *retry,
		Priority:   strings.ToLower(strings.TrimSpace(*priority)),
		BatchID:    batchID,
		StartBatch: startBatch,
		EndBatch:   endBatch,
		OutputRoot: strings.TrimSpace(*outputRoot),
		Delay:      time.Duration(*delay) * time.Second,
		DryRun:     *dryRun,
	}
	if *jsonOut {
		// Keep stdout parseable; progress lines go to stderr.
		opts.Log = os.Stderr
	}

	if !*dryRun {
		lock, err := statestore.AcquireRunLock(*statePath)
		if err != nil {
			return err
		}
		defer func() {
			_ = lock.Release()
		}()

		client, err := genapi.NewClient(genapi.Options{
			BaseURL:   strings.TrimSpace(*baseURL),
			Model:     strings.TrimSpace(*model),
			MaxTokens: *maxTokens,
		})
		if err != nil {
			return err
		}
		opts.Client = client
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := orchestrator.Run(ctx, opts)
	if err != nil {
		return err
	}

	var reportResult *orchestrator.ReportResult
	if *report && !*dryRun {
		rr, err := orchestrator.ExportReport(store, strings.TrimSpace(*reportOut))
		if err != nil {
			return err
		}
		reportResult = &rr
	}

	if *jsonOut {
		if err := printJSON(result); err != nil {
			return err
		}
	} else {
		printRunSummary(result, reportResult)
	}

	if result.Interrupted {
		// State is already persisted per job; this save is a safety net.
		if state, loadErr := store.Load(); loadErr == nil {
			_ = store.Save(state)
		}
		return errors.New("interrupted by user; progress has been saved")
	}
	return nil
}

// parseBatchSelector splits the --batch value into either an exact id or an
// inclusive start-end range. Range comparison downstream is lexicographic,
// so zero-padded batch ids are expected.
func parseBatchSelector(raw string) (start, end, exact string, err error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", "", "", nil
	}
	if !strings.Contains(v, "-") {
		return "", "", v, nil
	}
	parts := strings.SplitN(v, "-", 2)
	start = strings.TrimSpace(parts[0])
	end = strings.TrimSpace(parts[1])
	if start == "" || end == "" {
		return "", "", "", fmt.Errorf("invalid batch range %q (expected start-end, e.g. 01-05)", raw)
	}
	if start > end {
		return "", "", "", fmt.Errorf("invalid batch range %q: start sorts after end", raw)
	}
	return start, end, "", nil
}

func printRunSummary(result orchestrator.RunResult, report *orchestrator.ReportResult) {
	fmt.Println("run summary")
	fmt.Printf("mode: %s\n", result.Mode)
	fmt.Printf("selected: %d\n", result.Selected)
	fmt.Printf("processed: %d\n", result.Processed)
	fmt.Printf("succeeded: %d\n", result.Succeeded)
	fmt.Printf("failed: %d\n", result.Failed)
	fmt.Printf("skipped_already_generated: %d\n", result.Skipped)
	for _, b := range result.Batches {
		fmt.Printf("batch %s: %d/%d succeeded, %d failed\n", b.BatchID, b.Succeeded, b.Total, b.Failed)
	}
	if len(result.FailedPaths) > 0 {
		fmt.Println("failed skills:")
		for _, p := range result.FailedPaths {
			fmt.Printf("  - %s\n", p)
		}
		fmt.Println("next: rerun `skillgen generate --retry` to retry failed skills")
	}
	if report != nil {
		fmt.Printf("report: %s\n", report.OutPath)
	}
}
