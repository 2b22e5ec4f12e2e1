package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/catalog"
	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/genapi"
	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/statestore"
)

// DefaultDelay is the pacing pause between consecutive generation calls.
const DefaultDelay = 5 * time.Second

const (
	ModeAll      = "all"
	ModeBatch    = "batch"
	ModeRange    = "range"
	ModePriority = "priority"
	ModeRetry    = "retry"
)

type RunOptions struct {
	Jobs   []catalog.Job
	Store  statestore.Store
	Client genapi.Generator

	// Mode selection: Retry wins, then Priority, then BatchID, then the
	// StartBatch/EndBatch range. All empty means every job in catalog order.
	Retry      bool
	Priority   string
	BatchID    string
	StartBatch string
	EndBatch   string

	// OutputRoot is prepended to each job's relative output path.
	OutputRoot string
	Delay      time.Duration
	DryRun     bool

	// Log receives the per-job progress lines. Defaults to os.Stdout.
	Log io.Writer
}

// BatchOutcome aggregates one batch's counts within a run.
type BatchOutcome struct {
	BatchID   string `json:"batch"`
	Category  string `json:"category,omitempty"`
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Skipped   int    `json:"skipped"`
}

// RunResult is returned by value so the orchestrator stays re-invocable;
// nothing accumulates at package level.
type RunResult struct {
	Mode        string         `json:"mode"`
	Selected    int            `json:"selected"`
	Processed   int            `json:"processed"`
	Succeeded   int            `json:"succeeded"`
	Failed      int            `json:"failed"`
	Skipped     int            `json:"skipped"`
	Batches     []BatchOutcome `json:"batches"`
	FailedPaths []string       `json:"failed_paths,omitempty"`
	Interrupted bool           `json:"interrupted,omitempty"`
}

// outcome is the per-attempt result the runner sees. Failures from the
// generation boundary never propagate past the executor.
type outcome struct {
	succeeded   bool
	skipped     bool
	interrupted bool
	reason      string
}

// Run drives the selected job subset strictly sequentially: one job in
// flight, a blocking pacing sleep between generation calls, state persisted
// after every attempt. A cancelled context stops between jobs and reports
// Interrupted; per-job failures are recorded and the run continues.
func Run(ctx context.Context, opts RunOptions) (RunResult, error) {
	log := opts.Log
	if log == nil {
		log = os.Stdout
	}
	delay := opts.Delay
	if delay < 0 {
		delay = 0
	}

	mode, selected, err := selectJobs(opts)
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{
		Mode:        mode,
		Selected:    len(selected),
		FailedPaths: []string{},
	}
	if len(selected) == 0 {
		fmt.Fprintf(log, "no jobs matched (%s); nothing to do\n", mode)
		return result, nil
	}

	if opts.DryRun {
		for i, job := range selected {
			fmt.Fprintf(log, "[%d/%d] would generate %s (batch %s, priority %s)\n", i+1, len(selected), job.Path, job.BatchID, job.Priority)
		}
		result.Batches = batchOutcomes(selected, nil)
		return result, nil
	}

	skipCompleted := !opts.Retry
	outcomes := make(map[string]outcome, len(selected))
	paced := false

	for i, job := range selected {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}
		// Pace against the external rate limit before the next real call,
		// never after the last job and never on account of a pure skip.
		if paced && delay > 0 {
			fmt.Fprintf(log, "waiting %s before next skill...\n", delay)
			if !sleepCtx(ctx, delay) {
				result.Interrupted = true
				break
			}
		}
		paced = false

		out, err := executeJob(ctx, opts.Store, opts.Client, job, opts.OutputRoot, skipCompleted)
		if err != nil {
			return result, err
		}
		if out.interrupted {
			result.Interrupted = true
			break
		}
		outcomes[job.Path] = out
		result.Processed++

		switch {
		case out.skipped:
			result.Skipped++
			result.Succeeded++
			fmt.Fprintf(log, "[%d/%d] skip  %s (already generated)\n", i+1, len(selected), job.Name)
		case out.succeeded:
			result.Succeeded++
			paced = true
			fmt.Fprintf(log, "[%d/%d] done  %s\n", i+1, len(selected), job.Name)
		default:
			result.Failed++
			result.FailedPaths = append(result.FailedPaths, job.Path)
			paced = true
			fmt.Fprintf(log, "[%d/%d] fail  %s: %s\n", i+1, len(selected), job.Name, out.reason)
		}
	}

	result.Batches = batchOutcomes(selected, outcomes)
	return result, nil
}

// executeJob is the unit of failure containment: it checks completion,
// invokes the generator, writes the document, and updates the state store.
// Only state-store persistence errors come back as errors; everything from
// the generation boundary or the output write is folded into the outcome.
func executeJob(ctx context.Context, store statestore.Store, client genapi.Generator, job catalog.Job, outputRoot string, skipCompleted bool) (outcome, error) {
	if skipCompleted {
		state, err := store.Load()
		if err != nil {
			return outcome{}, err
		}
		if state.IsGenerated(job.Path) {
			return outcome{succeeded: true, skipped: true}, nil
		}
	}

	text, genErr := client.Generate(ctx, job.Prompt)
	if genErr == nil {
		outPath := job.Path
		if strings.TrimSpace(outputRoot) != "" {
			outPath = filepath.Join(outputRoot, job.Path)
		}
		if err := writeDocument(outPath, text); err != nil {
			genErr = err
		}
	}

	if genErr != nil {
		// A cancellation that aborted the call in flight is an interrupt,
		// not a job failure; the attempt's result is simply lost.
		if ctx.Err() != nil {
			return outcome{interrupted: true}, nil
		}
		reason := strings.TrimSpace(genErr.Error())
		if err := store.MarkFailed(job.Path); err != nil {
			return outcome{}, err
		}
		return outcome{reason: reason}, nil
	}

	if err := store.MarkGenerated(job.Path); err != nil {
		return outcome{}, err
	}
	return outcome{succeeded: true}, nil
}

func writeDocument(path string, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}
	return nil
}

func selectJobs(opts RunOptions) (string, []catalog.Job, error) {
	switch {
	case opts.Retry:
		// Dry-run must leave the failed set intact: peek instead of clearing.
		var failed []string
		if opts.DryRun {
			state, err := opts.Store.Load()
			if err != nil {
				return "", nil, err
			}
			failed = state.Failed
		} else {
			var err error
			failed, err = opts.Store.ClearFailed()
			if err != nil {
				return "", nil, err
			}
		}
		failedSet := make(map[string]bool, len(failed))
		for _, p := range failed {
			failedSet[p] = true
		}
		// Catalog order; paths with no catalog entry can no longer be
		// retried and are dropped.
		selected := make([]catalog.Job, 0, len(failed))
		for _, j := range opts.Jobs {
			if failedSet[j.Path] {
				selected = append(selected, j)
			}
		}
		return ModeRetry, selected, nil
	case opts.Priority != "":
		if !catalog.IsKnownPriority(opts.Priority) {
			return "", nil, fmt.Errorf("unknown priority %q (expected low, medium, or high)", opts.Priority)
		}
		return ModePriority, catalog.SelectPriority(opts.Jobs, opts.Priority), nil
	case opts.BatchID != "":
		return ModeBatch, catalog.SelectBatch(opts.Jobs, opts.BatchID), nil
	case opts.StartBatch != "" || opts.EndBatch != "":
		return ModeRange, catalog.SelectBatchRange(opts.Jobs, opts.StartBatch, opts.EndBatch), nil
	default:
		return ModeAll, opts.Jobs, nil
	}
}

func batchOutcomes(selected []catalog.Job, outcomes map[string]outcome) []BatchOutcome {
	order := make([]string, 0)
	byID := make(map[string]*BatchOutcome)
	for _, job := range selected {
		bo, ok := byID[job.BatchID]
		if !ok {
			order = append(order, job.BatchID)
			bo = &BatchOutcome{BatchID: job.BatchID, Category: job.Category}
			byID[job.BatchID] = bo
		}
		bo.Total++
		out, attempted := outcomes[job.Path]
		if !attempted {
			continue
		}
		switch {
		case out.skipped:
			bo.Skipped++
			bo.Succeeded++
		case out.succeeded:
			bo.Succeeded++
		default:
			bo.Failed++
		}
	}
	result := make([]BatchOutcome, 0, len(order))
	for _, id := range order {
		result = append(result, *byID[id])
	}
	return result
}

// sleepCtx blocks for d or until ctx is cancelled; reports false on cancel.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
