package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/catalog"
	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/genapi"
	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/statestore"
)

// fakeGenerator fails every prompt listed in failing and records how many
// calls it received in total.
type fakeGenerator struct {
	calls   int
	prompts []string
	failing map[string]bool
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.failing[prompt] {
		return "", &genapi.Error{Message: "simulated API failure"}
	}
	return "# Document for: " + prompt + "\n", nil
}

func testJobs() []catalog.Job {
	return []catalog.Job{
		{BatchID: "01", Category: "Foundations", Name: "a", Path: "01-foundations/a/SKILL.md", Prompt: "prompt-a", Priority: catalog.PriorityHigh},
		{BatchID: "01", Category: "Foundations", Name: "b", Path: "01-foundations/b/SKILL.md", Prompt: "prompt-b", Priority: catalog.PriorityMedium},
		{BatchID: "02", Category: "Frontend", Name: "c", Path: "02-frontend/c/SKILL.md", Prompt: "prompt-c", Priority: catalog.PriorityHigh},
		{BatchID: "03", Category: "Backend", Name: "d", Path: "03-backend/d/SKILL.md", Prompt: "prompt-d", Priority: catalog.PriorityLow},
	}
}

func testRunOptions(t *testing.T, gen genapi.Generator) (RunOptions, statestore.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := statestore.New(filepath.Join(dir, "generation_state.json"))
	opts := RunOptions{
		Jobs:       testJobs(),
		Store:      store,
		Client:     gen,
		OutputRoot: filepath.Join(dir, "out"),
		Delay:      0,
		Log:        &bytes.Buffer{},
	}
	return opts, store, dir
}

func TestRunMixedSuccessAndFailure(t *testing.T) {
	gen := &fakeGenerator{failing: map[string]bool{"prompt-b": true}}
	opts, store, dir := testRunOptions(t, gen)

	result, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Mode != ModeAll || result.Selected != 4 || result.Processed != 4 {
		t.Fatalf("unexpected result shape: %+v", result)
	}
	if result.Succeeded != 3 || result.Failed != 1 || result.Skipped != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.FailedPaths) != 1 || result.FailedPaths[0] != "01-foundations/b/SKILL.md" {
		t.Fatalf("unexpected failed paths: %v", result.FailedPaths)
	}
	if result.Interrupted {
		t.Fatal("run must not report interruption")
	}

	state, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !state.IsGenerated("01-foundations/a/SKILL.md") || !state.IsFailed("01-foundations/b/SKILL.md") {
		t.Fatalf("state not persisted per job: %+v", state)
	}

	doc, err := os.ReadFile(filepath.Join(dir, "out", "01-foundations/a/SKILL.md"))
	if err != nil {
		t.Fatalf("expected generated document on disk: %v", err)
	}
	if string(doc) != "# Document for: prompt-a\n" {
		t.Fatalf("unexpected document content %q", doc)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "01-foundations/b/SKILL.md")); err == nil {
		t.Fatal("failed job must not leave a document behind")
	}
}

func TestRunSkipsCompletedJobsWithoutCallingGenerator(t *testing.T) {
	gen := &fakeGenerator{}
	opts, _, _ := testRunOptions(t, gen)

	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if gen.calls != 4 {
		t.Fatalf("expected 4 generation calls on first run, got %d", gen.calls)
	}

	result, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if gen.calls != 4 {
		t.Fatalf("second run must not re-invoke the generator, got %d calls", gen.calls)
	}
	if result.Skipped != 4 || result.Succeeded != 4 || result.Failed != 0 {
		t.Fatalf("expected all skips counted as successes: %+v", result)
	}
}

func TestRunBatchAndRangeSelection(t *testing.T) {
	gen := &fakeGenerator{}
	opts, _, _ := testRunOptions(t, gen)
	opts.BatchID = "02"

	result, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.Mode != ModeBatch || result.Selected != 1 || gen.calls != 1 {
		t.Fatalf("unexpected batch selection: %+v calls=%d", result, gen.calls)
	}

	gen2 := &fakeGenerator{}
	opts2, _, _ := testRunOptions(t, gen2)
	opts2.StartBatch = "01"
	opts2.EndBatch = "02"

	result2, err := Run(context.Background(), opts2)
	if err != nil {
		t.Fatal(err)
	}
	if result2.Mode != ModeRange || result2.Selected != 3 {
		t.Fatalf("unexpected range selection: %+v", result2)
	}
	if gen2.prompts[len(gen2.prompts)-1] != "prompt-c" {
		t.Fatalf("range must end at batch 02, last prompt %q", gen2.prompts[len(gen2.prompts)-1])
	}
}

func TestRunPrioritySelection(t *testing.T) {
	gen := &fakeGenerator{}
	opts, _, _ := testRunOptions(t, gen)
	opts.Priority = catalog.PriorityHigh

	result, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.Mode != ModePriority || result.Selected != 2 {
		t.Fatalf("unexpected priority selection: %+v", result)
	}
	if gen.prompts[0] != "prompt-a" || gen.prompts[1] != "prompt-c" {
		t.Fatalf("priority jobs must run in catalog order: %v", gen.prompts)
	}

	opts.Priority = "urgent"
	if _, err := Run(context.Background(), opts); err == nil {
		t.Fatal("expected error for unknown priority")
	}
}

func TestRunRetryClearsAndReattemptsFailures(t *testing.T) {
	gen := &fakeGenerator{failing: map[string]bool{"prompt-b": true, "prompt-d": true}}
	opts, store, _ := testRunOptions(t, gen)

	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatal(err)
	}

	// Failures fixed upstream; retry must re-invoke exactly the failed jobs.
	gen.failing = nil
	opts.Retry = true
	callsBefore := gen.calls

	result, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.Mode != ModeRetry || result.Selected != 2 {
		t.Fatalf("unexpected retry selection: %+v", result)
	}
	if got := gen.calls - callsBefore; got != 2 {
		t.Fatalf("expected 2 retry calls, got %d", got)
	}
	if result.Succeeded != 2 || result.Skipped != 0 {
		t.Fatalf("retried jobs must not be skipped: %+v", result)
	}

	state, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Failed) != 0 || len(state.Generated) != 4 {
		t.Fatalf("expected all jobs generated after retry: %+v", state)
	}
}

func TestRunRetryDropsPathsMissingFromCatalog(t *testing.T) {
	gen := &fakeGenerator{}
	opts, store, _ := testRunOptions(t, gen)

	if err := store.MarkFailed("removed/from/catalog/SKILL.md"); err != nil {
		t.Fatal(err)
	}
	if err := store.MarkFailed("02-frontend/c/SKILL.md"); err != nil {
		t.Fatal(err)
	}

	opts.Retry = true
	result, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.Selected != 1 || gen.calls != 1 || gen.prompts[0] != "prompt-c" {
		t.Fatalf("expected only the catalog-resolvable failure to run: %+v prompts=%v", result, gen.prompts)
	}

	state, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Failed) != 0 {
		t.Fatalf("retry must clear the failed set even for dropped paths: %v", state.Failed)
	}
}

func TestRunEmptySelectionIsNoOp(t *testing.T) {
	gen := &fakeGenerator{}
	opts, _, _ := testRunOptions(t, gen)
	opts.BatchID = "99"

	result, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.Selected != 0 || result.Processed != 0 || gen.calls != 0 {
		t.Fatalf("expected a no-op run: %+v calls=%d", result, gen.calls)
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	gen := &fakeGenerator{}
	opts, store, dir := testRunOptions(t, gen)
	opts.DryRun = true

	result, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.Selected != 4 || gen.calls != 0 {
		t.Fatalf("dry run must not invoke the generator: %+v calls=%d", result, gen.calls)
	}

	state, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Generated) != 0 || len(state.Failed) != 0 {
		t.Fatalf("dry run must not mutate state: %+v", state)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); err == nil {
		t.Fatal("dry run must not write documents")
	}
}

func TestRunRetryDryRunKeepsFailedSet(t *testing.T) {
	gen := &fakeGenerator{}
	opts, store, _ := testRunOptions(t, gen)

	if err := store.MarkFailed("01-foundations/b/SKILL.md"); err != nil {
		t.Fatal(err)
	}

	opts.Retry = true
	opts.DryRun = true
	result, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.Mode != ModeRetry || result.Selected != 1 {
		t.Fatalf("dry run must still list the retry selection: %+v", result)
	}
	if gen.calls != 0 {
		t.Fatalf("dry run must not invoke the generator, got %d calls", gen.calls)
	}

	state, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !state.IsFailed("01-foundations/b/SKILL.md") {
		t.Fatalf("dry run must not clear the failed set: %+v", state)
	}

	// The real retry afterwards still sees the failure.
	opts.DryRun = false
	result, err = Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.Selected != 1 || result.Succeeded != 1 || gen.calls != 1 {
		t.Fatalf("retry after dry run must attempt the failed job: %+v calls=%d", result, gen.calls)
	}
}

func TestRunPacesBetweenGenerationCallsOnly(t *testing.T) {
	gen := &fakeGenerator{}
	opts, _, _ := testRunOptions(t, gen)
	log := &bytes.Buffer{}
	opts.Log = log
	opts.Delay = 5 * time.Millisecond

	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(log.String(), "waiting"); got != 3 {
		t.Fatalf("expected 3 pacing waits for 4 generated jobs, got %d:\n%s", got, log.String())
	}

	// All jobs complete now; a second run is pure skips with no pacing.
	log.Reset()
	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(log.String(), "waiting"); got != 0 {
		t.Fatalf("skips must not pace, got %d waits:\n%s", got, log.String())
	}
}

func TestRunCancelledContextReportsInterrupted(t *testing.T) {
	gen := &fakeGenerator{}
	opts, store, _ := testRunOptions(t, gen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Interrupted || result.Processed != 0 || gen.calls != 0 {
		t.Fatalf("expected immediate interruption: %+v calls=%d", result, gen.calls)
	}

	state, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Failed) != 0 {
		t.Fatalf("interruption must not mark jobs failed: %v", state.Failed)
	}
}

func TestRunStopsBetweenJobsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &cancellingGenerator{cancel: cancel, after: 2}
	opts, store, _ := testRunOptions(t, gen)

	result, err := Run(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Interrupted {
		t.Fatalf("expected interrupted run: %+v", result)
	}
	if result.Processed != 2 || result.Succeeded != 2 {
		t.Fatalf("expected two completed jobs before the stop: %+v", result)
	}

	state, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Generated) != 2 || len(state.Failed) != 0 {
		t.Fatalf("completed work must survive the interrupt: %+v", state)
	}
}

func TestBatchOutcomesAggregatePerBatch(t *testing.T) {
	gen := &fakeGenerator{failing: map[string]bool{"prompt-b": true}}
	opts, _, _ := testRunOptions(t, gen)

	result, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Batches) != 3 {
		t.Fatalf("expected 3 batch outcomes, got %v", result.Batches)
	}

	first := result.Batches[0]
	if first.BatchID != "01" || first.Total != 2 || first.Succeeded != 1 || first.Failed != 1 {
		t.Fatalf("unexpected batch 01 outcome: %+v", first)
	}
	last := result.Batches[2]
	if last.BatchID != "03" || last.Total != 1 || last.Succeeded != 1 {
		t.Fatalf("unexpected batch 03 outcome: %+v", last)
	}
}

// cancellingGenerator cancels the run's context once it has produced the
// configured number of documents, simulating Ctrl-C mid-run.
type cancellingGenerator struct {
	cancel context.CancelFunc
	after  int
	calls  int
}

func (c *cancellingGenerator) Generate(_ context.Context, _ string) (string, error) {
	c.calls++
	text := fmt.Sprintf("# Document %d\n", c.calls)
	if c.calls == c.after {
		c.cancel()
	}
	return text, nil
}
