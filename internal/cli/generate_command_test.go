package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/statestore"
)

func TestParseBatchSelector(t *testing.T) {
	cases := []struct {
		raw     string
		start   string
		end     string
		exact   string
		wantErr bool
	}{
		{raw: ""},
		{raw: "01", exact: "01"},
		{raw: " 03 ", exact: "03"},
		{raw: "01-05", start: "01", end: "05"},
		{raw: "02-02", start: "02", end: "02"},
		{raw: "01-", wantErr: true},
		{raw: "-05", wantErr: true},
		{raw: "05-01", wantErr: true},
	}
	for _, tc := range cases {
		start, end, exact, err := parseBatchSelector(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.raw, err)
		}
		if start != tc.start || end != tc.end || exact != tc.exact {
			t.Fatalf("%q: got (%q,%q,%q), want (%q,%q,%q)", tc.raw, start, end, exact, tc.start, tc.end, tc.exact)
		}
	}
}

const testCatalogJSON = `{
  "batches": [
    {
      "batch": "01",
      "category": "Foundations",
      "skills": [
        {"name": "a", "path": "01-foundations/a/SKILL.md", "prompt": "prompt-a"},
        {"name": "b", "path": "01-foundations/b/SKILL.md", "prompt": "prompt-b"}
      ]
    }
  ]
}`

// fakeGenServer answers the messages endpoint, failing prompts listed in
// failing with an HTTP 500.
func fakeGenServer(t *testing.T, failing map[string]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		prompt := req.Messages[0].Content
		if failing[prompt] {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"type": "api_error", "message": "boom"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "# Doc for " + prompt + "\n"}},
		})
	}))
}

func writeTestCatalog(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "prompts.json")
	if err := os.WriteFile(path, []byte(testCatalogJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerateCommandEndToEnd(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	srv := fakeGenServer(t, map[string]bool{"prompt-b": true})
	defer srv.Close()

	dir := t.TempDir()
	catalogPath := writeTestCatalog(t, dir)
	statePath := filepath.Join(dir, "state.json")
	outRoot := filepath.Join(dir, "out")

	err := Run([]string{
		"generate",
		"--catalog", catalogPath,
		"--state", statePath,
		"--output-root", outRoot,
		"--base-url", srv.URL,
		"--delay", "0",
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	state, err := statestore.New(statePath).Load()
	if err != nil {
		t.Fatal(err)
	}
	if !state.IsGenerated("01-foundations/a/SKILL.md") || !state.IsFailed("01-foundations/b/SKILL.md") {
		t.Fatalf("unexpected state after run: %+v", state)
	}
	if _, err := os.Stat(filepath.Join(outRoot, "01-foundations/a/SKILL.md")); err != nil {
		t.Fatalf("expected generated document: %v", err)
	}

	// The lock directory must be gone after the run.
	if _, err := os.Stat(filepath.Join(dir, ".generation.lock")); err == nil {
		t.Fatal("run lock not released")
	}
}

func TestGenerateCommandRetryFlow(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	dir := t.TempDir()
	catalogPath := writeTestCatalog(t, dir)
	statePath := filepath.Join(dir, "state.json")
	outRoot := filepath.Join(dir, "out")

	srv := fakeGenServer(t, map[string]bool{"prompt-b": true})
	baseArgs := []string{
		"generate",
		"--catalog", catalogPath,
		"--state", statePath,
		"--output-root", outRoot,
		"--base-url", srv.URL,
		"--delay", "0",
	}
	if err := Run(baseArgs); err != nil {
		t.Fatal(err)
	}
	srv.Close()

	// Failure fixed; the retry run must complete the remaining skill.
	srv2 := fakeGenServer(t, nil)
	defer srv2.Close()
	retryArgs := append([]string{}, baseArgs...)
	for i, a := range retryArgs {
		if a == srv.URL {
			retryArgs[i] = srv2.URL
		}
	}
	retryArgs = append(retryArgs, "--retry")

	if err := Run(retryArgs); err != nil {
		t.Fatalf("retry failed: %v", err)
	}

	state, err := statestore.New(statePath).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Failed) != 0 || len(state.Generated) != 2 {
		t.Fatalf("expected both skills generated after retry: %+v", state)
	}
}

func TestGenerateCommandDryRunNeedsNoAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	dir := t.TempDir()
	catalogPath := writeTestCatalog(t, dir)
	statePath := filepath.Join(dir, "state.json")

	err := Run([]string{
		"generate",
		"--catalog", catalogPath,
		"--state", statePath,
		"--dry-run",
	})
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if _, err := os.Stat(statePath); err == nil {
		t.Fatal("dry run must not create the state file")
	}
}

func TestGenerateCommandRejectsBadFlags(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	dir := t.TempDir()
	catalogPath := writeTestCatalog(t, dir)

	cases := [][]string{
		{"generate", "--catalog", catalogPath, "--delay", "-1"},
		{"generate", "--catalog", catalogPath, "--batch", "05-01", "--dry-run"},
		{"generate", "--catalog", filepath.Join(dir, "missing.json"), "--dry-run"},
	}
	for _, args := range cases {
		if err := Run(args); err == nil {
			t.Fatalf("expected error for args %v", args)
		}
	}
}

func TestGenerateCommandHeldLockFails(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	dir := t.TempDir()
	catalogPath := writeTestCatalog(t, dir)
	statePath := filepath.Join(dir, "state.json")

	lock, err := statestore.AcquireRunLock(statePath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = lock.Release()
	}()

	err = Run([]string{
		"generate",
		"--catalog", catalogPath,
		"--state", statePath,
		"--delay", "0",
	})
	if err == nil {
		t.Fatal("expected error while another run holds the lock")
	}
}

func TestUnknownCommand(t *testing.T) {
	if err := Run([]string{"frobnicate"}); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
