package statestore

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRunLockBlocksSecondAcquire(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "generation_state.json")

	lock, err := AcquireRunLock(statePath)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	if _, err := AcquireRunLock(statePath); err == nil {
		t.Fatal("expected second acquire to fail")
	} else if !strings.Contains(err.Error(), "locked") {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	lock2, err := AcquireRunLock(statePath)
	if err != nil {
		t.Fatalf("reacquire after release failed: %v", err)
	}
	_ = lock2.Release()
}
