package statestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	runLockDirName   = ".generation.lock"
	runLockOwnerFile = "owner.json"
)

// RunLock guards a generation state file against a second concurrent
// skillgen process writing to it. Acquisition is a mkdir, which is atomic on
// every filesystem we care about.
type RunLock struct {
	lockDir string
}

type runLockOwner struct {
	PID       int    `json:"pid"`
	CreatedAt string `json:"created_at"`
	Hostname  string `json:"hostname,omitempty"`
}

func AcquireRunLock(statePath string) (RunLock, error) {
	target := strings.TrimSpace(statePath)
	if target == "" {
		return RunLock{}, fmt.Errorf("state file path is required")
	}

	lockDir := filepath.Join(filepath.Dir(target), runLockDirName)
	if err := os.MkdirAll(filepath.Dir(lockDir), 0o755); err != nil {
		return RunLock{}, fmt.Errorf("create parent for lock %s: %w", lockDir, err)
	}
	if err := os.Mkdir(lockDir, 0o755); err != nil {
		if os.IsExist(err) {
			ownerPath := filepath.Join(lockDir, runLockOwnerFile)
			var owner runLockOwner
			if readErr := ReadJSON(ownerPath, &owner); readErr == nil && owner.PID > 0 && owner.CreatedAt != "" {
				return RunLock{}, fmt.Errorf(
					"generation state is locked: %s (pid=%d created_at=%s host=%s)",
					target, owner.PID, owner.CreatedAt, owner.Hostname,
				)
			}
			return RunLock{}, fmt.Errorf("generation state is locked: %s", target)
		}
		return RunLock{}, fmt.Errorf("acquire generation lock for %s: %w", target, err)
	}

	owner := runLockOwner{
		PID:       os.Getpid(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Hostname:  hostnameOrUnknown(),
	}
	ownerPath := filepath.Join(lockDir, runLockOwnerFile)
	if err := WriteJSON(ownerPath, owner); err != nil {
		_ = os.Remove(lockDir)
		return RunLock{}, fmt.Errorf("write generation lock owner for %s: %w", target, err)
	}

	return RunLock{lockDir: lockDir}, nil
}

func (l RunLock) Release() error {
	if strings.TrimSpace(l.lockDir) == "" {
		return nil
	}
	_ = os.Remove(filepath.Join(l.lockDir, runLockOwnerFile))
	if err := os.Remove(l.lockDir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("release generation lock %s: %w", l.lockDir, err)
	}
	return nil
}

func hostnameOrUnknown() string {
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	host = strings.TrimSpace(host)
	if host == "" {
		return "unknown"
	}
	return host
}
