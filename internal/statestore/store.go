package statestore

import (
	"errors"
	"os"
	"time"
)

// DefaultPath matches where the original generation workflow keeps its state.
const DefaultPath = "tools/generation_state.json"

// State is the persisted progress record: which skill paths have been
// generated and which failed, across process restarts. A path belongs to at
// most one of the two lists at any time.
type State struct {
	Generated   []string `json:"generated"`
	Failed      []string `json:"failed"`
	LastUpdated string   `json:"last_updated,omitempty"`
}

func emptyState() State {
	return State{Generated: []string{}, Failed: []string{}}
}

func (s State) IsGenerated(path string) bool {
	return contains(s.Generated, path)
}

func (s State) IsFailed(path string) bool {
	return contains(s.Failed, path)
}

// Store owns the generation state file. Every mutation reloads the file,
// applies the change, and writes the whole state back, so progress survives
// abrupt termination and no caller ever works from a stale cached copy.
type Store struct {
	path string
}

func New(path string) Store {
	if path == "" {
		path = DefaultPath
	}
	return Store{path: path}
}

func (s Store) Path() string {
	return s.path
}

// Load reads the persisted state. An absent file is a first run and yields an
// empty state without error.
func (s Store) Load() (State, error) {
	var state State
	if err := ReadJSON(s.path, &state); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return emptyState(), nil
		}
		return State{}, err
	}
	if state.Generated == nil {
		state.Generated = []string{}
	}
	if state.Failed == nil {
		state.Failed = []string{}
	}
	return state, nil
}

// Save persists the full state, stamping last_updated.
func (s Store) Save(state State) error {
	state.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	if state.Generated == nil {
		state.Generated = []string{}
	}
	if state.Failed == nil {
		state.Failed = []string{}
	}
	return WriteJSON(s.path, state)
}

// MarkGenerated records path as completed and drops it from the failed list.
// Re-marking an already generated path is a no-op.
func (s Store) MarkGenerated(path string) error {
	state, err := s.Load()
	if err != nil {
		return err
	}
	state.Failed = remove(state.Failed, path)
	if !contains(state.Generated, path) {
		state.Generated = append(state.Generated, path)
	}
	return s.Save(state)
}

// MarkFailed records path as failed and drops it from the generated list.
// Re-marking an already failed path is a no-op.
func (s Store) MarkFailed(path string) error {
	state, err := s.Load()
	if err != nil {
		return err
	}
	state.Generated = remove(state.Generated, path)
	if !contains(state.Failed, path) {
		state.Failed = append(state.Failed, path)
	}
	return s.Save(state)
}

// ClearFailed empties the failed list and returns the paths it held. The
// retry flow clears eagerly before attempting anything, so a crash mid-retry
// cannot re-mark untried jobs with stale failures.
func (s Store) ClearFailed() ([]string, error) {
	state, err := s.Load()
	if err != nil {
		return nil, err
	}
	failed := state.Failed
	state.Failed = []string{}
	if err := s.Save(state); err != nil {
		return nil, err
	}
	return failed, nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
