// Package state persists trigger history between hook invocations.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/ctxsentry/ctxsentry/internal/trigger"
	"github.com/ctxsentry/ctxsentry/internal/util"
)

// Filename is the state file name under the project's .claude directory.
// Dotted so it stays out of casual listings; install adds it to .gitignore.
const Filename = ".context_sentry_state.json"

// writeLockTimeout bounds lock acquisition. The hook sits on the critical
// path of every tool call, so a contended lock must not stall it.
const writeLockTimeout = 2 * time.Second

// Store reads and writes the persisted trigger state for one project.
type Store struct {
	path string
}

// NewStore returns a store for the given project root.
func NewStore(projectDir string) *Store {
	return &Store{path: filepath.Join(projectDir, ".claude", Filename)}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a state file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Read loads the persisted state. Absent, unreadable or corrupt files all
// read as the zero state; the evaluator must always be able to proceed.
func (s *Store) Read() trigger.State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return trigger.State{}
	}

	var st trigger.State
	if err := json.Unmarshal(data, &st); err != nil {
		return trigger.State{}
	}
	return st
}

// Write replaces the persisted state wholesale. The record lands via
// temp-file rename under an exclusive flock, so overlapping hook
// invocations cannot interleave a partial record. On lock timeout the
// write proceeds unlocked rather than stall the tool call.
func (s *Store) Write(st trigger.State) error {
	if err := util.EnsureParentDir(s.path); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), writeLockTimeout)
	defer cancel()

	if locked, err := lock.TryLockContext(ctx, 100*time.Millisecond); err == nil && locked {
		defer lock.Unlock()
	}

	return util.AtomicWriteJSON(s.path, st, 0600)
}

// Clear removes the persisted state file. Missing files are not an error.
// The evaluator itself never deletes state; this is the external reset.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing state: %w", err)
	}
	return nil
}
