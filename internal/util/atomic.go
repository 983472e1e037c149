// Package util provides small filesystem helpers shared across Context Sentry.
package util

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriteFile writes data to path via a temporary file and rename, so a
// concurrent reader never observes a partially written file. The rename is
// atomic on POSIX systems.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmpFile := path + ".tmp"

	if err := os.WriteFile(tmpFile, data, perm); err != nil {
		return err
	}

	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return nil
}

// AtomicWriteJSON marshals v with two-space indentation and writes it
// atomically. Indented output keeps the state file human-inspectable.
func AtomicWriteJSON(path string, v interface{}, perm os.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	return AtomicWriteFile(path, data, perm)
}

// EnsureParentDir creates the directory containing path if it is missing.
// The state and journal files live under .claude/, which may not exist yet
// in a fresh project.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}
