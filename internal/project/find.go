// Package project locates the Claude Code project root that Context Sentry
// operates on.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound indicates no project root was found.
var ErrNotFound = errors.New("not inside a Claude Code project")

// Marker identifies a project root. Claude Code keeps per-project
// configuration in a .claude directory at the repository root.
const Marker = ".claude"

// EnvProjectDir is exported by Claude Code when it invokes a hook.
const EnvProjectDir = "CLAUDE_PROJECT_DIR"

// Find locates the project root by walking up from startDir to the first
// directory containing a .claude directory. Does not resolve symlinks to
// stay consistent with os.Getwd(). Returns ErrNotFound when no marker
// exists on the path to the filesystem root.
func Find(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	current := absDir
	for {
		if info, err := os.Stat(filepath.Join(current, Marker)); err == nil && info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNotFound
		}
		current = parent
	}
}

// FindFromCwd locates the project root from the current working directory.
func FindFromCwd() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return Find(cwd)
}

// Resolve returns the project root for this invocation. CLAUDE_PROJECT_DIR
// wins when set; otherwise the root is found by walking up from the current
// directory.
func Resolve() (string, error) {
	if dir := os.Getenv(EnvProjectDir); dir != "" {
		return dir, nil
	}
	return FindFromCwd()
}

// RootOrCwd resolves the project root, falling back to the current working
// directory when none is found. The hook path uses this so state can live
// under a .claude directory created beside wherever the session runs.
func RootOrCwd() string {
	root, err := Resolve()
	if err == nil {
		return root
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}
