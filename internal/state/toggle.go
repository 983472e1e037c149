package state

import (
	"os"
	"path/filepath"
)

// DisabledMarker is the file whose presence silences the sentry for a
// project. The hook checks it before doing any other work.
const DisabledMarker = ".context_sentry_disabled"

// Environment overrides, strongest first. Useful for one-off sessions
// without touching the marker file.
const (
	EnvDisabled = "CONTEXT_SENTRY_DISABLED"
	EnvEnabled  = "CONTEXT_SENTRY_ENABLED"
)

func markerPath(projectDir string) string {
	return filepath.Join(projectDir, ".claude", DisabledMarker)
}

// Enabled reports whether the sentry should run for this project.
// CONTEXT_SENTRY_ENABLED=1 beats CONTEXT_SENTRY_DISABLED=1 beats the
// marker file; the default is enabled.
func Enabled(projectDir string) bool {
	if os.Getenv(EnvEnabled) == "1" {
		return true
	}
	if os.Getenv(EnvDisabled) == "1" {
		return false
	}
	_, err := os.Stat(markerPath(projectDir))
	return err != nil
}

// SetEnabled creates or removes the disabled marker.
func SetEnabled(projectDir string, on bool) error {
	path := markerPath(projectDir)
	if on {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("disabled by ctxsentry disable\n"), 0644)
}
