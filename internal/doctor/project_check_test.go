package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ctxsentry/ctxsentry/internal/state"
)

func TestProjectCheck_MissingMarker(t *testing.T) {
	tmpDir := t.TempDir()

	check := NewProjectCheck()
	result := check.Run(&CheckContext{ProjectDir: tmpDir})

	if result.Status != StatusError {
		t.Errorf("expected StatusError without .claude, got %v", result.Status)
	}
}

func TestProjectCheck_MarkerPresent(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".claude"), 0755); err != nil {
		t.Fatal(err)
	}

	check := NewProjectCheck()
	result := check.Run(&CheckContext{ProjectDir: tmpDir})

	if result.Status != StatusOK {
		t.Errorf("expected StatusOK, got %v: %s", result.Status, result.Message)
	}
}

func TestProjectCheck_MarkerIsFile(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ".claude"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	check := NewProjectCheck()
	result := check.Run(&CheckContext{ProjectDir: tmpDir})

	if result.Status != StatusError {
		t.Errorf("a plain file named .claude is not a project marker, got %v", result.Status)
	}
}

func TestEnabledCheck_DefaultOn(t *testing.T) {
	clearToggleEnv(t)
	tmpDir := t.TempDir()

	check := NewEnabledCheck()
	result := check.Run(&CheckContext{ProjectDir: tmpDir})

	if result.Status != StatusOK {
		t.Errorf("expected StatusOK by default, got %v", result.Status)
	}
}

func TestEnabledCheck_MarkerDisables(t *testing.T) {
	clearToggleEnv(t)
	tmpDir := t.TempDir()
	if err := state.SetEnabled(tmpDir, false); err != nil {
		t.Fatal(err)
	}

	check := NewEnabledCheck()
	result := check.Run(&CheckContext{ProjectDir: tmpDir})

	if result.Status != StatusWarning {
		t.Errorf("expected StatusWarning when disabled, got %v", result.Status)
	}
	if len(result.Details) == 0 {
		t.Error("disabled result should name the cause")
	}
}

func TestEnabledCheck_EnvDisables(t *testing.T) {
	clearToggleEnv(t)
	tmpDir := t.TempDir()
	t.Setenv(state.EnvDisabled, "1")

	check := NewEnabledCheck()
	result := check.Run(&CheckContext{ProjectDir: tmpDir})

	if result.Status != StatusWarning {
		t.Errorf("expected StatusWarning with %s=1, got %v", state.EnvDisabled, result.Status)
	}
}

func clearToggleEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{state.EnvDisabled, state.EnvEnabled} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
