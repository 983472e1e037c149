package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearSentryEnv unsets every sentry variable with restore-on-cleanup, so
// tests see only the layers they set up.
func clearSentryEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvThresholdKB, EnvBackoffMin, EnvBackoffDeltaKB, EnvDebug} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfigFile(t *testing.T, projectDir, content string) {
	t.Helper()
	path := FilePath(projectDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearSentryEnv(t)

	cfg := Load(t.TempDir())

	if cfg.ThresholdKB != DefaultThresholdKB {
		t.Errorf("ThresholdKB = %d, want %d", cfg.ThresholdKB, DefaultThresholdKB)
	}
	if cfg.BackoffMin != DefaultBackoffMin {
		t.Errorf("BackoffMin = %d, want %d", cfg.BackoffMin, DefaultBackoffMin)
	}
	if cfg.BackoffDeltaKB != DefaultBackoffDeltaKB {
		t.Errorf("BackoffDeltaKB = %d, want %d", cfg.BackoffDeltaKB, DefaultBackoffDeltaKB)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
	for key, src := range cfg.Sources {
		if src != SourceDefault {
			t.Errorf("Sources[%q] = %q, want default", key, src)
		}
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", cfg.Warnings)
	}
}

func TestLoadFileLayer(t *testing.T) {
	clearSentryEnv(t)
	dir := t.TempDir()
	writeConfigFile(t, dir, "threshold_kb = 300\nbackoff_min = 5\ndebug = true\n")

	cfg := Load(dir)

	if cfg.ThresholdKB != 300 {
		t.Errorf("ThresholdKB = %d, want 300", cfg.ThresholdKB)
	}
	if cfg.BackoffMin != 5 {
		t.Errorf("BackoffMin = %d, want 5", cfg.BackoffMin)
	}
	if cfg.BackoffDeltaKB != DefaultBackoffDeltaKB {
		t.Errorf("BackoffDeltaKB = %d, want default %d", cfg.BackoffDeltaKB, DefaultBackoffDeltaKB)
	}
	if !cfg.Debug {
		t.Error("Debug should come from file")
	}
	if cfg.Sources["threshold_kb"] != SourceFile {
		t.Errorf("threshold_kb source = %q, want file", cfg.Sources["threshold_kb"])
	}
	if cfg.Sources["backoff_delta_kb"] != SourceDefault {
		t.Errorf("backoff_delta_kb source = %q, want default", cfg.Sources["backoff_delta_kb"])
	}
}

func TestLoadTheme(t *testing.T) {
	clearSentryEnv(t)
	dir := t.TempDir()

	cfg := Load(dir)
	if cfg.Theme != "auto" {
		t.Errorf("Theme = %q, want auto default", cfg.Theme)
	}

	writeConfigFile(t, dir, "theme = \"dark\"\n")
	cfg = Load(dir)
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want dark from file", cfg.Theme)
	}
	if cfg.Sources["theme"] != SourceFile {
		t.Errorf("theme source = %q, want file", cfg.Sources["theme"])
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	clearSentryEnv(t)
	dir := t.TempDir()
	writeConfigFile(t, dir, "threshold_kb = 300\n")
	t.Setenv(EnvThresholdKB, "400")

	cfg := Load(dir)

	if cfg.ThresholdKB != 400 {
		t.Errorf("ThresholdKB = %d, want 400 (env over file)", cfg.ThresholdKB)
	}
	if cfg.Sources["threshold_kb"] != SourceEnv {
		t.Errorf("threshold_kb source = %q, want env", cfg.Sources["threshold_kb"])
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"not a number", EnvThresholdKB, "lots"},
		{"negative", EnvThresholdKB, "-5"},
		{"zero", EnvThresholdKB, "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearSentryEnv(t)
			t.Setenv(tc.key, tc.value)

			cfg := Load(t.TempDir())

			if cfg.ThresholdKB != DefaultThresholdKB {
				t.Errorf("ThresholdKB = %d, want default %d", cfg.ThresholdKB, DefaultThresholdKB)
			}
			if len(cfg.Warnings) == 0 {
				t.Error("expected a warning for the bad value")
			}
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	clearSentryEnv(t)
	dir := t.TempDir()
	writeConfigFile(t, dir, "threshold_kb = {nope\n")

	cfg := Load(dir)

	if cfg.ThresholdKB != DefaultThresholdKB {
		t.Errorf("ThresholdKB = %d, want default after malformed file", cfg.ThresholdKB)
	}
	if len(cfg.Warnings) == 0 {
		t.Error("expected a warning for the malformed file")
	}
}

func TestLoadDebugEnvSemantics(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"one enables", "1", true},
		{"zero disables", "0", false},
		{"true is not one", "true", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearSentryEnv(t)
			dir := t.TempDir()
			// File turns debug on; env should win either way
			writeConfigFile(t, dir, "debug = true\n")
			t.Setenv(EnvDebug, tc.value)

			cfg := Load(dir)
			if cfg.Debug != tc.want {
				t.Errorf("Debug = %v, want %v for %s=%q", cfg.Debug, tc.want, EnvDebug, tc.value)
			}
			if cfg.Sources["debug"] != SourceEnv {
				t.Errorf("debug source = %q, want env", cfg.Sources["debug"])
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearSentryEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CONTEXT_SENTRY_THRESHOLD_KB=321\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg := Load(dir)

	if cfg.ThresholdKB != 321 {
		t.Errorf("ThresholdKB = %d, want 321 from .env", cfg.ThresholdKB)
	}
}

func TestLoadDotEnvDoesNotOverrideRealEnv(t *testing.T) {
	clearSentryEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CONTEXT_SENTRY_THRESHOLD_KB=321\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv(EnvThresholdKB, "500")

	cfg := Load(dir)

	if cfg.ThresholdKB != 500 {
		t.Errorf("ThresholdKB = %d, want 500 (exported env wins over .env)", cfg.ThresholdKB)
	}
}

func TestPolicyConversion(t *testing.T) {
	cfg := Config{ThresholdKB: 250, BackoffMin: 15, BackoffDeltaKB: 75}
	pol := cfg.Policy()

	if pol.ThresholdKB != 250 || pol.BackoffMin != 15 || pol.BackoffDeltaKB != 75 {
		t.Errorf("Policy = %+v, want converted limits", pol)
	}
}

func TestWarningsMentionOffendingValue(t *testing.T) {
	clearSentryEnv(t)
	t.Setenv(EnvBackoffMin, "soon")

	cfg := Load(t.TempDir())

	found := false
	for _, w := range cfg.Warnings {
		if strings.Contains(w, "soon") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings should name the bad value, got %v", cfg.Warnings)
	}
}
