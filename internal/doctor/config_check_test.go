package doctor

import (
	"strings"
	"testing"

	"github.com/ctxsentry/ctxsentry/internal/config"
)

func TestConfigCheck_CleanConfig(t *testing.T) {
	check := NewConfigCheck()
	ctx := &CheckContext{
		ProjectDir: t.TempDir(),
		Config: config.Config{
			ThresholdKB:    200,
			BackoffMin:     10,
			BackoffDeltaKB: 50,
		},
	}

	result := check.Run(ctx)

	if result.Status != StatusOK {
		t.Errorf("expected StatusOK for clean config, got %v", result.Status)
	}
	if !strings.Contains(result.Message, "200 KB") {
		t.Errorf("message %q should report the threshold", result.Message)
	}
}

func TestConfigCheck_SurfacesWarnings(t *testing.T) {
	check := NewConfigCheck()
	ctx := &CheckContext{
		ProjectDir: t.TempDir(),
		Config: config.Config{
			ThresholdKB:    200,
			BackoffMin:     10,
			BackoffDeltaKB: 50,
			Warnings: []string{
				`CONTEXT_SENTRY_THRESHOLD_KB="abc" is not a number, keeping 200`,
			},
		},
	}

	result := check.Run(ctx)

	if result.Status != StatusWarning {
		t.Errorf("expected StatusWarning, got %v", result.Status)
	}
	if len(result.Details) != 1 {
		t.Fatalf("Details = %d entries, want 1", len(result.Details))
	}
	if !strings.Contains(result.Details[0], "not a number") {
		t.Errorf("detail %q should carry the load warning", result.Details[0])
	}
	// Even with warnings the resolved values are reported, since the hook
	// runs with them regardless.
	if !strings.Contains(result.Message, "200 KB") {
		t.Errorf("message %q should still report resolved values", result.Message)
	}
}
