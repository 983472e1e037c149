package doctor

import (
	"errors"
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusOK, "ok"},
		{StatusWarning, "warning"},
		{StatusError, "error"},
		{StatusSkipped, "skipped"},
		{Status(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestBaseCheckCannotFix(t *testing.T) {
	check := &BaseCheck{CheckName: "base", CheckDescription: "desc", CheckCategory: CategoryConfig}

	if check.CanFix() {
		t.Error("BaseCheck.CanFix() should be false")
	}
	if err := check.Fix(&CheckContext{}); !errors.Is(err, ErrCannotFix) {
		t.Errorf("BaseCheck.Fix() = %v, want ErrCannotFix", err)
	}
	if check.Name() != "base" || check.Description() != "desc" || check.Category() != CategoryConfig {
		t.Error("BaseCheck accessors returned wrong values")
	}
}

func TestFixableCheckCanFix(t *testing.T) {
	check := &FixableCheck{BaseCheck: BaseCheck{CheckName: "fixable"}}
	if !check.CanFix() {
		t.Error("FixableCheck.CanFix() should be true")
	}
}

func TestDefaultChecksHaveUniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, check := range DefaultChecks() {
		name := check.Name()
		if name == "" {
			t.Error("check with empty name")
		}
		if seen[name] {
			t.Errorf("duplicate check name %q", name)
		}
		seen[name] = true
		if check.Description() == "" {
			t.Errorf("check %q has no description", name)
		}
		if check.Category() == "" {
			t.Errorf("check %q has no category", name)
		}
	}
}
