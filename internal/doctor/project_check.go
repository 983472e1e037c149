package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/state"
)

// ProjectCheck verifies the project root has the .claude marker directory
// every other sentry file lives under.
type ProjectCheck struct {
	BaseCheck
}

// NewProjectCheck creates a new project root check.
func NewProjectCheck() *ProjectCheck {
	return &ProjectCheck{
		BaseCheck: BaseCheck{
			CheckName:        "project-root",
			CheckDescription: "Verify the project root and its .claude directory",
			CheckCategory:    CategoryInstall,
		},
	}
}

// Run checks that the marker directory exists.
func (c *ProjectCheck) Run(ctx *CheckContext) *CheckResult {
	marker := filepath.Join(ctx.ProjectDir, project.Marker)

	info, err := os.Stat(marker)
	if err != nil || !info.IsDir() {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: fmt.Sprintf("no %s directory at %s", project.Marker, ctx.ProjectDir),
			FixHint: "run 'ctxsentry install' from the project root",
		}
	}

	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: fmt.Sprintf("project root %s", ctx.ProjectDir),
	}
}

// EnabledCheck surfaces whether the sentry has been switched off for this
// project, via the marker file or the environment.
type EnabledCheck struct {
	BaseCheck
}

// NewEnabledCheck creates a new enabled check.
func NewEnabledCheck() *EnabledCheck {
	return &EnabledCheck{
		BaseCheck: BaseCheck{
			CheckName:        "enabled",
			CheckDescription: "Check whether the sentry is switched on",
			CheckCategory:    CategoryConfig,
		},
	}
}

// Run reports the enable/disable status and what decided it.
func (c *EnabledCheck) Run(ctx *CheckContext) *CheckResult {
	if state.Enabled(ctx.ProjectDir) {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusOK,
			Message: "sentry is enabled",
		}
	}

	var details []string
	if os.Getenv(state.EnvDisabled) == "1" {
		details = append(details, state.EnvDisabled+"=1 is set")
	}
	markerPath := filepath.Join(ctx.ProjectDir, ".claude", state.DisabledMarker)
	if _, err := os.Stat(markerPath); err == nil {
		details = append(details, "marker file "+markerPath)
	}

	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusWarning,
		Message: "sentry is disabled, the hook will not fire",
		Details: details,
		FixHint: "run 'ctxsentry enable'",
	}
}
