// Package doctor diagnoses a project's Context Sentry installation: the
// hook registration, the state and journal files, the config layers, and
// the transcript lookup. Checks report problems; fixable checks can also
// repair them.
package doctor

import (
	"errors"

	"github.com/ctxsentry/ctxsentry/internal/config"
)

// Common errors
var (
	// ErrCannotFix is returned when a check does not support auto-fix.
	ErrCannotFix = errors.New("check does not support auto-fix")
)

// Status is the outcome level of a single check.
type Status int

const (
	// StatusOK means the check passed.
	StatusOK Status = iota
	// StatusWarning means something is off but the sentry still works.
	StatusWarning
	// StatusError means the sentry cannot do its job until this is fixed.
	StatusError
	// StatusSkipped means the check did not apply in this environment.
	StatusSkipped
)

// String returns the human-readable status label.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Check categories group related checks in output.
const (
	CategoryInstall = "install"
	CategoryConfig  = "config"
	CategoryState   = "state"
	CategorySession = "session"
)

// CheckContext carries the environment every check runs against.
type CheckContext struct {
	// ProjectDir is the project root (the directory holding .claude/).
	ProjectDir string
	// Config is the resolved configuration for the project.
	Config config.Config
	// Verbose enables detail output for passing checks.
	Verbose bool
}

// CheckResult is the outcome of one check run.
type CheckResult struct {
	Name    string
	Status  Status
	Message string
	// Details lists individual findings, one per line.
	Details []string
	// FixHint tells the user how to repair a warning or error manually.
	FixHint string
}

// Check is a single diagnostic.
type Check interface {
	Name() string
	Description() string
	Category() string
	Run(ctx *CheckContext) *CheckResult
	CanFix() bool
	Fix(ctx *CheckContext) error
}

// BaseCheck provides the common fields for checks without auto-fix.
type BaseCheck struct {
	CheckName        string
	CheckDescription string
	CheckCategory    string
}

// Name returns the check identifier.
func (b *BaseCheck) Name() string { return b.CheckName }

// Description returns the one-line summary.
func (b *BaseCheck) Description() string { return b.CheckDescription }

// Category returns the check's output group.
func (b *BaseCheck) Category() string { return b.CheckCategory }

// CanFix reports whether the check supports auto-fix.
func (b *BaseCheck) CanFix() bool { return false }

// Fix is not supported on a BaseCheck.
func (b *BaseCheck) Fix(ctx *CheckContext) error { return ErrCannotFix }

// FixableCheck marks a check that implements auto-fix. Embedders must
// override Fix.
type FixableCheck struct {
	BaseCheck
}

// CanFix reports whether the check supports auto-fix.
func (f *FixableCheck) CanFix() bool { return true }
