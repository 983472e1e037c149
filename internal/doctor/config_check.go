package doctor

import "fmt"

// ConfigCheck surfaces configuration problems the hook silently tolerates:
// unparsable files, non-positive limits, malformed env values.
type ConfigCheck struct {
	BaseCheck
}

// NewConfigCheck creates a new config check.
func NewConfigCheck() *ConfigCheck {
	return &ConfigCheck{
		BaseCheck: BaseCheck{
			CheckName:        "config",
			CheckDescription: "Check the resolved configuration for problems",
			CheckCategory:    CategoryConfig,
		},
	}
}

// Run reports config load warnings. The hook keeps running on defaults
// when config is broken, so these are warnings, not errors.
func (c *ConfigCheck) Run(ctx *CheckContext) *CheckResult {
	cfg := ctx.Config

	resolved := fmt.Sprintf("threshold %d KB, backoff %d min / %d KB",
		cfg.ThresholdKB, cfg.BackoffMin, cfg.BackoffDeltaKB)

	if len(cfg.Warnings) > 0 {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("config loaded with %d warning(s), using %s", len(cfg.Warnings), resolved),
			Details: cfg.Warnings,
			FixHint: "fix .claude/context-sentry.toml or the CONTEXT_SENTRY_* env vars",
		}
	}

	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: resolved,
	}
}
