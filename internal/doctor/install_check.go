package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctxsentry/ctxsentry/internal/claude"
)

// HookInstalledCheck verifies the sentry hook is registered in the
// project's Claude Code settings for every event it watches.
type HookInstalledCheck struct {
	FixableCheck
}

// NewHookInstalledCheck creates a new hook registration check.
func NewHookInstalledCheck() *HookInstalledCheck {
	return &HookInstalledCheck{
		FixableCheck: FixableCheck{
			BaseCheck: BaseCheck{
				CheckName:        "hook-installed",
				CheckDescription: "Verify the hook is registered in Claude Code settings",
				CheckCategory:    CategoryInstall,
			},
		},
	}
}

// Run checks settings.json for the hook command under each event.
func (c *HookInstalledCheck) Run(ctx *CheckContext) *CheckResult {
	path := claude.SettingsPath(ctx.ProjectDir)

	settings, err := claude.LoadSettings(path)
	if err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: fmt.Sprintf("cannot read %s: %v", path, err),
			FixHint: "repair the settings file by hand, it is not valid JSON",
		}
	}

	var missing []string
	for _, event := range claude.HookEvents {
		if !settings.HasHookCommand(event, claude.HookCommand) {
			missing = append(missing, event)
		}
	}

	if len(missing) > 0 {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: fmt.Sprintf("hook not registered for %s", strings.Join(missing, ", ")),
			FixHint: "run 'ctxsentry install' or 'ctxsentry doctor --fix'",
		}
	}

	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: fmt.Sprintf("hook registered for %s", strings.Join(claude.HookEvents, ", ")),
	}
}

// Fix registers the hook for any missing event.
func (c *HookInstalledCheck) Fix(ctx *CheckContext) error {
	path := claude.SettingsPath(ctx.ProjectDir)
	settings, err := claude.LoadSettings(path)
	if err != nil {
		return err
	}

	changed := false
	for _, event := range claude.HookEvents {
		matcher := claude.MatcherFor(event, claude.DefaultToolMatcher)
		if settings.AddHook(event, matcher, claude.HookCommand) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return settings.Save(path)
}

// GitignoreCheck verifies the sentry's per-machine files are ignored by
// git so state never gets committed.
type GitignoreCheck struct {
	FixableCheck
}

// NewGitignoreCheck creates a new gitignore check.
func NewGitignoreCheck() *GitignoreCheck {
	return &GitignoreCheck{
		FixableCheck: FixableCheck{
			BaseCheck: BaseCheck{
				CheckName:        "gitignore",
				CheckDescription: "Verify state and journal files are git-ignored",
				CheckCategory:    CategoryInstall,
			},
		},
	}
}

// Run checks .gitignore for the sentry-owned patterns. Projects without
// git are skipped.
func (c *GitignoreCheck) Run(ctx *CheckContext) *CheckResult {
	if _, err := os.Stat(filepath.Join(ctx.ProjectDir, ".git")); err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusSkipped,
			Message: "not a git repository",
		}
	}

	ignored := make(map[string]bool)
	if data, err := os.ReadFile(filepath.Join(ctx.ProjectDir, ".gitignore")); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			ignored[strings.TrimSpace(line)] = true
		}
	}

	var missing []string
	for _, pattern := range claude.GitignorePatterns() {
		if !ignored[pattern] {
			missing = append(missing, pattern)
		}
	}

	if len(missing) > 0 {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("%d sentry file(s) not git-ignored", len(missing)),
			Details: missing,
			FixHint: "run 'ctxsentry doctor --fix' to append them to .gitignore",
		}
	}

	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: "state and journal files are git-ignored",
	}
}

// Fix appends the missing patterns to .gitignore.
func (c *GitignoreCheck) Fix(ctx *CheckContext) error {
	_, err := claude.EnsureGitignore(ctx.ProjectDir, claude.GitignorePatterns())
	return err
}
