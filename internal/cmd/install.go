package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctxsentry/ctxsentry/internal/claude"
	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/style"
)

var (
	installMatcher     string
	installDryRun      bool
	installNoGitignore bool
)

var installCmd = &cobra.Command{
	Use:     "install",
	GroupID: GroupSetup,
	Short:   "Register the sentry hook in .claude/settings.json",
	Long: `Register 'ctxsentry hook' in the project's Claude Code settings.

The hook is added under PreToolUse (matched to transcript-growing tools)
and PreCompact (matched to everything). Existing settings are preserved;
running install twice changes nothing.

State and journal files are appended to .gitignore so per-machine trigger
history never gets committed. Skip that with --no-gitignore.

Examples:
  ctxsentry install                      # Install into the current project
  ctxsentry install --dry-run            # Show what would change
  ctxsentry install --matcher "Write"    # Only fire on Write tool calls`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installMatcher, "matcher", claude.DefaultToolMatcher,
		"Tool matcher for the PreToolUse registration")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false,
		"Preview changes without writing files")
	installCmd.Flags().BoolVar(&installNoGitignore, "no-gitignore", false,
		"Skip appending sentry files to .gitignore")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	// Fall back to the cwd so a fresh project bootstraps its .claude
	// directory right here.
	dir := project.RootOrCwd()

	path := claude.SettingsPath(dir)
	settings, err := claude.LoadSettings(path)
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	added := 0
	for _, event := range claude.HookEvents {
		if settings.HasHookCommand(event, claude.HookCommand) {
			fmt.Printf("%s %s already registered\n", style.Dim.Render("○"), event)
			continue
		}
		matcher := claude.MatcherFor(event, installMatcher)
		settings.AddHook(event, matcher, claude.HookCommand)
		added++
		if installDryRun {
			fmt.Printf("%s would register %s (matcher %q)\n", style.Dim.Render("○"), event, matcher)
		} else {
			fmt.Printf("%s registered %s (matcher %q)\n", style.Success.Render("✓"), event, matcher)
		}
	}

	if added > 0 && !installDryRun {
		if err := settings.Save(path); err != nil {
			return fmt.Errorf("writing settings: %w", err)
		}
	}

	if !installNoGitignore {
		if err := installGitignore(dir, installDryRun); err != nil {
			fmt.Printf("%s could not update .gitignore: %v\n", style.Warning.Render("!"), err)
		}
	}

	fmt.Println()
	if installDryRun {
		fmt.Printf("%s no files written\n", style.Dim.Render("Dry run:"))
		return nil
	}
	if added == 0 {
		fmt.Println("Nothing to do; the sentry was already installed.")
	} else {
		fmt.Printf("Context Sentry installed. Run %s to check the setup.\n",
			style.Dim.Render("ctxsentry doctor"))
	}
	return nil
}

func installGitignore(dir string, dryRun bool) error {
	if dryRun {
		fmt.Printf("%s would ensure .gitignore covers sentry files\n", style.Dim.Render("○"))
		return nil
	}
	added, err := claude.EnsureGitignore(dir, claude.GitignorePatterns())
	if err != nil {
		return err
	}
	for _, pattern := range added {
		fmt.Printf("%s git-ignored %s\n", style.Success.Render("✓"), pattern)
	}
	return nil
}
