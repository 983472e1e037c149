// Package cmd wires the ctxsentry command tree. The hook subcommand is the
// machine entrypoint Claude Code invokes on every tool call; everything else
// is for the human operating the sentry.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ctxsentry/ctxsentry/internal/config"
	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/ui"
)

// Command group IDs, in help display order.
const (
	GroupHook    = "hook"
	GroupSetup   = "setup"
	GroupInspect = "inspect"
	GroupDiag    = "diag"
)

var rootCmd = &cobra.Command{
	Use:   "ctxsentry",
	Short: "Context watchdog for Claude Code sessions",
	Long: `ctxsentry watches the transcript of a Claude Code session and, once it
grows past a threshold, injects a one-time reminder to checkpoint working
state before context runs out.

It runs as a PreToolUse hook: Claude Code pipes the tool event to
'ctxsentry hook' on stdin, and the sentry either stays silent or answers
with additional context for the session. After a warning fires, a backoff
keeps it quiet until enough time passes or the transcript grows enough to
justify warning again.

Get started:
  ctxsentry install   # register the hook in .claude/settings.json
  ctxsentry status    # see thresholds, transcript size and trigger phase
  ctxsentry watch     # live dashboard while a session runs`,
	SilenceUsage: true,
	// Theme resolution touches the terminal, so it runs for the human
	// commands only. The hook subcommand overrides this with a no-op.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initDisplay()
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupHook, Title: "Hook Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupDiag, Title: "Diagnostics Commands:"},
	)
}

// initDisplay resolves the color theme before any styled output.
func initDisplay() {
	cfg := config.Load(project.RootOrCwd())
	ui.InitTheme(cfg.Theme)
	ui.ApplyThemeMode()
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
