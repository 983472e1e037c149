package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ctxsentry/ctxsentry/internal/config"
	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/tui/watch"
	"github.com/ctxsentry/ctxsentry/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	GroupID: GroupInspect,
	Short:   "Live dashboard of transcript growth and trigger phase",
	Long: `Watch the transcript grow while a session runs.

Shows the current size against the threshold as a gauge, the trigger
phase with its re-arm countdown, and the most recent fires from the
journal. Polls every couple of seconds.

Keys:
  r  refresh now
  c  clear trigger state (re-arm)
  ?  toggle help
  q  quit`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal() {
		return fmt.Errorf("watch needs a terminal; use 'ctxsentry status' when piping")
	}

	dir, err := project.Resolve()
	if err != nil {
		return fmt.Errorf("finding project root: %w", err)
	}

	cfg := config.Load(dir)
	p := tea.NewProgram(watch.New(dir, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running watch: %w", err)
	}
	return nil
}
