package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/state"
	"github.com/ctxsentry/ctxsentry/internal/style"
)

var enableCmd = &cobra.Command{
	Use:     "enable",
	GroupID: GroupSetup,
	Short:   "Re-enable the sentry for this project",
	Long: `Remove the disabled marker so the hook evaluates tool events again.

Environment overrides beat the marker for the current session:
  CONTEXT_SENTRY_ENABLED=1    - force on
  CONTEXT_SENTRY_DISABLED=1   - force off`,
	RunE: runEnable,
}

func init() {
	rootCmd.AddCommand(enableCmd)
}

func runEnable(cmd *cobra.Command, args []string) error {
	dir, err := project.Resolve()
	if err != nil {
		return fmt.Errorf("finding project root: %w", err)
	}

	if err := state.SetEnabled(dir, true); err != nil {
		return fmt.Errorf("enabling sentry: %w", err)
	}

	fmt.Printf("%s Context Sentry enabled\n", style.Success.Render("✓"))
	fmt.Printf("The hook will warn again once the transcript crosses the threshold.\n")
	fmt.Printf("Use %s to turn it back off.\n", style.Dim.Render("ctxsentry disable"))
	return nil
}
