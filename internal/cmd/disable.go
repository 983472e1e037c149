package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/state"
	"github.com/ctxsentry/ctxsentry/internal/style"
)

var disableCmd = &cobra.Command{
	Use:     "disable",
	GroupID: GroupSetup,
	Short:   "Silence the sentry for this project",
	Long: `Drop a disabled marker under .claude/ so the hook exits before doing
any work. The hook stays registered in settings.json; remove it entirely
with 'ctxsentry uninstall'.

Environment overrides beat the marker for the current session:
  CONTEXT_SENTRY_ENABLED=1    - force on
  CONTEXT_SENTRY_DISABLED=1   - force off`,
	RunE: runDisable,
}

func init() {
	rootCmd.AddCommand(disableCmd)
}

func runDisable(cmd *cobra.Command, args []string) error {
	dir, err := project.Resolve()
	if err != nil {
		return fmt.Errorf("finding project root: %w", err)
	}

	if err := state.SetEnabled(dir, false); err != nil {
		return fmt.Errorf("disabling sentry: %w", err)
	}

	fmt.Printf("%s Context Sentry disabled\n", style.Success.Render("✓"))
	fmt.Println("Tool events pass through without evaluation.")
	fmt.Printf("Use %s to re-enable\n", style.Dim.Render("ctxsentry enable"))
	return nil
}
