package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ctxsentry/ctxsentry/internal/config"
	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/style"
	"github.com/ctxsentry/ctxsentry/internal/util"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:     "init",
	GroupID: GroupSetup,
	Short:   "Write a commented config file with the defaults",
	Long: `Create .claude/` + config.FileName + ` with every setting spelled out
at its default value, ready to edit.

The file is optional: without it the built-in defaults apply, and
CONTEXT_SENTRY_* environment variables override it either way.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

const configTemplate = `# Context Sentry configuration.
# Values here override the built-in defaults. CONTEXT_SENTRY_* environment
# variables override this file.

# Transcript size that arms the warning, in KB.
threshold_kb = %d

# Minutes before a fired warning may repeat.
backoff_min = %d

# Transcript growth in KB that re-arms the warning before the time window
# closes. Either condition alone is enough to warn again.
backoff_delta_kb = %d

# Extra stderr diagnostics from the hook.
debug = false

# Color scheme for the CLI: "auto", "dark" or "light".
theme = "auto"
`

func runInit(cmd *cobra.Command, args []string) error {
	dir := project.RootOrCwd()
	path := config.FilePath(dir)

	if _, err := os.Stat(path); err == nil && !initForce {
		fmt.Printf("%s %s already exists (use --force to overwrite)\n",
			style.Dim.Render("○"), path)
		return nil
	}

	content := fmt.Sprintf(configTemplate,
		config.DefaultThresholdKB, config.DefaultBackoffMin, config.DefaultBackoffDeltaKB)

	if err := util.EnsureParentDir(path); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("%s wrote %s\n", style.Success.Render("✓"), path)
	fmt.Printf("Edit it, then check the result with %s\n", style.Dim.Render("ctxsentry status"))
	return nil
}
