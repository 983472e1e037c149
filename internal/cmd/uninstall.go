package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ctxsentry/ctxsentry/internal/claude"
	"github.com/ctxsentry/ctxsentry/internal/journal"
	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/state"
	"github.com/ctxsentry/ctxsentry/internal/style"
)

var (
	uninstallDryRun bool
	uninstallPurge  bool
)

var uninstallCmd = &cobra.Command{
	Use:     "uninstall",
	GroupID: GroupSetup,
	Short:   "Remove the sentry hook from .claude/settings.json",
	Long: `Remove every 'ctxsentry hook' registration from the project's Claude
Code settings. Other hooks and settings are left untouched.

Trigger state, the journal and the config file stay on disk so a later
install picks up where it left off. Use --purge to delete the state,
journal and disabled marker as well (the config file is yours and is
never deleted).

Examples:
  ctxsentry uninstall
  ctxsentry uninstall --dry-run   # Preview without writing
  ctxsentry uninstall --purge     # Also drop state and journal`,
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().BoolVar(&uninstallDryRun, "dry-run", false,
		"Preview changes without writing files")
	uninstallCmd.Flags().BoolVar(&uninstallPurge, "purge", false,
		"Also delete trigger state, journal and disabled marker")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	dir, err := project.Resolve()
	if err != nil {
		return fmt.Errorf("finding project root: %w", err)
	}

	path := claude.SettingsPath(dir)
	settings, err := claude.LoadSettings(path)
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	removed := settings.RemoveHookCommand(claude.HookCommand)
	switch {
	case removed == 0:
		fmt.Printf("%s hook was not registered\n", style.Dim.Render("○"))
	case uninstallDryRun:
		fmt.Printf("%s would remove %d registration(s) from %s\n",
			style.Dim.Render("○"), removed, path)
	default:
		if err := settings.Save(path); err != nil {
			return fmt.Errorf("writing settings: %w", err)
		}
		fmt.Printf("%s removed %d registration(s)\n", style.Success.Render("✓"), removed)
	}

	if uninstallPurge {
		purgeSentryFiles(dir, uninstallDryRun)
	}

	if uninstallDryRun {
		fmt.Printf("\n%s no files written\n", style.Dim.Render("Dry run:"))
	}
	return nil
}

// purgeSentryFiles deletes the files the sentry created for itself. The
// config file is user-authored and survives.
func purgeSentryFiles(dir string, dryRun bool) {
	targets := []string{
		state.NewStore(dir).Path(),
		journal.New(dir).Path(),
		filepath.Join(dir, ".claude", state.DisabledMarker),
	}
	for _, target := range targets {
		if _, err := os.Stat(target); err != nil {
			continue
		}
		if dryRun {
			fmt.Printf("%s would delete %s\n", style.Dim.Render("○"), target)
			continue
		}
		if err := os.Remove(target); err != nil {
			fmt.Printf("%s could not delete %s: %v\n", style.Warning.Render("!"), target, err)
			continue
		}
		fmt.Printf("%s deleted %s\n", style.Success.Render("✓"), target)
	}
}
