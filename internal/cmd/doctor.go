package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctxsentry/ctxsentry/internal/config"
	"github.com/ctxsentry/ctxsentry/internal/doctor"
	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/style"
	"github.com/ctxsentry/ctxsentry/internal/ui"
)

var (
	doctorFix     bool
	doctorJSON    bool
	doctorVerbose bool
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	GroupID: GroupDiag,
	Short:   "Diagnose the sentry's installation and state",
	Long: `Run health checks over the project: hook registration, gitignore
coverage, config sanity, state and journal integrity, and whether a
transcript can be found for the session.

Some problems fix themselves with --fix (re-registering the hook,
appending gitignore patterns, clearing corrupt state).

Examples:
  ctxsentry doctor
  ctxsentry doctor --fix
  ctxsentry doctor --json`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Attempt to fix problems automatically")
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output as JSON")
	doctorCmd.Flags().BoolVarP(&doctorVerbose, "verbose", "v", false, "Show details for passing checks too")
	rootCmd.AddCommand(doctorCmd)
}

type doctorJSONCheck struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   string   `json:"status"`
	Message  string   `json:"message"`
	Details  []string `json:"details,omitempty"`
	FixHint  string   `json:"fix_hint,omitempty"`
}

type doctorJSONReport struct {
	Healthy  bool              `json:"healthy"`
	OK       int               `json:"ok"`
	Warnings int               `json:"warnings"`
	Errors   int               `json:"errors"`
	Skipped  int               `json:"skipped"`
	Fixed    int               `json:"fixed"`
	Checks   []doctorJSONCheck `json:"checks"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	dir, err := project.Resolve()
	if err != nil {
		return fmt.Errorf("finding project root: %w", err)
	}

	ctx := &doctor.CheckContext{
		ProjectDir: dir,
		Config:     config.Load(dir),
		Verbose:    doctorVerbose,
	}

	checks := doctor.DefaultChecks()
	summary := doctor.Run(ctx, checks, doctorFix)

	if doctorJSON {
		if err := printDoctorJSON(checks, summary); err != nil {
			return err
		}
	} else {
		printDoctorReport(checks, summary)
	}

	if !summary.Healthy() {
		return fmt.Errorf("%d check(s) failed", summary.Errors)
	}
	return nil
}

func printDoctorJSON(checks []doctor.Check, summary *doctor.Summary) error {
	report := doctorJSONReport{
		Healthy:  summary.Healthy(),
		OK:       summary.OK,
		Warnings: summary.Warnings,
		Errors:   summary.Errors,
		Skipped:  summary.Skipped,
		Fixed:    summary.Fixed,
	}
	for i, result := range summary.Results {
		report.Checks = append(report.Checks, doctorJSONCheck{
			Name:     result.Name,
			Category: checks[i].Category(),
			Status:   result.Status.String(),
			Message:  result.Message,
			Details:  result.Details,
			FixHint:  result.FixHint,
		})
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printDoctorReport(checks []doctor.Check, summary *doctor.Summary) {
	fmt.Printf("%s\n", ui.RenderBold("Context Sentry Doctor"))

	lastCategory := ""
	for i, result := range summary.Results {
		category := checks[i].Category()
		if category != lastCategory {
			fmt.Printf("\n%s\n", ui.RenderCategory(category))
			lastCategory = category
		}

		fmt.Printf("  %s %-16s %s\n", statusIcon(result.Status), result.Name, result.Message)
		if result.Status != doctor.StatusOK || doctorVerbose {
			for _, detail := range result.Details {
				fmt.Printf("      %s\n", ui.RenderMuted(detail))
			}
			if result.FixHint != "" && result.Status != doctor.StatusOK {
				fmt.Printf("      %s\n", ui.RenderMuted("fix: "+result.FixHint))
			}
		}
	}

	fmt.Println()
	parts := []string{
		fmt.Sprintf("%d ok", summary.OK),
		fmt.Sprintf("%d warning(s)", summary.Warnings),
		fmt.Sprintf("%d error(s)", summary.Errors),
	}
	if summary.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", summary.Skipped))
	}
	if summary.Fixed > 0 {
		parts = append(parts, fmt.Sprintf("%d fixed", summary.Fixed))
	}
	line := strings.Join(parts, ", ")
	if summary.Healthy() {
		fmt.Printf("%s %s\n", style.Success.Render("✓"), line)
	} else {
		fmt.Printf("%s %s\n", style.Error.Render("✖"), line)
	}
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return ui.RenderPassIcon()
	case doctor.StatusWarning:
		return ui.RenderWarnIcon()
	case doctor.StatusError:
		return ui.RenderFailIcon()
	default:
		return ui.RenderSkipIcon()
	}
}
