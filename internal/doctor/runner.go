package doctor

// DefaultChecks returns the standard check suite in display order.
func DefaultChecks() []Check {
	return []Check{
		NewProjectCheck(),
		NewHookInstalledCheck(),
		NewGitignoreCheck(),
		NewEnabledCheck(),
		NewConfigCheck(),
		NewStateCheck(),
		NewJournalCheck(),
		NewTranscriptCheck(),
	}
}

// Summary aggregates the outcome of a full run.
type Summary struct {
	Results  []*CheckResult
	OK       int
	Warnings int
	Errors   int
	Skipped  int
	Fixed    int
}

// Healthy reports whether the run found no errors.
func (s *Summary) Healthy() bool { return s.Errors == 0 }

// Run executes every check against the context. When fix is set, failing
// fixable checks are repaired and re-run; the re-run result is what gets
// reported.
func Run(ctx *CheckContext, checks []Check, fix bool) *Summary {
	sum := &Summary{}

	for _, check := range checks {
		result := check.Run(ctx)

		if fix && check.CanFix() && result.Status != StatusOK && result.Status != StatusSkipped {
			if err := check.Fix(ctx); err == nil {
				sum.Fixed++
				result = check.Run(ctx)
			}
		}

		sum.Results = append(sum.Results, result)
		switch result.Status {
		case StatusWarning:
			sum.Warnings++
		case StatusError:
			sum.Errors++
		case StatusSkipped:
			sum.Skipped++
		default:
			sum.OK++
		}
	}

	return sum
}
