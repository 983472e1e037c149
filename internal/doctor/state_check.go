package doctor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ctxsentry/ctxsentry/internal/journal"
	"github.com/ctxsentry/ctxsentry/internal/state"
	"github.com/ctxsentry/ctxsentry/internal/trigger"
)

// StateCheck verifies the trigger state file parses. The hook treats a
// corrupt file as empty state, which re-arms the trigger; this check makes
// that silent degradation visible.
type StateCheck struct {
	FixableCheck
}

// NewStateCheck creates a new state file check.
func NewStateCheck() *StateCheck {
	return &StateCheck{
		FixableCheck: FixableCheck{
			BaseCheck: BaseCheck{
				CheckName:        "state-file",
				CheckDescription: "Verify the trigger state file parses",
				CheckCategory:    CategoryState,
			},
		},
	}
}

// Run parses the state file directly, bypassing the store's tolerant read.
func (c *StateCheck) Run(ctx *CheckContext) *CheckResult {
	store := state.NewStore(ctx.ProjectDir)

	data, err := os.ReadFile(store.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &CheckResult{
				Name:    c.Name(),
				Status:  StatusOK,
				Message: "no state recorded yet (sentry has not fired)",
			}
		}
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("cannot read %s: %v", store.Path(), err),
			FixHint: "run 'ctxsentry state clear'",
		}
	}

	var st trigger.State
	if err := json.Unmarshal(data, &st); err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "state file is corrupt, the hook treats it as empty",
			Details: []string{fmt.Sprintf("%s: %v", store.Path(), err)},
			FixHint: "run 'ctxsentry state clear' or 'ctxsentry doctor --fix'",
		}
	}

	if st.IsZero() {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusOK,
			Message: "state file present, no trigger recorded",
		}
	}

	return &CheckResult{
		Name:   c.Name(),
		Status: StatusOK,
		Message: fmt.Sprintf("last fired %s at %.0f KB",
			st.LastTriggeredAt().Format("2006-01-02 15:04:05"), st.LastTriggeredSizeKB),
	}
}

// Fix removes the corrupt state file, re-arming the trigger.
func (c *StateCheck) Fix(ctx *CheckContext) error {
	return state.NewStore(ctx.ProjectDir).Clear()
}

// JournalCheck verifies the trigger journal is readable.
type JournalCheck struct {
	BaseCheck
}

// NewJournalCheck creates a new journal check.
func NewJournalCheck() *JournalCheck {
	return &JournalCheck{
		BaseCheck: BaseCheck{
			CheckName:        "journal",
			CheckDescription: "Verify the trigger journal is readable",
			CheckCategory:    CategoryState,
		},
	}
}

// Run reads the journal. Corrupt lines are skipped by the reader, so only
// a wholly unreadable file is reported.
func (c *JournalCheck) Run(ctx *CheckContext) *CheckResult {
	j := journal.New(ctx.ProjectDir)

	entries, err := j.ReadAll()
	if err != nil {
		if os.IsNotExist(err) {
			return &CheckResult{
				Name:    c.Name(),
				Status:  StatusOK,
				Message: "no journal yet",
			}
		}
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("cannot read journal: %v", err),
		}
	}

	if len(entries) == 0 {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusOK,
			Message: "journal empty",
		}
	}

	last := entries[len(entries)-1]
	return &CheckResult{
		Name:   c.Name(),
		Status: StatusOK,
		Message: fmt.Sprintf("%d entr%s, last %s",
			len(entries), plural(len(entries), "y", "ies"), last.Time().Format("2006-01-02 15:04:05")),
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
