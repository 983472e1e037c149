package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/state"
	"github.com/ctxsentry/ctxsentry/internal/style"
	"github.com/ctxsentry/ctxsentry/internal/trigger"
)

var (
	stateShowJSON bool
	stateSetAt    string
	stateSetSize  float64
)

var stateCmd = &cobra.Command{
	Use:     "state",
	GroupID: GroupInspect,
	Short:   "Inspect or reset the persisted trigger state",
	Long: `Work with the trigger state file (.claude/` + state.Filename + `).

The state records when the warning last fired and how big the transcript
was. Clearing it re-arms the sentry immediately; setting it by hand is an
aid for testing backoff behavior.

Examples:
  ctxsentry state                         # Same as 'state show'
  ctxsentry state clear                   # Forget the last fire, re-arm now
  ctxsentry state set --size 250          # Pretend a fire just happened
  ctxsentry state set --at -15m --size 250`,
	RunE: runStateShow,
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the persisted trigger state",
	RunE:  runStateShow,
}

var stateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the trigger state, re-arming the sentry",
	RunE:  runStateClear,
}

var stateSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Write trigger state by hand (testing aid)",
	RunE:  runStateSet,
}

func init() {
	stateCmd.PersistentFlags().BoolVar(&stateShowJSON, "json", false, "Output as JSON")
	stateSetCmd.Flags().StringVar(&stateSetAt, "at", "now",
		"Fire time: 'now', a negative duration like -15m, or RFC3339")
	stateSetCmd.Flags().Float64Var(&stateSetSize, "size", 0,
		"Transcript size in KB at the pretended fire")
	_ = stateSetCmd.MarkFlagRequired("size")

	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateClearCmd)
	stateCmd.AddCommand(stateSetCmd)
	rootCmd.AddCommand(stateCmd)
}

func runStateShow(cmd *cobra.Command, args []string) error {
	dir, err := project.Resolve()
	if err != nil {
		return fmt.Errorf("finding project root: %w", err)
	}

	store := state.NewStore(dir)
	st := store.Read()

	if stateShowJSON {
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding state: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%-8s %s\n", "path", store.Path())
	if st.IsZero() {
		fmt.Printf("%-8s %s\n", "fired", style.Dim.Render("never"))
		return nil
	}
	at := st.LastTriggeredAt()
	fmt.Printf("%-8s %s (%s ago)\n", "fired", at.Format("2006-01-02 15:04:05"),
		st.Age(time.Now()).Round(time.Second))
	fmt.Printf("%-8s %.0f KB\n", "size", st.LastTriggeredSizeKB)
	return nil
}

func runStateClear(cmd *cobra.Command, args []string) error {
	dir, err := project.Resolve()
	if err != nil {
		return fmt.Errorf("finding project root: %w", err)
	}

	store := state.NewStore(dir)
	if !store.Exists() {
		fmt.Printf("%s no state recorded; the sentry is already armed\n", style.Dim.Render("○"))
		return nil
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clearing state: %w", err)
	}
	fmt.Printf("%s trigger state cleared; the next oversized event warns again\n",
		style.Success.Render("✓"))
	return nil
}

func runStateSet(cmd *cobra.Command, args []string) error {
	dir, err := project.Resolve()
	if err != nil {
		return fmt.Errorf("finding project root: %w", err)
	}

	at, err := parseFireTime(stateSetAt, time.Now())
	if err != nil {
		return err
	}

	st := trigger.State{
		LastTriggeredTS:     trigger.Timestamp(at),
		LastTriggeredSizeKB: stateSetSize,
	}
	if err := state.NewStore(dir).Write(st); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}

	fmt.Printf("%s state set: fired %s at %.0f KB\n", style.Success.Render("✓"),
		at.Format("2006-01-02 15:04:05"), stateSetSize)
	return nil
}

// parseFireTime accepts "now", a relative duration like -15m, or RFC3339.
func parseFireTime(s string, now time.Time) (time.Time, error) {
	if s == "" || s == "now" {
		return now, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(d), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --at %q: use 'now', a duration like -15m, or RFC3339", s)
	}
	return t, nil
}
