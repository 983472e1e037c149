package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctxsentry/ctxsentry/internal/journal"
	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/style"
	"github.com/ctxsentry/ctxsentry/internal/ui"
)

var (
	journalJSON    bool
	journalLimit   int
	journalNoPager bool
)

var journalCmd = &cobra.Command{
	Use:     "journal",
	GroupID: GroupInspect,
	Short:   "Show the history of fired warnings",
	Long: `List every warning the sentry has fired for this project, newest last.

Each entry records when the warning fired, how big the transcript was,
how much it had grown since the previous fire, and which session it
belonged to. The journal is append-only; 'state clear' re-arms the
trigger but keeps the history.

Examples:
  ctxsentry journal
  ctxsentry journal --limit 10
  ctxsentry journal --json | jq '.[].size_kb'`,
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().BoolVar(&journalJSON, "json", false, "Output as JSON")
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 0, "Show only the last N entries (0 = all)")
	journalCmd.Flags().BoolVar(&journalNoPager, "no-pager", false, "Never pipe output through a pager")
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, args []string) error {
	dir, err := project.Resolve()
	if err != nil {
		return fmt.Errorf("finding project root: %w", err)
	}

	jnl := journal.New(dir)
	var entries []journal.Entry
	if journalLimit > 0 {
		entries, err = jnl.Tail(journalLimit)
	} else {
		entries, err = jnl.ReadAll()
	}
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	if journalJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding journal: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Printf("%s no warnings fired yet\n", style.Dim.Render("○"))
		return nil
	}

	return ui.ToPager(renderJournal(entries), ui.PagerOptions{NoPager: journalNoPager})
}

func renderJournal(entries []journal.Entry) string {
	table := style.NewTable(
		style.Column{Name: "FIRED", Width: 19},
		style.Column{Name: "SIZE", Width: 8, Align: style.AlignRight},
		style.Column{Name: "GROWTH", Width: 8, Align: style.AlignRight},
		style.Column{Name: "EVENT", Width: 11},
		style.Column{Name: "SESSION", Width: 8},
	)

	for _, e := range entries {
		fired := e.Timestamp
		if t := e.Time(); !t.IsZero() {
			fired = t.Local().Format("2006-01-02 15:04:05")
		}
		table.AddRow(
			fired,
			fmt.Sprintf("%.0f KB", e.SizeKB),
			fmt.Sprintf("+%.0f KB", e.GrowthKB),
			e.HookEvent,
			shortID(e.SessionID),
		)
	}

	var b strings.Builder
	b.WriteString(table.Render())
	fmt.Fprintf(&b, "\n  %s\n", style.Dim.Render(fmt.Sprintf("%d warning(s)", len(entries))))
	return b.String()
}

// shortID trims a session UUID down to its first group.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
