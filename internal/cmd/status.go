package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ctxsentry/ctxsentry/internal/claude"
	"github.com/ctxsentry/ctxsentry/internal/config"
	"github.com/ctxsentry/ctxsentry/internal/journal"
	"github.com/ctxsentry/ctxsentry/internal/project"
	"github.com/ctxsentry/ctxsentry/internal/state"
	"github.com/ctxsentry/ctxsentry/internal/transcript"
	"github.com/ctxsentry/ctxsentry/internal/trigger"
	"github.com/ctxsentry/ctxsentry/internal/ui"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"stat"},
	GroupID: GroupInspect,
	Short:   "Show config, transcript size and trigger phase",
	Long: `Display the sentry's view of the current project: resolved settings
with the layer each came from, the transcript being watched, the trigger
phase, and whether the hook is registered.

The verdict line answers the only question that matters: would the next
tool event produce a warning?`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(statusCmd)
}

// statusReport is the JSON envelope for --json and the input to the human
// renderer. Version bumps when the shape changes.
type statusReport struct {
	Version    int               `json:"version"`
	ProjectDir string            `json:"project_dir"`
	Enabled    bool              `json:"enabled"`
	Config     reportConfig      `json:"config"`
	Transcript *reportTranscript `json:"transcript,omitempty"`
	State      *reportState      `json:"state,omitempty"`
	Phase      trigger.Phase     `json:"phase"`
	// CooldownSec and GrowthToRearmKB are zero unless cooling down.
	CooldownSec     float64         `json:"cooldown_remaining_sec,omitempty"`
	GrowthToRearmKB float64         `json:"growth_to_rearm_kb,omitempty"`
	Hooks           map[string]bool `json:"hooks"`
	Fires           int             `json:"fires"`
	Warnings        []string        `json:"config_warnings,omitempty"`
}

type reportConfig struct {
	ThresholdKB    int                      `json:"threshold_kb"`
	BackoffMin     int                      `json:"backoff_min"`
	BackoffDeltaKB int                      `json:"backoff_delta_kb"`
	Debug          bool                     `json:"debug"`
	Sources        map[string]config.Source `json:"sources"`
}

type reportTranscript struct {
	Path    string    `json:"path"`
	SizeKB  float64   `json:"size_kb"`
	Entries int       `json:"entries"`
	ModTime time.Time `json:"mod_time"`
}

type reportState struct {
	LastTriggeredAt     time.Time `json:"last_triggered_at"`
	LastTriggeredSizeKB float64   `json:"last_triggered_size_kb"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	dir, err := project.Resolve()
	if err != nil {
		return fmt.Errorf("finding project root: %w", err)
	}

	cfg := config.Load(dir)
	report := gatherStatus(dir, cfg, time.Now())

	if statusJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding status: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(renderStatus(report))
	return nil
}

// gatherStatus collects everything status shows. Read-only: the dry-run
// verdict goes through the same evaluator as the hook but persists nothing.
func gatherStatus(dir string, cfg config.Config, now time.Time) statusReport {
	report := statusReport{
		Version:    1,
		ProjectDir: dir,
		Enabled:    state.Enabled(dir),
		Config: reportConfig{
			ThresholdKB:    cfg.ThresholdKB,
			BackoffMin:     cfg.BackoffMin,
			BackoffDeltaKB: cfg.BackoffDeltaKB,
			Debug:          cfg.Debug,
			Sources:        cfg.Sources,
		},
		Phase:    trigger.Quiescent,
		Hooks:    map[string]bool{},
		Warnings: cfg.Warnings,
	}

	st := state.NewStore(dir).Read()
	if !st.IsZero() {
		report.State = &reportState{
			LastTriggeredAt:     st.LastTriggeredAt(),
			LastTriggeredSizeKB: st.LastTriggeredSizeKB,
		}
	}

	var sizeKB float64
	if path, err := transcript.Locate(dir); err == nil {
		if info, err := transcript.Stat(path); err == nil {
			report.Transcript = &reportTranscript{
				Path:    info.Path,
				SizeKB:  info.SizeKB,
				Entries: info.Entries,
				ModTime: info.ModTime,
			}
			sizeKB = info.SizeKB
		}
	}

	pol := cfg.Policy()
	report.Phase = trigger.PhaseOf(st, pol, sizeKB, now)
	if report.Phase == trigger.CoolingDown {
		report.CooldownSec = trigger.CooldownRemaining(st, pol, now).Seconds()
		report.GrowthToRearmKB = trigger.GrowthRemaining(st, pol, sizeKB)
	}

	if settings, err := claude.LoadSettings(claude.SettingsPath(dir)); err == nil {
		for _, event := range claude.HookEvents {
			report.Hooks[event] = settings.HasHookCommand(event, claude.HookCommand)
		}
	}

	if entries, err := journal.New(dir).ReadAll(); err == nil {
		report.Fires = len(entries)
	}

	return report
}

func renderStatus(r statusReport) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n\n", ui.RenderBold("Context Sentry"), ui.RenderMuted(r.ProjectDir))

	fmt.Fprintf(&b, "%s\n", ui.RenderCategory("Config"))
	fmt.Fprintf(&b, "  %-14s %s %s\n", "threshold", p.Sprintf("%d KB", r.Config.ThresholdKB),
		renderSource(r.Config.Sources["threshold_kb"]))
	fmt.Fprintf(&b, "  %-14s %s %s\n", "backoff", p.Sprintf("%d min", r.Config.BackoffMin),
		renderSource(r.Config.Sources["backoff_min"]))
	fmt.Fprintf(&b, "  %-14s %s %s\n", "backoff delta", p.Sprintf("%d KB", r.Config.BackoffDeltaKB),
		renderSource(r.Config.Sources["backoff_delta_kb"]))
	fmt.Fprintf(&b, "  %-14s %s %s\n", "debug", onOff(r.Config.Debug),
		renderSource(r.Config.Sources["debug"]))
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "  %s %s\n", ui.RenderWarnIcon(), w)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n", ui.RenderCategory("Transcript"))
	if r.Transcript == nil {
		fmt.Fprintf(&b, "  none found; the sentry abstains until one exists\n")
	} else {
		fmt.Fprintf(&b, "  %-9s %s\n", "path", r.Transcript.Path)
		fmt.Fprintf(&b, "  %-9s %s of %s\n", "size",
			ui.RenderSize(r.Transcript.SizeKB, float64(r.Config.ThresholdKB)),
			p.Sprintf("%d KB", r.Config.ThresholdKB))
		fmt.Fprintf(&b, "  %-9s %s\n", "entries", p.Sprintf("%d", r.Transcript.Entries))
		fmt.Fprintf(&b, "  %-9s %s\n", "updated", r.Transcript.ModTime.Format("2006-01-02 15:04:05"))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n", ui.RenderCategory("Trigger"))
	fmt.Fprintf(&b, "  %-11s %s\n", "phase", ui.RenderPhase(string(r.Phase)))
	if r.State == nil {
		fmt.Fprintf(&b, "  %-11s %s\n", "last fired", ui.RenderMuted("never"))
	} else {
		fmt.Fprintf(&b, "  %-11s %s at %s\n", "last fired",
			r.State.LastTriggeredAt.Format("2006-01-02 15:04:05"),
			p.Sprintf("%.0f KB", r.State.LastTriggeredSizeKB))
	}
	if r.Phase == trigger.CoolingDown {
		fmt.Fprintf(&b, "  %-11s %s by time, %s by growth\n", "re-arms",
			formatClock(time.Duration(r.CooldownSec)*time.Second),
			p.Sprintf("+%.0f KB", r.GrowthToRearmKB))
	}
	if r.Fires > 0 {
		fmt.Fprintf(&b, "  %-11s %s\n", "fires", p.Sprintf("%d", r.Fires))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n", ui.RenderCategory("Hook"))
	fmt.Fprintf(&b, "  %-11s %s\n", "enabled", onOff(r.Enabled))
	for _, event := range claude.HookEvents {
		if r.Hooks[event] {
			fmt.Fprintf(&b, "  %-11s %s registered\n", event, ui.RenderPassIcon())
		} else {
			fmt.Fprintf(&b, "  %-11s %s not registered\n", event, ui.RenderFailIcon())
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n", renderVerdict(r, p))
	return b.String()
}

// renderVerdict answers what the next tool event would do.
func renderVerdict(r statusReport, p *message.Printer) string {
	prefix := ui.RenderBold("Verdict:")
	switch {
	case !r.Enabled:
		return fmt.Sprintf("%s disabled; tool events pass through", prefix)
	case r.Transcript == nil:
		return fmt.Sprintf("%s no transcript; nothing to measure yet", prefix)
	case r.Transcript.SizeKB < float64(r.Config.ThresholdKB):
		return fmt.Sprintf("%s quiet; %s below the threshold", prefix,
			p.Sprintf("%.0f KB", float64(r.Config.ThresholdKB)-r.Transcript.SizeKB))
	case r.Phase == trigger.CoolingDown:
		return fmt.Sprintf("%s suppressed; re-arms in %s or after %s more growth", prefix,
			formatClock(time.Duration(r.CooldownSec)*time.Second),
			p.Sprintf("%.0f KB", r.GrowthToRearmKB))
	default:
		return fmt.Sprintf("%s %s the next tool event fires a checkpoint warning", prefix,
			ui.RenderWarnIcon())
	}
}

func renderSource(src config.Source) string {
	if src == "" {
		src = config.SourceDefault
	}
	return ui.RenderMuted("(" + string(src) + ")")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// formatClock renders a short duration as m:ss.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
