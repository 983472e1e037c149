package watch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ctxsentry/ctxsentry/internal/transcript"
	"github.com/ctxsentry/ctxsentry/internal/trigger"
)

// Styles for the watch TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // gray

	armedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // green

	coolingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // yellow

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	overStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")) // red

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// renderView renders the entire view.
func (m Model) renderView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Context Sentry"))
	b.WriteString(labelStyle.Render("  " + m.projectDir))
	b.WriteString("\n\n")

	if !m.polled {
		b.WriteString("Gathering first snapshot...\n")
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("r:refresh  c:clear state  q:quit  ?:help"))
		return b.String()
	}

	if !m.snap.enabled {
		b.WriteString(disabledStyle.Render("⏻ sentry is disabled, the hook will not fire"))
		b.WriteString("\n\n")
	}

	// Transcript block
	switch {
	case m.snap.transcriptErr == nil:
		b.WriteString(fmt.Sprintf("%s %s\n",
			labelStyle.Render("transcript"), m.snap.transcriptPath))
		b.WriteString(fmt.Sprintf("%s %s of %d KB (%d entries)\n",
			labelStyle.Render("      size"),
			m.renderSize(), m.cfg.ThresholdKB, m.snap.entries))
		b.WriteString(fmt.Sprintf("%s %s\n",
			labelStyle.Render("          "), m.gauge.ViewAs(m.thresholdFraction())))
	case errors.Is(m.snap.transcriptErr, transcript.ErrNoTranscript):
		b.WriteString(labelStyle.Render("transcript") + " none found, sentry abstains\n")
	default:
		b.WriteString(errorStyle.Render(fmt.Sprintf("transcript error: %v", m.snap.transcriptErr)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Trigger phase block
	b.WriteString(m.renderPhase())
	b.WriteString("\n")

	// Recent fires
	if len(m.snap.fires) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("recent fires"))
		b.WriteString("\n")
		for _, e := range m.snap.fires {
			b.WriteString(fmt.Sprintf("  %s  %.0f KB\n",
				e.Time().Local().Format("Jan 02 15:04:05"), e.SizeKB))
		}
	}

	if m.cleared {
		b.WriteString("\n")
		b.WriteString(armedStyle.Render("state cleared, trigger re-armed"))
		b.WriteString("\n")
	}

	// Help footer
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(helpStyle.Render("r:refresh  c:clear state  q:quit  ?:help"))
	}

	return b.String()
}

// renderSize colors the current size by how close it is to the threshold.
func (m Model) renderSize() string {
	label := fmt.Sprintf("%.0f KB", m.snap.sizeKB)
	threshold := float64(m.cfg.ThresholdKB)
	switch {
	case threshold > 0 && m.snap.sizeKB >= threshold:
		return overStyle.Render(label)
	case threshold > 0 && m.snap.sizeKB >= 0.8*threshold:
		return coolingStyle.Render(label)
	default:
		return armedStyle.Render(label)
	}
}

// renderPhase renders the trigger phase line with what would re-arm it.
func (m Model) renderPhase() string {
	if m.snap.phase == trigger.CoolingDown {
		parts := []string{}
		if m.snap.cooldownLeft > 0 {
			parts = append(parts, fmt.Sprintf("%s until time re-arms", formatDuration(m.snap.cooldownLeft)))
		}
		if m.snap.growthLeft > 0 {
			parts = append(parts, fmt.Sprintf("%.0f KB growth re-arms early", m.snap.growthLeft))
		}
		line := coolingStyle.Render("◐ cooling down")
		if len(parts) > 0 {
			line += labelStyle.Render("  " + strings.Join(parts, ", "))
		}
		return line + "\n"
	}

	if m.snap.st.IsZero() {
		return armedStyle.Render("○ armed") + labelStyle.Render("  never fired") + "\n"
	}
	return armedStyle.Render("○ armed") +
		labelStyle.Render(fmt.Sprintf("  last fired %s at %.0f KB",
			m.snap.st.LastTriggeredAt().Local().Format("Jan 02 15:04:05"),
			m.snap.st.LastTriggeredSizeKB)) + "\n"
}

// formatDuration renders a duration as m:ss for the cooldown display.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	min := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", min, sec)
}
