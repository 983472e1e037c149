// Package ui provides terminal styling for ctxsentry CLI output.
// Uses the Ayu color theme with adaptive light/dark mode support.
// Design philosophy: semantic colors that communicate meaning at a glance,
// minimal visual noise, and consistent rendering across all commands.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	if !ShouldUseColor() {
		// disable colors when not appropriate (non-TTY, NO_COLOR, etc.)
		lipgloss.SetColorProfile(termenv.Ascii)
	} else {
		// use TrueColor for distinct gauge colors in modern terminals
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// ApplyThemeMode applies the theme mode settings to lipgloss.
// This should be called after InitTheme() has been called.
func ApplyThemeMode() {
	if !ShouldUseColor() {
		return
	}
	// Set lipgloss dark background flag based on theme mode
	lipgloss.SetHasDarkBackground(HasDarkBackground())
}

// Ayu theme color palette
// Dark: https://terminalcolors.com/themes/ayu/dark/
// Light: https://terminalcolors.com/themes/ayu/light/
// Source: https://github.com/ayu-theme/ayu-colors
var (
	// Core semantic colors (Ayu theme - adaptive light/dark)
	ColorPass = lipgloss.AdaptiveColor{
		Light: "#86b300", // ayu light bright green
		Dark:  "#c2d94c", // ayu dark bright green
	}
	ColorWarn = lipgloss.AdaptiveColor{
		Light: "#f2ae49", // ayu light bright yellow
		Dark:  "#ffb454", // ayu dark bright yellow
	}
	ColorFail = lipgloss.AdaptiveColor{
		Light: "#f07171", // ayu light bright red
		Dark:  "#f07178", // ayu dark bright red
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99", // ayu light muted
		Dark:  "#6c7680", // ayu dark muted
	}
	ColorAccent = lipgloss.AdaptiveColor{
		Light: "#399ee6", // ayu light bright blue
		Dark:  "#59c2ff", // ayu dark bright blue
	}

	// === Trigger Phase Colors ===
	// Armed is calm green, cooling down is active yellow, disabled is dimmed.
	ColorPhaseArmed = lipgloss.AdaptiveColor{
		Light: "#86b300",
		Dark:  "#c2d94c",
	}
	ColorPhaseCooling = lipgloss.AdaptiveColor{
		Light: "#f2ae49",
		Dark:  "#ffb454",
	}
	ColorPhaseDisabled = lipgloss.AdaptiveColor{
		Light: "#9099a1", // slightly dimmed - visually shows "off"
		Dark:  "#8090a0",
	}
)

// Core styles - consistent across all commands
var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
)

// Phase styles for the trigger state machine
var (
	PhaseArmedStyle    = lipgloss.NewStyle().Foreground(ColorPhaseArmed)
	PhaseCoolingStyle  = lipgloss.NewStyle().Foreground(ColorPhaseCooling)
	PhaseDisabledStyle = lipgloss.NewStyle().Foreground(ColorPhaseDisabled)
)

// CategoryStyle for section headers - bold with accent color
var CategoryStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

// BoldStyle for emphasis
var BoldStyle = lipgloss.NewStyle().Bold(true)

// CommandStyle for command names - subtle contrast, not attention-grabbing
var CommandStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#5c6166", // slightly darker than standard
	Dark:  "#bfbdb6", // slightly brighter than standard
})

// Status icons - consistent semantic indicators
// Design: small Unicode symbols, NOT emoji-style icons for visual consistency
const (
	IconPass = "✓"
	IconWarn = "⚠"
	IconFail = "✖"
	IconSkip = "-"
	IconInfo = "ℹ"
)

// Phase icons - used consistently across status and watch output
const (
	PhaseIconArmed    = "○" // watching, below threshold (hollow circle)
	PhaseIconCooling  = "◐" // fired recently, in backoff (half-filled)
	PhaseIconDisabled = "◌" // sentry switched off (dotted circle)
)

// Tree characters for hierarchical display
const (
	TreeLast   = "└─ " // last child / detail line
	TreeIndent = "  "  // 2-space indent per level
)

// Separators - 42 characters wide
const (
	SeparatorLight = "──────────────────────────────────────────"
	SeparatorHeavy = "══════════════════════════════════════════"
)

// sizeWarnFraction is where size coloring shifts from calm to warning.
const sizeWarnFraction = 0.8

// === Core Render Functions ===

// RenderPass renders text with pass (green) styling
func RenderPass(s string) string {
	return PassStyle.Render(s)
}

// RenderWarn renders text with warning (yellow) styling
func RenderWarn(s string) string {
	return WarnStyle.Render(s)
}

// RenderFail renders text with fail (red) styling
func RenderFail(s string) string {
	return FailStyle.Render(s)
}

// RenderMuted renders text with muted (gray) styling
func RenderMuted(s string) string {
	return MutedStyle.Render(s)
}

// RenderAccent renders text with accent (blue) styling
func RenderAccent(s string) string {
	return AccentStyle.Render(s)
}

// RenderCategory renders a category header in uppercase with accent color
func RenderCategory(s string) string {
	return CategoryStyle.Render(strings.ToUpper(s))
}

// RenderSeparator renders the light separator line in muted color
func RenderSeparator() string {
	return MutedStyle.Render(SeparatorLight)
}

// RenderBold renders text in bold
func RenderBold(s string) string {
	return BoldStyle.Render(s)
}

// RenderCommand renders a command name with subtle styling
func RenderCommand(s string) string {
	return CommandStyle.Render(s)
}

// === Icon Render Functions ===

// RenderPassIcon renders the pass icon with styling
func RenderPassIcon() string {
	return PassStyle.Render(IconPass)
}

// RenderWarnIcon renders the warning icon with styling
func RenderWarnIcon() string {
	return WarnStyle.Render(IconWarn)
}

// RenderFailIcon renders the fail icon with styling
func RenderFailIcon() string {
	return FailStyle.Render(IconFail)
}

// RenderSkipIcon renders the skip icon with styling
func RenderSkipIcon() string {
	return MutedStyle.Render(IconSkip)
}

// RenderInfoIcon renders the info icon with styling
func RenderInfoIcon() string {
	return AccentStyle.Render(IconInfo)
}

// === Trigger Component Renderers ===

// RenderPhase renders a trigger phase label with semantic styling.
// armed is green, cooling-down yellow, disabled dimmed.
func RenderPhase(phase string) string {
	switch phase {
	case "armed", "quiescent":
		return PhaseArmedStyle.Render(phase)
	case "cooling-down":
		return PhaseCoolingStyle.Render(phase)
	case "disabled":
		return PhaseDisabledStyle.Render(phase)
	default:
		return phase
	}
}

// RenderPhaseIcon returns the styled icon for a trigger phase.
// This is the canonical source for phase icon rendering - use this everywhere.
func RenderPhaseIcon(phase string) string {
	switch phase {
	case "armed", "quiescent":
		return PhaseArmedStyle.Render(PhaseIconArmed)
	case "cooling-down":
		return PhaseCoolingStyle.Render(PhaseIconCooling)
	case "disabled":
		return PhaseDisabledStyle.Render(PhaseIconDisabled)
	default:
		return "?"
	}
}

// GetPhaseIcon returns just the icon character without styling.
// Useful for non-TTY output or when applying custom styling.
func GetPhaseIcon(phase string) string {
	switch phase {
	case "armed", "quiescent":
		return PhaseIconArmed
	case "cooling-down":
		return PhaseIconCooling
	case "disabled":
		return PhaseIconDisabled
	default:
		return "?"
	}
}

// SizeStyle returns the style for a transcript size relative to the
// threshold: calm below 80%, warning up to the threshold, fail beyond.
func SizeStyle(sizeKB, thresholdKB float64) lipgloss.Style {
	if thresholdKB <= 0 {
		return MutedStyle
	}
	frac := sizeKB / thresholdKB
	switch {
	case frac >= 1:
		return FailStyle
	case frac >= sizeWarnFraction:
		return WarnStyle
	default:
		return PassStyle
	}
}

// RenderSize renders "123 KB" colored by how close the size is to the
// threshold.
func RenderSize(sizeKB, thresholdKB float64) string {
	label := fmt.Sprintf("%.0f KB", sizeKB)
	return SizeStyle(sizeKB, thresholdKB).Render(label)
}
