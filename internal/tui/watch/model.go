// Package watch is the live dashboard: it polls the session transcript and
// trigger state and shows how close the sentry is to firing.
package watch

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ctxsentry/ctxsentry/internal/config"
	"github.com/ctxsentry/ctxsentry/internal/journal"
	"github.com/ctxsentry/ctxsentry/internal/state"
	"github.com/ctxsentry/ctxsentry/internal/transcript"
	"github.com/ctxsentry/ctxsentry/internal/trigger"
)

// pollInterval is how often the dashboard re-reads transcript and state.
const pollInterval = 2 * time.Second

// recentFires is how many journal entries the dashboard shows.
const recentFires = 5

// snapshot is one poll of everything the dashboard displays.
type snapshot struct {
	taken time.Time

	transcriptPath string
	sizeKB         float64
	entries        int
	transcriptErr  error

	st      trigger.State
	phase   trigger.Phase
	enabled bool

	cooldownLeft time.Duration
	growthLeft   float64

	fires []journal.Entry
}

// pollMsg delivers a completed poll.
type pollMsg struct {
	snap snapshot
}

// tickMsg schedules the next poll.
type tickMsg time.Time

// Model is the bubbletea model for the watch TUI.
type Model struct {
	projectDir string
	cfg        config.Config
	store      *state.Store

	snap    snapshot
	polled  bool
	cleared bool

	keys     KeyMap
	help     help.Model
	gauge    progress.Model
	showHelp bool
	width    int
	height   int
}

// New creates a new watch model for a project.
func New(projectDir string, cfg config.Config) Model {
	gauge := progress.New(progress.WithDefaultGradient())
	gauge.Width = 40
	gauge.ShowPercentage = false

	return Model{
		projectDir: projectDir,
		cfg:        cfg,
		store:      state.NewStore(projectDir),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		gauge:      gauge,
	}
}

// Init starts the first poll and the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.poll, tick())
}

// tick returns a command for periodic refresh.
func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// poll gathers a fresh snapshot. Runs off the UI goroutine.
func (m Model) poll() tea.Msg {
	now := time.Now()
	snap := snapshot{
		taken:   now,
		enabled: state.Enabled(m.projectDir),
		st:      m.store.Read(),
	}

	path, err := transcript.Locate(m.projectDir)
	if err != nil {
		snap.transcriptErr = err
	} else if info, err := transcript.Stat(path); err != nil {
		snap.transcriptErr = err
	} else {
		snap.transcriptPath = info.Path
		snap.sizeKB = info.SizeKB
		snap.entries = info.Entries
	}

	pol := m.cfg.Policy()
	snap.phase = trigger.PhaseOf(snap.st, pol, snap.sizeKB, now)
	snap.cooldownLeft = trigger.CooldownRemaining(snap.st, pol, now)
	snap.growthLeft = trigger.GrowthRemaining(snap.st, pol, snap.sizeKB)

	if fires, err := journal.New(m.projectDir).Tail(recentFires); err == nil {
		snap.fires = fires
	}

	return pollMsg{snap: snap}
}

// clearState wipes the trigger state, re-arming the sentry, then re-polls.
func (m Model) clearState() tea.Msg {
	_ = m.store.Clear()
	return m.poll()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if w := msg.Width - 20; w > 10 && w < 60 {
			m.gauge.Width = w
		}
		return m, nil

	case pollMsg:
		m.snap = msg.snap
		m.polled = true
		return m, nil

	case tickMsg:
		// The cleared notice lives for one poll interval.
		m.cleared = false
		return m, tea.Batch(m.poll, tick())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			return m, m.poll

		case key.Matches(msg, m.keys.Clear):
			m.cleared = true
			return m, m.clearState
		}
	}

	return m, nil
}

// View renders the model.
func (m Model) View() string {
	return m.renderView()
}

// thresholdFraction is how full the gauge is: transcript size over the
// threshold, capped at 1.
func (m Model) thresholdFraction() float64 {
	threshold := float64(m.cfg.ThresholdKB)
	if threshold <= 0 {
		return 0
	}
	frac := m.snap.sizeKB / threshold
	if frac > 1 {
		return 1
	}
	return frac
}
