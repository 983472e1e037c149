package cmd

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ctxsentry/ctxsentry/internal/config"
	"github.com/ctxsentry/ctxsentry/internal/state"
	"github.com/ctxsentry/ctxsentry/internal/transcript"
	"github.com/ctxsentry/ctxsentry/internal/trigger"
)

func TestGatherStatusQuietProject(t *testing.T) {
	dir := hookProject(t)
	path := writeSessionTranscript(t, dir, 100)
	t.Setenv(transcript.EnvTranscript, path)

	report := gatherStatus(dir, config.Load(dir), time.Now())

	if !report.Enabled {
		t.Error("fresh project should be enabled")
	}
	if report.Phase != trigger.Quiescent {
		t.Errorf("phase = %q, want quiescent", report.Phase)
	}
	if report.Transcript == nil {
		t.Fatal("transcript not picked up from env")
	}
	if report.Transcript.SizeKB != 100 {
		t.Errorf("size = %v, want 100", report.Transcript.SizeKB)
	}
	if report.State != nil {
		t.Errorf("state should be nil before any fire, got %+v", report.State)
	}
	if report.Fires != 0 {
		t.Errorf("fires = %d, want 0", report.Fires)
	}
	if registered, ok := report.Hooks["PreToolUse"]; !ok || registered {
		t.Errorf("PreToolUse hook = %v,%v; want present and unregistered", registered, ok)
	}
}

func TestGatherStatusCoolingDown(t *testing.T) {
	dir := hookProject(t)
	path := writeSessionTranscript(t, dir, 260)
	t.Setenv(transcript.EnvTranscript, path)

	now := time.Now()
	seeded := trigger.State{
		LastTriggeredTS:     trigger.Timestamp(now.Add(-2 * time.Minute)),
		LastTriggeredSizeKB: 250,
	}
	if err := state.NewStore(dir).Write(seeded); err != nil {
		t.Fatalf("seeding state: %v", err)
	}

	report := gatherStatus(dir, config.Load(dir), now)

	if report.Phase != trigger.CoolingDown {
		t.Fatalf("phase = %q, want cooling-down", report.Phase)
	}
	if report.CooldownSec <= 0 || report.CooldownSec > 8*60 {
		t.Errorf("cooldown = %vs, want within (0, 480]", report.CooldownSec)
	}
	if report.GrowthToRearmKB != 40 {
		t.Errorf("growth to re-arm = %v, want 40", report.GrowthToRearmKB)
	}
	if report.State == nil || report.State.LastTriggeredSizeKB != 250 {
		t.Errorf("state = %+v, want last size 250", report.State)
	}
}

func TestRenderStatusSections(t *testing.T) {
	dir := hookProject(t)
	path := writeSessionTranscript(t, dir, 100)
	t.Setenv(transcript.EnvTranscript, path)

	out := renderStatus(gatherStatus(dir, config.Load(dir), time.Now()))

	for _, want := range []string{"CONFIG", "TRANSCRIPT", "TRIGGER", "HOOK", "Verdict:", "threshold", "quiescent"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderVerdict(t *testing.T) {
	p := message.NewPrinter(language.English)
	base := statusReport{
		Enabled: true,
		Config:  reportConfig{ThresholdKB: 200},
	}

	tests := []struct {
		name   string
		mutate func(*statusReport)
		want   string
	}{
		{
			name:   "disabled",
			mutate: func(r *statusReport) { r.Enabled = false },
			want:   "tool events pass through",
		},
		{
			name:   "no transcript",
			mutate: func(r *statusReport) {},
			want:   "nothing to measure yet",
		},
		{
			name: "below threshold",
			mutate: func(r *statusReport) {
				r.Transcript = &reportTranscript{SizeKB: 120}
			},
			want: "80 KB below the threshold",
		},
		{
			name: "cooling down",
			mutate: func(r *statusReport) {
				r.Transcript = &reportTranscript{SizeKB: 250}
				r.Phase = trigger.CoolingDown
				r.CooldownSec = 90
				r.GrowthToRearmKB = 40
			},
			want: "re-arms in 1:30 or after 40 KB more growth",
		},
		{
			name: "armed over threshold",
			mutate: func(r *statusReport) {
				r.Transcript = &reportTranscript{SizeKB: 250}
				r.Phase = trigger.Quiescent
			},
			want: "fires a checkpoint warning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)
			got := renderVerdict(r, p)
			if !strings.Contains(got, tt.want) {
				t.Errorf("verdict = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{90 * time.Second, "1:30"},
		{10 * time.Minute, "10:00"},
		{-5 * time.Second, "0:00"},
	}

	for _, tt := range tests {
		if got := formatClock(tt.d); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestOnOff(t *testing.T) {
	if onOff(true) != "on" || onOff(false) != "off" {
		t.Errorf("onOff mapping broken: %q/%q", onOff(true), onOff(false))
	}
}
