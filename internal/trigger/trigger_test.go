package trigger

import (
	"testing"
	"time"
)

var testPolicy = Policy{
	ThresholdKB:    200,
	BackoffMin:     10,
	BackoffDeltaKB: 50,
}

func TestEvaluateBelowThresholdNeverFires(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		sizeKB float64
		state  State
	}{
		{"zero size, no history", 0, State{}},
		{"just under, no history", 199.9, State{}},
		{"just under, stale history", 199.9, State{LastTriggeredTS: Timestamp(now.Add(-24 * time.Hour)), LastTriggeredSizeKB: 100}},
		{"just under, fresh history", 199.9, State{LastTriggeredTS: Timestamp(now.Add(-time.Minute)), LastTriggeredSizeKB: 100}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Evaluate(Input{SizeKB: tc.sizeKB}, testPolicy, tc.state, now)
			if d.Fire {
				t.Error("Evaluate fired below threshold")
			}
			if d.Reason != ReasonBelowThreshold {
				t.Errorf("Reason = %q, want %q", d.Reason, ReasonBelowThreshold)
			}
			if !d.Next.IsZero() {
				t.Error("no-fire decision carried a next state")
			}
		})
	}
}

func TestEvaluateSelfWriteNeverFires(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		sizeKB float64
		state  State
	}{
		{"huge size, no history", 5000, State{}},
		{"above threshold, stale history", 250, State{LastTriggeredTS: Timestamp(now.Add(-time.Hour)), LastTriggeredSizeKB: 100}},
		{"below threshold", 10, State{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Evaluate(Input{SizeKB: tc.sizeKB, SelfWrite: true}, testPolicy, tc.state, now)
			if d.Fire {
				t.Error("Evaluate fired on a self-write")
			}
			if d.Reason != ReasonSelfWrite {
				t.Errorf("Reason = %q, want %q", d.Reason, ReasonSelfWrite)
			}
		})
	}
}

func TestEvaluateFirstFire(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	d := Evaluate(Input{SizeKB: 250}, testPolicy, State{}, now)
	if !d.Fire {
		t.Fatal("Evaluate did not fire on first oversized evaluation")
	}
	if d.Reason != ReasonFired {
		t.Errorf("Reason = %q, want %q", d.Reason, ReasonFired)
	}
	if d.Next.LastTriggeredSizeKB != 250 {
		t.Errorf("Next.LastTriggeredSizeKB = %v, want 250", d.Next.LastTriggeredSizeKB)
	}
	if d.Next.LastTriggeredTS != Timestamp(now) {
		t.Errorf("Next.LastTriggeredTS = %v, want %v", d.Next.LastTriggeredTS, Timestamp(now))
	}
}

func TestEvaluateThresholdBoundary(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	// Exactly at threshold fires; "below" is a strict comparison.
	d := Evaluate(Input{SizeKB: 200}, testPolicy, State{}, now)
	if !d.Fire {
		t.Error("Evaluate did not fire exactly at threshold")
	}
}

func TestEvaluateBackoff(t *testing.T) {
	fireTime := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	fired := State{LastTriggeredTS: Timestamp(fireTime), LastTriggeredSizeKB: 250}

	tests := []struct {
		name     string
		at       time.Time
		sizeKB   float64
		wantFire bool
	}{
		{"no growth shortly after", fireTime.Add(time.Minute), 250, false},
		{"small growth inside windows", fireTime.Add(5 * time.Minute), 260, false},
		{"growth releases before time window", fireTime.Add(time.Minute), 310, true},
		{"time releases without growth", fireTime.Add(11 * time.Minute), 250, true},
		{"exactly at time window", fireTime.Add(10 * time.Minute), 250, true},
		{"exactly at growth delta", fireTime.Add(time.Minute), 300, true},
		{"one KB short of delta", fireTime.Add(time.Minute), 299, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Evaluate(Input{SizeKB: tc.sizeKB}, testPolicy, fired, tc.at)
			if d.Fire != tc.wantFire {
				t.Errorf("Fire = %v, want %v (elapsed=%.1fmin growth=%.0fKB)",
					d.Fire, tc.wantFire, d.ElapsedMin, d.GrowthKB)
			}
			if !tc.wantFire && d.Reason != ReasonCoolingDown {
				t.Errorf("Reason = %q, want %q", d.Reason, ReasonCoolingDown)
			}
		})
	}
}

func TestEvaluateScenarioChain(t *testing.T) {
	// Three invocations sharing state: fire, suppress, growth re-fire.
	t0 := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	d1 := Evaluate(Input{SizeKB: 250}, testPolicy, State{}, t0)
	if !d1.Fire {
		t.Fatal("invocation 1 should fire")
	}

	t5 := t0.Add(5 * time.Minute)
	d2 := Evaluate(Input{SizeKB: 260}, testPolicy, d1.Next, t5)
	if d2.Fire {
		t.Fatal("invocation 2 should be suppressed (growth 10KB, elapsed 5min)")
	}

	// Suppressed runs must not advance the state; reuse d1.Next.
	d3 := Evaluate(Input{SizeKB: 310}, testPolicy, d1.Next, t5)
	if !d3.Fire {
		t.Fatal("invocation 3 should fire (growth 60KB)")
	}
	if d3.Next.LastTriggeredSizeKB != 310 {
		t.Errorf("Next.LastTriggeredSizeKB = %v, want 310", d3.Next.LastTriggeredSizeKB)
	}
	if d3.Next.LastTriggeredTS != Timestamp(t5) {
		t.Errorf("Next.LastTriggeredTS = %v, want %v", d3.Next.LastTriggeredTS, Timestamp(t5))
	}
}

func TestEvaluateZeroStateNeverSuppresses(t *testing.T) {
	// The zero state dates to the epoch, so the elapsed window is open no
	// matter how recent the wall clock is.
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	d := Evaluate(Input{SizeKB: 200}, testPolicy, State{}, now)
	if !d.Fire {
		t.Error("zero state suppressed a fire")
	}
	if d.ElapsedMin < 60*24*365 {
		t.Errorf("ElapsedMin = %v, expected decades worth of minutes", d.ElapsedMin)
	}
}

func TestPhaseOf(t *testing.T) {
	fireTime := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	fired := State{LastTriggeredTS: Timestamp(fireTime), LastTriggeredSizeKB: 250}

	tests := []struct {
		name   string
		state  State
		sizeKB float64
		at     time.Time
		want   Phase
	}{
		{"never triggered", State{}, 500, fireTime, Quiescent},
		{"inside both windows", fired, 260, fireTime.Add(2 * time.Minute), CoolingDown},
		{"time window expired", fired, 250, fireTime.Add(15 * time.Minute), Quiescent},
		{"growth released", fired, 320, fireTime.Add(2 * time.Minute), Quiescent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PhaseOf(tc.state, testPolicy, tc.sizeKB, tc.at); got != tc.want {
				t.Errorf("PhaseOf = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCooldownRemaining(t *testing.T) {
	fireTime := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	fired := State{LastTriggeredTS: Timestamp(fireTime), LastTriggeredSizeKB: 250}

	if got := CooldownRemaining(State{}, testPolicy, fireTime); got != 0 {
		t.Errorf("zero state CooldownRemaining = %v, want 0", got)
	}

	got := CooldownRemaining(fired, testPolicy, fireTime.Add(4*time.Minute))
	if got != 6*time.Minute {
		t.Errorf("CooldownRemaining = %v, want 6m", got)
	}

	if got := CooldownRemaining(fired, testPolicy, fireTime.Add(time.Hour)); got != 0 {
		t.Errorf("expired CooldownRemaining = %v, want 0", got)
	}
}

func TestGrowthRemaining(t *testing.T) {
	fired := State{LastTriggeredTS: 1, LastTriggeredSizeKB: 250}

	if got := GrowthRemaining(State{}, testPolicy, 500); got != 0 {
		t.Errorf("zero state GrowthRemaining = %v, want 0", got)
	}
	if got := GrowthRemaining(fired, testPolicy, 270); got != 30 {
		t.Errorf("GrowthRemaining = %v, want 30", got)
	}
	if got := GrowthRemaining(fired, testPolicy, 400); got != 0 {
		t.Errorf("released GrowthRemaining = %v, want 0", got)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 30, 45, 123_000_000, time.UTC)
	st := State{LastTriggeredTS: Timestamp(now)}

	got := st.LastTriggeredAt()
	if !got.Equal(now) {
		t.Errorf("LastTriggeredAt = %v, want %v", got, now)
	}
}

func TestStateIsZero(t *testing.T) {
	if !(State{}).IsZero() {
		t.Error("zero State should report IsZero")
	}
	if (State{LastTriggeredTS: 1}).IsZero() {
		t.Error("non-zero State should not report IsZero")
	}
}
