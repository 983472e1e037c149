// Package trigger implements the debounced threshold decision at the heart
// of Context Sentry: given the current transcript size and the history of
// previous warnings, decide whether to warn again now.
package trigger

import "time"

// State is the persisted trigger history for one project scope. The zero
// value means "never triggered". It is replaced wholesale on every fire and
// never mutated in place.
type State struct {
	// LastTriggeredTS is seconds since the Unix epoch, real-valued.
	LastTriggeredTS float64 `json:"last_triggered_ts"`
	// LastTriggeredSizeKB is the transcript size when the warning last fired.
	LastTriggeredSizeKB float64 `json:"last_triggered_size_kb"`
}

// IsZero reports whether the scope has never triggered.
func (s State) IsZero() bool {
	return s.LastTriggeredTS == 0 && s.LastTriggeredSizeKB == 0
}

// LastTriggeredAt returns the last firing time. For the zero state this is
// the epoch, which makes the elapsed window arbitrarily large and therefore
// never suppresses.
func (s State) LastTriggeredAt() time.Time {
	return time.UnixMilli(int64(s.LastTriggeredTS * 1000))
}

// Age returns how long ago the scope last triggered.
func (s State) Age(now time.Time) time.Duration {
	return now.Sub(s.LastTriggeredAt())
}

// Timestamp converts t to the real-valued epoch-seconds encoding used on
// disk. Millisecond precision is plenty for a minutes-scale backoff.
func Timestamp(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}

// Policy holds the thresholds that gate a warning.
type Policy struct {
	// ThresholdKB is the minimum transcript size to ever consider firing.
	ThresholdKB float64
	// BackoffMin is the minimum minutes since the last fire before
	// re-firing is allowed.
	BackoffMin float64
	// BackoffDeltaKB is the minimum growth since the last fire that
	// overrides the time backoff.
	BackoffDeltaKB float64
}

// Input is one evaluation request.
type Input struct {
	// SizeKB is the current transcript size.
	SizeKB float64
	// SelfWrite is true when the triggering action itself targets the
	// checkpoint artifacts.
	SelfWrite bool
}

// Reason explains a decision branch.
type Reason string

const (
	ReasonSelfWrite      Reason = "self-write"
	ReasonBelowThreshold Reason = "below-threshold"
	ReasonCoolingDown    Reason = "cooling-down"
	ReasonFired          Reason = "fired"
)

// Decision is the evaluation outcome. ElapsedMin and GrowthKB are only
// meaningful once the threshold check has passed.
type Decision struct {
	Fire       bool
	Reason     Reason
	ElapsedMin float64
	GrowthKB   float64
	// Next is the state to persist. Set only on fire; a no-fire decision
	// must leave the stored state untouched.
	Next State
}

// Evaluate applies the guard, threshold and backoff rules in order. Each
// step short-circuits to "do not fire".
//
// The backoff releases on EITHER sufficient elapsed time OR sufficient
// growth: a long-idle session re-warns even without growth, and a
// fast-growing session re-warns before the time window closes. Suppression
// requires both windows to still be open.
func Evaluate(in Input, pol Policy, st State, now time.Time) Decision {
	if in.SelfWrite {
		return Decision{Reason: ReasonSelfWrite}
	}

	if in.SizeKB < pol.ThresholdKB {
		return Decision{Reason: ReasonBelowThreshold}
	}

	elapsed := st.Age(now).Minutes()
	growth := in.SizeKB - st.LastTriggeredSizeKB
	d := Decision{ElapsedMin: elapsed, GrowthKB: growth}

	if elapsed < pol.BackoffMin && growth < pol.BackoffDeltaKB {
		d.Reason = ReasonCoolingDown
		return d
	}

	d.Fire = true
	d.Reason = ReasonFired
	d.Next = State{
		LastTriggeredTS:     Timestamp(now),
		LastTriggeredSizeKB: in.SizeKB,
	}
	return d
}

// Phase is the two-state view of a scope: quiescent scopes may fire on the
// next oversized evaluation, cooling-down scopes are suppressed.
type Phase string

const (
	Quiescent   Phase = "quiescent"
	CoolingDown Phase = "cooling-down"
)

// PhaseOf reports which side of the backoff window the scope is on at the
// given size. A scope with no trigger history is always quiescent.
func PhaseOf(st State, pol Policy, sizeKB float64, now time.Time) Phase {
	if st.IsZero() {
		return Quiescent
	}
	elapsed := st.Age(now).Minutes()
	growth := sizeKB - st.LastTriggeredSizeKB
	if elapsed < pol.BackoffMin && growth < pol.BackoffDeltaKB {
		return CoolingDown
	}
	return Quiescent
}

// CooldownRemaining is how long until the time window alone re-arms the
// trigger. Zero for a quiescent or never-triggered scope.
func CooldownRemaining(st State, pol Policy, now time.Time) time.Duration {
	if st.IsZero() {
		return 0
	}
	remaining := time.Duration(pol.BackoffMin*float64(time.Minute)) - st.Age(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GrowthRemaining is how many more KB of growth would re-arm the trigger
// ahead of the time window. Zero when growth has already released it.
func GrowthRemaining(st State, pol Policy, sizeKB float64) float64 {
	if st.IsZero() {
		return 0
	}
	remaining := pol.BackoffDeltaKB - (sizeKB - st.LastTriggeredSizeKB)
	if remaining < 0 {
		return 0
	}
	return remaining
}
