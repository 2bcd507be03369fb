// Package motion computes analogue clock hand angles from sampled wall-clock
// time.
//
// The hour and minute hands sweep continuously ([HourAngle], [MinuteAngle]).
// The second hand is driven by a small finite-state machine
// ([SecondHandState]) that reconstructs the feel of a mechanical movement
// from nothing but discrete per-frame samples: a short anticipatory creep
// before each whole-second boundary, an overshoot past the target on the
// tick, a one-frame recoil behind it, and a settle onto the exact target.
// There are no dedicated sub-phase timers and no interpolation library; the
// machine stays correct across variable frame rates and long frame gaps
// because every transition is derived from the current sample alone.
//
// No condition in this package is fatal. Out-of-range inputs are clamped or
// reverted so that a finite, well-formed angle is produced on every frame.
package motion

import "time"

// SecondHandState carries the second hand's phase machine between frames.
//
// Each state instance is owned by exactly one controller; nothing is shared
// across clock instances, so multiple independent clocks can run side by
// side. Advance must not be called concurrently on the same state.
//
// After every Advance, VisualAngle stays within
// BaseAngle + [min(Recoil, 0), max(Overshoot, CreepAngle)].
type SecondHandState struct {
	// Phase is the active animation phase.
	Phase Phase
	// LastSecond is the whole-second value most recently observed.
	// -1 until the first sample, which guarantees the first frame is
	// treated as a tick.
	LastSecond int
	// BaseAngle is the resting angle, in degrees, for LastSecond.
	BaseAngle float64
	// VisualAngle is the angle, in degrees, actually emitted this frame.
	VisualAngle float64
}

// NewSecondHandState returns the state a controller starts from. The
// LastSecond sentinel forces an immediate tick on the first accepted frame.
func NewSecondHandState() SecondHandState {
	return SecondHandState{Phase: PhaseSettled, LastSecond: -1}
}

// Advance feeds one sampled time into the phase machine, updating the phase
// and visual angle in place, and reports whether the whole-second value
// changed (a tick). The caller serializes Advance calls: one per accepted
// frame, each with a fresh sample.
//
// A backward or multi-second forward jump of the host clock is
// indistinguishable from an ordinary tick and is treated as one. This is a
// known limitation, not a detection mechanism.
func (s *SecondHandState) Advance(t TimeOfDay, p Physics) bool {
	if t.Seconds != s.LastSecond {
		s.LastSecond = t.Seconds
		s.BaseAngle = SecondBaseAngle(t.Seconds)
		s.Phase = PhaseOvershoot
		s.VisualAngle = s.BaseAngle + p.Overshoot
		return true
	}

	switch s.Phase {
	case PhaseOvershoot:
		s.Phase = PhaseRecoil
		s.VisualAngle = s.BaseAngle + p.Recoil
	case PhaseRecoil:
		s.Phase = PhaseSettled
		s.VisualAngle = s.BaseAngle
	case PhaseSettled:
		window := creepWindowMillis(p)
		if w := t.MillisUntilTick(); 0 < w && w <= window {
			// Enter the creep window and take the first creep sample in the
			// same frame; deferring the sample would hold the hand still for
			// one frame after the window opened.
			s.Phase = PhaseCreeping
			s.creep(t, p)
		} else {
			s.VisualAngle = s.BaseAngle
		}
	case PhaseCreeping:
		window := creepWindowMillis(p)
		if w := t.MillisUntilTick(); w <= 0 || w > window {
			// The window passed without a tick, or a clock anomaly produced
			// a nonsensical remainder. Rest at the base angle until the next
			// tick instead of propagating the anomaly.
			s.Phase = PhaseSettled
			s.VisualAngle = s.BaseAngle
		} else {
			s.creep(t, p)
		}
	default:
		// Unreachable with the closed Phase set; reset rather than raise.
		s.Phase = PhaseSettled
		s.VisualAngle = s.BaseAngle
	}
	return false
}

// creep positions the hand within the creep window. Progress is monotonically
// non-decreasing as the remaining milliseconds shrink toward the tick.
func (s *SecondHandState) creep(t TimeOfDay, p Physics) {
	window := creepWindowMillis(p)
	into := window - t.MillisUntilTick()
	progress := clampUnit(float64(into) / float64(window))
	s.VisualAngle = s.BaseAngle + progress*p.CreepAngle
}

// creepWindowMillis returns the creep window in whole milliseconds, matching
// the resolution of TimeOfDay samples.
func creepWindowMillis(p Physics) int {
	return int(p.CreepDuration / time.Millisecond)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
