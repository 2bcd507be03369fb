package engine

import "time"

// DefaultMaxFrameRate is the logical frame-rate cap applied when no explicit
// rate is configured. Phase transitions read as discrete snaps at this rate;
// running logic on every callback of a high-refresh display would dilute
// them across near-duplicate frames.
const DefaultMaxFrameRate = 60.0

// FrameGate throttles a high-frequency frame-scheduling signal down to a
// bounded logical rate. The gate holds the timestamp of the last accepted
// frame and rejects any frame arriving sooner than the minimum interval;
// rejected frames perform no mutation, so the decision is repeatable until
// time moves on.
type FrameGate struct {
	minInterval  time.Duration
	lastAccepted time.Duration
}

// NewFrameGate returns a gate bounding accepted frames to maxRateHz.
// Rates at or below zero fall back to DefaultMaxFrameRate.
func NewFrameGate(maxRateHz float64) *FrameGate {
	if maxRateHz <= 0 {
		maxRateHz = DefaultMaxFrameRate
	}
	return &FrameGate{
		minInterval:  time.Duration(float64(time.Second) / maxRateHz),
		lastAccepted: -1,
	}
}

// Accept reports whether logical work should run for the frame delivered at
// ts, a monotonically non-decreasing timestamp supplied by the scheduler.
// When Accept returns false the caller still re-arms the scheduler for a
// future frame; it just skips phase logic and rendering for this call.
// The first call always accepts.
func (g *FrameGate) Accept(ts time.Duration) bool {
	if g.lastAccepted >= 0 && ts-g.lastAccepted < g.minInterval {
		return false
	}
	g.lastAccepted = ts
	return true
}

// LastAccepted returns the timestamp of the most recently accepted frame,
// or a negative duration if no frame has been accepted yet.
func (g *FrameGate) LastAccepted() time.Duration { return g.lastAccepted }

// MinInterval returns the minimum spacing between accepted frames.
func (g *FrameGate) MinInterval() time.Duration { return g.minInterval }
