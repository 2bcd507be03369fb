package motion

import "time"

// Default physics parameters. These values were tuned for a convincing
// mechanical feel at 50-60 logical frames per second.
const (
	// DefaultCreepDuration is the window before each tick in which the
	// second hand drifts forward in anticipation.
	DefaultCreepDuration = 150 * time.Millisecond
	// DefaultCreepAngle is the total forward drift, in degrees, accumulated
	// across the creep window.
	DefaultCreepAngle = 2.0
	// DefaultOvershoot is the angle, in degrees, the hand lands past the
	// target on the tick itself.
	DefaultOvershoot = 2.0
	// DefaultRecoil is the angle, in degrees, the hand falls back behind the
	// target one frame after the overshoot. Always negative.
	DefaultRecoil = -1.5
)

// Physics configures the mechanical-inertia illusion of the second hand.
// A Physics value is supplied at controller construction and is constant for
// the controller's lifetime.
//
// This is not a spring/damper simulation; there is no velocity or
// acceleration state. The four parameters directly shape the per-frame
// angle offsets the phase machine produces.
type Physics struct {
	// CreepDuration is the length of the anticipatory creep window before
	// each whole-second boundary.
	CreepDuration time.Duration
	// CreepAngle is the forward drift, in degrees, reached at the end of the
	// creep window.
	CreepAngle float64
	// Overshoot is the degrees past the new base angle on a tick. Positive.
	Overshoot float64
	// Recoil is the degrees behind the base angle one frame after the
	// overshoot. Negative.
	Recoil float64
}

// DefaultPhysics returns the standard physics parameters. Override
// individual fields before passing the value to a controller.
func DefaultPhysics() Physics {
	return Physics{
		CreepDuration: DefaultCreepDuration,
		CreepAngle:    DefaultCreepAngle,
		Overshoot:     DefaultOvershoot,
		Recoil:        DefaultRecoil,
	}
}

// Normalized returns a copy of p with unusable values repaired rather than
// rejected: a non-positive creep duration falls back to the default, a creep
// window longer than one second is capped (the window cannot outlast the
// second it precedes), sign errors on Overshoot and Recoil are corrected,
// and a negative creep angle is clamped to zero.
func (p Physics) Normalized() Physics {
	if p.CreepDuration <= 0 {
		p.CreepDuration = DefaultCreepDuration
	}
	if p.CreepDuration > time.Second {
		p.CreepDuration = time.Second
	}
	if p.CreepAngle < 0 {
		p.CreepAngle = 0
	}
	if p.Overshoot < 0 {
		p.Overshoot = -p.Overshoot
	}
	if p.Recoil > 0 {
		p.Recoil = -p.Recoil
	}
	return p
}
