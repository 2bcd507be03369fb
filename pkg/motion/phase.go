package motion

import (
	"encoding/json"
	"fmt"
)

// Phase identifies the second hand's animation state.
//
// The phase follows this state machine, advanced once per accepted frame:
//
//	              tick                next frame           next frame
//	SETTLED ──────────────► OVERSHOOT ──────────► RECOIL ──────────► SETTLED
//	   │                        ▲
//	   │ creep window entered   │ tick
//	   └──────────► CREEPING ───┘
//
// Exactly one phase is active at a time. A tick observed in any phase moves
// straight to OVERSHOOT.
type Phase int

const (
	// PhaseSettled means the hand rests exactly at the base angle.
	PhaseSettled Phase = iota
	// PhaseCreeping means the hand is drifting forward in anticipation of
	// the next tick.
	PhaseCreeping
	// PhaseOvershoot means a tick just landed and the hand sits past the
	// new base angle.
	PhaseOvershoot
	// PhaseRecoil means the hand has fallen back behind the base angle and
	// will settle on the next frame.
	PhaseRecoil
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSettled:
		return "settled"
	case PhaseCreeping:
		return "creeping"
	case PhaseOvershoot:
		return "overshoot"
	case PhaseRecoil:
		return "recoil"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// MarshalJSON encodes the phase as its string name for diagnostic payloads.
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}
