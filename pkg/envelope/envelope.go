package envelope

import "github.com/abytetracker/synthgraph/pkg/signal"

// State is one of the five envelope states. AR never visits Decay; AHD
// reuses Sustain to mean "hold at peak" and never enters Release.
type State int

const (
	Idle State = iota
	Attack
	Decay
	Sustain
	Release
)

// Envelope is the common interface implemented by ADSR, AR and AHD.
type Envelope interface {
	signal.Signal

	// Trigger starts (or restarts) the envelope from Attack at phase 0.
	// velocity is a [0,1] hint; the reference shapes ignore it and always
	// reach peak output 1.0.
	Trigger(velocity float64)

	// Release forces a transition toward Idle. It is a no-op when the
	// envelope is already Idle.
	Release()

	// IsActive reports whether the envelope is in any state but Idle.
	IsActive() bool

	// CurrentState returns the envelope's state machine position.
	CurrentState() State

	// IsReleasing reports whether the envelope is in its final decay
	// phase on the way to Idle — Release for ADSR and AR, Decay for AHD
	// (which has no Release state of its own). The voice allocator's
	// Released stealing strategy uses this to find voices already on
	// their way out, regardless of which envelope shape they use.
	IsReleasing() bool
}
