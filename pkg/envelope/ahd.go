package envelope

import "github.com/abytetracker/synthgraph/pkg/signal"

// AHD is an Attack/Hold/Decay envelope: it completes on its own without
// requiring an external release. Sustain is reused internally to mean
// "hold at peak" for a fixed duration. An external Release call during
// Attack or Hold forces an early jump into Decay from the current level;
// a Release call while already in Decay is a no-op (see DESIGN.md for
// the rationale — this resolves an open question the source spec left
// underspecified).
type AHD struct {
	sampleRate int

	attackSamples float64
	holdSamples   float64
	decaySamples  float64

	curveAttack Curve
	curveDecay  Curve

	state      State
	elapsed    float64
	decayFrom  float64
	lastOutput float64
}

// NewAHD creates an AHD envelope with linear segment curves and the given
// times in seconds.
func NewAHD(attack, hold, decay float64, sampleRate int) *AHD {
	e := &AHD{
		sampleRate:  sampleRate,
		curveAttack: Linear(),
		curveDecay:  Linear(),
	}
	e.SetAttack(attack)
	e.SetHold(hold)
	e.SetDecay(decay)
	return e
}

// SetAttack sets the attack time in seconds, clamped to non-negative.
func (e *AHD) SetAttack(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	e.attackSamples = seconds * float64(e.sampleRate)
}

// SetHold sets the hold-at-peak time in seconds, clamped to non-negative.
func (e *AHD) SetHold(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	e.holdSamples = seconds * float64(e.sampleRate)
}

// SetDecay sets the decay time in seconds, clamped to non-negative.
func (e *AHD) SetDecay(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	e.decaySamples = seconds * float64(e.sampleRate)
}

// SetCurves overrides the per-segment shaping curves (default Linear).
func (e *AHD) SetCurves(attack, decay Curve) {
	e.curveAttack = attack
	e.curveDecay = decay
}

// Trigger restarts the envelope at Attack from phase 0.
func (e *AHD) Trigger(_ float64) {
	e.state = Attack
	e.elapsed = 0
}

// Release forces an early jump into Decay from the envelope's current
// level when called during Attack or Hold. It is a no-op during Decay or
// Idle.
func (e *AHD) Release() {
	switch e.state {
	case Attack, Sustain:
		e.decayFrom = e.lastOutput
		e.state = Decay
		e.elapsed = 0
	default:
		// Decay and Idle: no-op.
	}
}

// IsActive reports whether the envelope is in any state but Idle.
func (e *AHD) IsActive() bool { return e.state != Idle }

// CurrentState returns the envelope's state machine position. AHD's
// Sustain state means "holding at peak", not a user-set sustain level.
func (e *AHD) CurrentState() State { return e.state }

// IsReleasing reports whether the envelope is in its Decay segment — the
// final decay-to-Idle phase for AHD, which has no Release state of its
// own.
func (e *AHD) IsReleasing() bool { return e.state == Decay }

// NextSample advances the envelope by one sample and returns its output.
func (e *AHD) NextSample() float64 {
	for {
		switch e.state {
		case Attack:
			if e.attackSamples <= 0 {
				e.state = Sustain
				e.elapsed = 0
				continue
			}
		case Sustain:
			if e.holdSamples <= 0 {
				e.decayFrom = 1
				e.state = Decay
				e.elapsed = 0
				continue
			}
		case Decay:
			if e.decaySamples <= 0 {
				e.state = Idle
				e.elapsed = 0
				continue
			}
		}
		break
	}

	var out float64
	switch e.state {
	case Idle:
		out = 0
	case Attack:
		t := e.elapsed / e.attackSamples
		out = e.curveAttack.Apply(t)
		e.elapsed++
		if e.elapsed >= e.attackSamples {
			e.state = Sustain
			e.elapsed = 0
		}
	case Sustain:
		out = 1
		e.elapsed++
		if e.elapsed >= e.holdSamples {
			e.decayFrom = 1
			e.state = Decay
			e.elapsed = 0
		}
	case Decay:
		t := e.elapsed / e.decaySamples
		out = e.decayFrom * (1 - e.curveDecay.Apply(t))
		e.elapsed++
		if e.elapsed >= e.decaySamples {
			e.state = Idle
			e.elapsed = 0
		}
	}
	e.lastOutput = out
	return out
}

// Process fills buf with consecutive samples.
func (e *AHD) Process(buf []float64) {
	signal.Fill(buf, e.NextSample)
}

var _ Envelope = (*AHD)(nil)
