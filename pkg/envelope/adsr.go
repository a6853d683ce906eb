package envelope

import "github.com/abytetracker/synthgraph/pkg/signal"

// ADSR is a four-segment Attack/Decay/Sustain/Release envelope. Peak
// output is exactly 1.0; sustain level is clamped to [0,1].
type ADSR struct {
	sampleRate int

	attackSamples  float64
	decaySamples   float64
	releaseSamples float64
	sustain        float64

	curveAttack  Curve
	curveDecay   Curve
	curveRelease Curve

	state      State
	elapsed    float64
	releaseLvl float64
	lastOutput float64
}

// NewADSR creates an ADSR envelope with linear segment curves and the
// given times in seconds. Negative times and an out-of-range sustain
// level are clamped rather than rejected, per the engine's "modulated
// controls commonly sweep through invalid ranges" error-handling policy.
func NewADSR(attack, decay, sustain, release float64, sampleRate int) *ADSR {
	e := &ADSR{
		sampleRate:   sampleRate,
		curveAttack:  Linear(),
		curveDecay:   Linear(),
		curveRelease: Linear(),
	}
	e.SetAttack(attack)
	e.SetDecay(decay)
	e.SetSustain(sustain)
	e.SetRelease(release)
	return e
}

// SetAttack sets the attack time in seconds, clamped to non-negative.
func (e *ADSR) SetAttack(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	e.attackSamples = seconds * float64(e.sampleRate)
}

// SetDecay sets the decay time in seconds, clamped to non-negative.
func (e *ADSR) SetDecay(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	e.decaySamples = seconds * float64(e.sampleRate)
}

// SetSustain sets the sustain level, clamped to [0,1].
func (e *ADSR) SetSustain(level float64) {
	e.sustain = signal.Clamp(level, 0, 1)
}

// SetRelease sets the release time in seconds, clamped to non-negative.
func (e *ADSR) SetRelease(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	e.releaseSamples = seconds * float64(e.sampleRate)
}

// SetCurves overrides the per-segment shaping curves (default Linear).
func (e *ADSR) SetCurves(attack, decay, release Curve) {
	e.curveAttack = attack
	e.curveDecay = decay
	e.curveRelease = release
}

// Trigger restarts the envelope at Attack from phase 0, regardless of the
// current state (retrigger semantics).
func (e *ADSR) Trigger(_ float64) {
	e.state = Attack
	e.elapsed = 0
}

// Release forces a transition toward Idle via the Release segment,
// capturing the envelope's current output as the release start level.
// A no-op when already Idle.
func (e *ADSR) Release() {
	if e.state == Idle {
		return
	}
	e.releaseLvl = e.lastOutput
	e.state = Release
	e.elapsed = 0
}

// IsActive reports whether the envelope is in any state but Idle.
func (e *ADSR) IsActive() bool { return e.state != Idle }

// CurrentState returns the envelope's state machine position.
func (e *ADSR) CurrentState() State { return e.state }

// IsReleasing reports whether the envelope is in its Release segment.
func (e *ADSR) IsReleasing() bool { return e.state == Release }

// NextSample advances the envelope by one sample and returns its output.
func (e *ADSR) NextSample() float64 {
	// Zero-length segments transition immediately, possibly through
	// several states within a single call.
	for {
		switch e.state {
		case Attack:
			if e.attackSamples <= 0 {
				e.state = Decay
				e.elapsed = 0
				continue
			}
		case Decay:
			if e.decaySamples <= 0 {
				e.state = Sustain
				e.elapsed = 0
				continue
			}
		case Release:
			if e.releaseSamples <= 0 {
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
			e.state = Decay
			e.elapsed = 0
		}
	case Decay:
		t := e.elapsed / e.decaySamples
		out = 1 - e.curveDecay.Apply(t)*(1-e.sustain)
		e.elapsed++
		if e.elapsed >= e.decaySamples {
			e.state = Sustain
			e.elapsed = 0
		}
	case Sustain:
		out = e.sustain
	case Release:
		t := e.elapsed / e.releaseSamples
		out = e.releaseLvl * (1 - e.curveRelease.Apply(t))
		e.elapsed++
		if e.elapsed >= e.releaseSamples {
			e.state = Idle
			e.elapsed = 0
		}
	}
	e.lastOutput = out
	return out
}

// Process fills buf with consecutive samples.
func (e *ADSR) Process(buf []float64) {
	signal.Fill(buf, e.NextSample)
}

var _ Envelope = (*ADSR)(nil)
