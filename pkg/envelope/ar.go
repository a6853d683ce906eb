package envelope

import "github.com/abytetracker/synthgraph/pkg/signal"

// AR is a two-segment Attack/Release envelope: release begins
// automatically when attack completes rather than sustaining. An explicit
// Release call during Attack cancels into Release from the current
// level, using the same level math as ADSR's attack and release
// segments.
type AR struct {
	sampleRate int

	attackSamples  float64
	releaseSamples float64

	curveAttack  Curve
	curveRelease Curve

	state      State
	elapsed    float64
	releaseLvl float64
	lastOutput float64
}

// NewAR creates an AR envelope with linear segment curves and the given
// times in seconds.
func NewAR(attack, release float64, sampleRate int) *AR {
	e := &AR{
		sampleRate:   sampleRate,
		curveAttack:  Linear(),
		curveRelease: Linear(),
	}
	e.SetAttack(attack)
	e.SetRelease(release)
	return e
}

// SetAttack sets the attack time in seconds, clamped to non-negative.
func (e *AR) SetAttack(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	e.attackSamples = seconds * float64(e.sampleRate)
}

// SetRelease sets the release time in seconds, clamped to non-negative.
func (e *AR) SetRelease(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	e.releaseSamples = seconds * float64(e.sampleRate)
}

// SetCurves overrides the per-segment shaping curves (default Linear).
func (e *AR) SetCurves(attack, release Curve) {
	e.curveAttack = attack
	e.curveRelease = release
}

// Trigger restarts the envelope at Attack from phase 0.
func (e *AR) Trigger(_ float64) {
	e.state = Attack
	e.elapsed = 0
}

// Release cancels the current segment into Release from whatever level
// the envelope last produced. A no-op when already Idle.
func (e *AR) Release() {
	if e.state == Idle {
		return
	}
	e.releaseLvl = e.lastOutput
	e.state = Release
	e.elapsed = 0
}

// IsActive reports whether the envelope is in any state but Idle.
func (e *AR) IsActive() bool { return e.state != Idle }

// CurrentState returns the envelope's state machine position. AR never
// reports Decay or Sustain.
func (e *AR) CurrentState() State { return e.state }

// IsReleasing reports whether the envelope is in its Release segment.
func (e *AR) IsReleasing() bool { return e.state == Release }

// NextSample advances the envelope by one sample and returns its output.
func (e *AR) NextSample() float64 {
	for {
		switch e.state {
		case Attack:
			if e.attackSamples <= 0 {
				e.state = Release
				e.elapsed = 0
				e.releaseLvl = 1
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
			e.state = Release
			e.elapsed = 0
			e.releaseLvl = 1
		}
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
func (e *AR) Process(buf []float64) {
	signal.Fill(buf, e.NextSample)
}

var _ Envelope = (*AR)(nil)
