// Package filter implements the cookbook-coefficient biquad filter
// (Bristow-Johnson, Audio EQ Cookbook): a second-order IIR section with
// five selectable modes.
package filter

import (
	"math"

	"github.com/abytetracker/synthgraph/pkg/signal"
)

// Mode selects which cookbook formula Biquad uses to compute its
// coefficients.
type Mode int

const (
	Lowpass Mode = iota
	Highpass
	Bandpass
	Notch
	Allpass
)

// Biquad is a second-order IIR filter in Direct Form I, with coefficients
// recomputed from cutoff/Q either once at construction (when both are
// fixed) or on every sample (when either is modulated).
type Biquad struct {
	source signal.Signal
	mode   Mode

	sampleRate int
	cutoff     signal.Parameter
	q          signal.Parameter

	b0, b1, b2 float64
	a1, a2     float64

	x1, x2 float64
	y1, y2 float64

	staticCoeffs bool
	coeffsValid  bool
}

// New creates a Biquad reading from source, with fixed cutoff (Hz) and Q.
func New(source signal.Signal, mode Mode, cutoffHz, q float64, sampleRate int) *Biquad {
	b := &Biquad{
		source:       source,
		mode:         mode,
		sampleRate:   sampleRate,
		cutoff:       signal.Fixed(cutoffHz),
		q:            signal.Fixed(q),
		staticCoeffs: true,
	}
	b.recompute(cutoffHz, q)
	return b
}

// SetMode changes the filter mode and forces a coefficient refresh.
func (b *Biquad) SetMode(mode Mode) {
	b.mode = mode
	b.coeffsValid = false
}

// SetCutoff fixes the cutoff frequency in Hz.
func (b *Biquad) SetCutoff(hz float64) {
	b.cutoff.SetFixed(hz)
	b.staticCoeffs = b.cutoff.IsFixed() && b.q.IsFixed()
	b.coeffsValid = false
}

// ModulateCutoff drives the cutoff frequency from a signal source,
// forcing per-sample coefficient recomputation.
func (b *Biquad) ModulateCutoff(source signal.Signal) {
	b.cutoff.SetSource(source)
	b.staticCoeffs = false
}

// SetQ fixes the resonance/bandwidth parameter Q.
func (b *Biquad) SetQ(q float64) {
	b.q.SetFixed(q)
	b.staticCoeffs = b.cutoff.IsFixed() && b.q.IsFixed()
	b.coeffsValid = false
}

// ModulateQ drives Q from a signal source, forcing per-sample
// coefficient recomputation.
func (b *Biquad) ModulateQ(source signal.Signal) {
	b.q.SetSource(source)
	b.staticCoeffs = false
}

// recompute derives the five cookbook coefficients (normalized by a0) for
// the given cutoff and Q, clamping both per the engine's numerical
// stability floors.
func (b *Biquad) recompute(cutoffHz, q float64) {
	cutoffHz = signal.Clamp(cutoffHz, 1, 0.49*float64(b.sampleRate))
	q = math.Max(q, 0.001)

	omega := 2 * math.Pi * cutoffHz / float64(b.sampleRate)
	sinOmega, cosOmega := math.Sin(omega), math.Cos(omega)
	alpha := sinOmega / (2 * q)

	var b0, b1, b2, a0, a1, a2 float64
	switch b.mode {
	case Highpass:
		b0 = (1 + cosOmega) / 2
		b1 = -(1 + cosOmega)
		b2 = (1 + cosOmega) / 2
		a0 = 1 + alpha
		a1 = -2 * cosOmega
		a2 = 1 - alpha
	case Bandpass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
		a0 = 1 + alpha
		a1 = -2 * cosOmega
		a2 = 1 - alpha
	case Notch:
		b0 = 1
		b1 = -2 * cosOmega
		b2 = 1
		a0 = 1 + alpha
		a1 = -2 * cosOmega
		a2 = 1 - alpha
	case Allpass:
		b0 = 1 - alpha
		b1 = -2 * cosOmega
		b2 = 1 + alpha
		a0 = 1 + alpha
		a1 = -2 * cosOmega
		a2 = 1 - alpha
	default: // Lowpass
		b0 = (1 - cosOmega) / 2
		b1 = 1 - cosOmega
		b2 = (1 - cosOmega) / 2
		a0 = 1 + alpha
		a1 = -2 * cosOmega
		a2 = 1 - alpha
	}

	b.b0, b.b1, b.b2 = b0/a0, b1/a0, b2/a0
	b.a1, b.a2 = a1/a0, a2/a0
	b.coeffsValid = true
}

// NextSample pulls one sample from source, refreshes coefficients if
// needed, and applies the Direct Form I difference equation.
func (b *Biquad) NextSample() float64 {
	x := b.source.NextSample()

	if !b.staticCoeffs || !b.coeffsValid {
		b.recompute(b.cutoff.Value(), b.q.Value())
	}

	y := b.b0*x + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2

	b.x2, b.x1 = b.x1, x
	b.y2, b.y1 = b.y1, y
	return y
}

// Process fills buf with consecutive samples.
func (b *Biquad) Process(buf []float64) {
	signal.Fill(buf, b.NextSample)
}

var _ signal.Signal = (*Biquad)(nil)
