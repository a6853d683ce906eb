// Package osc implements phase-accumulating waveform generators: sine,
// triangle, sawtooth, square, pulse, and the wavetable oscillator. None of
// these are band-limited; aliasing above roughly sample_rate/4 is an
// accepted trade-off, same as the teacher's naive oscillator bank.
package osc

import (
	"math"

	"github.com/abytetracker/synthgraph/pkg/signal"
)

// Waveform selects which analytic waveform an Oscillator evaluates at its
// current phase.
type Waveform int

const (
	Sine Waveform = iota
	Triangle
	Sawtooth
	Square
)

// Oscillator is a naive, non-band-limited phase-accumulating generator for
// the four fixed analytic waveforms. Square is a Pulse fixed at a 0.5 duty
// cycle; use Pulse directly for a variable duty cycle.
type Oscillator struct {
	waveform   Waveform
	sampleRate int
	phase      float64 // [0, 1)
	increment  float64
}

// New creates an oscillator of the given waveform at the given frequency
// and sample rate.
func New(waveform Waveform, frequency float64, sampleRate int) *Oscillator {
	o := &Oscillator{waveform: waveform, sampleRate: sampleRate}
	o.SetFrequency(frequency)
	return o
}

// SetFrequency recomputes the phase increment for a new frequency.
func (o *Oscillator) SetFrequency(hz float64) {
	o.increment = hz / float64(o.sampleRate)
}

// Frequency returns the frequency implied by the current phase increment.
func (o *Oscillator) Frequency() float64 {
	return o.increment * float64(o.sampleRate)
}

// Reset zeroes the oscillator's phase.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// Phase returns the oscillator's current phase in [0, 1).
func (o *Oscillator) Phase() float64 {
	return o.phase
}

// NextSample evaluates the waveform at the current phase, then advances
// and wraps phase by the frequency-derived increment.
func (o *Oscillator) NextSample() float64 {
	v := evaluate(o.waveform, o.phase)
	o.phase = wrapPhase(o.phase + o.increment)
	return v
}

// Process fills buf with consecutive samples.
func (o *Oscillator) Process(buf []float64) {
	signal.Fill(buf, o.NextSample)
}

func evaluate(w Waveform, p float64) float64 {
	switch w {
	case Sine:
		return math.Sin(2 * math.Pi * p)
	case Triangle:
		if p < 0.5 {
			return 4*p - 1
		}
		return 3 - 4*p
	case Sawtooth:
		return 2*p - 1
	case Square:
		if p < 0.5 {
			return 1
		}
		return -1
	default:
		return 0
	}
}

var _ signal.Signal = (*Oscillator)(nil)
var _ signal.Pitched = (*Oscillator)(nil)

// Pulse is a square-like oscillator with a variable duty cycle. The duty
// parameter is a signal in [-1, +1] (so it composes with the same LFO
// sources used elsewhere in the graph) and is remapped to [0, 1] by
// d = clamp(raw*0.5 + 0.5, 0, 1) on every sample.
type Pulse struct {
	sampleRate int
	phase      float64
	increment  float64
	duty       signal.Parameter
}

// NewPulse creates a pulse oscillator with a fixed 50% duty cycle by
// default.
func NewPulse(frequency float64, sampleRate int) *Pulse {
	p := &Pulse{sampleRate: sampleRate, duty: signal.Fixed(0)}
	p.SetFrequency(frequency)
	return p
}

// SetFrequency recomputes the phase increment.
func (p *Pulse) SetFrequency(hz float64) {
	p.increment = hz / float64(p.sampleRate)
}

// Frequency returns the frequency implied by the current increment.
func (p *Pulse) Frequency() float64 {
	return p.increment * float64(p.sampleRate)
}

// SetDuty fixes the duty cycle to a constant raw value in [-1, +1].
func (p *Pulse) SetDuty(raw float64) {
	p.duty.SetFixed(raw)
}

// ModulateDuty drives the duty cycle from a signal source instead of a
// fixed value.
func (p *Pulse) ModulateDuty(source signal.Signal) {
	p.duty.SetSource(source)
}

// Reset zeroes the oscillator's phase.
func (p *Pulse) Reset() {
	p.phase = 0
}

// NextSample evaluates the pulse wave at the current phase and duty, then
// advances and wraps phase.
func (p *Pulse) NextSample() float64 {
	raw := p.duty.Value()
	duty := signal.Clamp(raw*0.5+0.5, 0, 1)

	var v float64
	if p.phase < duty {
		v = 1
	} else {
		v = -1
	}

	p.phase = wrapPhase(p.phase + p.increment)
	return v
}

// wrapPhase folds a phase value back into [0, 1), handling both forward
// and (for negative frequencies) backward wraparound.
func wrapPhase(p float64) float64 {
	if p >= 1.0 {
		return p - math.Floor(p)
	}
	if p < 0 {
		return p - math.Floor(p)
	}
	return p
}

// Process fills buf with consecutive samples.
func (p *Pulse) Process(buf []float64) {
	signal.Fill(buf, p.NextSample)
}

var _ signal.Signal = (*Pulse)(nil)
var _ signal.Pitched = (*Pulse)(nil)
