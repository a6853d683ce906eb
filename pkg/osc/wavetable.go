package osc

import (
	"math"

	"github.com/abytetracker/synthgraph/pkg/signal"
)

// Interpolation selects how a Wavetable reads a fractional phase.
type Interpolation int

const (
	// None rounds to the nearest table index.
	None Interpolation = iota
	// Linear interpolates between the two adjacent samples.
	Linear
	// Cubic uses a four-point Catmull-Rom/Hermite interpolation.
	Cubic
)

// Wavetable is a band-limitable oscillator that reads a single owned
// cycle (or an arbitrary looped buffer) at a floating-point phase.
type Wavetable struct {
	table      []float64
	sampleRate int
	phase      float64 // [0, N)
	increment  float64
	interp     Interpolation
}

func newWavetable(table []float64, frequency float64, sampleRate int) *Wavetable {
	if len(table) == 0 {
		panic("osc: wavetable must not be empty")
	}
	w := &Wavetable{table: table, sampleRate: sampleRate, interp: Linear}
	w.SetFrequency(frequency)
	return w
}

// FromSamples builds a wavetable from externally decoded samples (e.g. a
// WAV loader's output). Multi-channel decoding and WAV parsing are the
// host's responsibility; this constructor consumes only the finished,
// mono, [-1,1]-scaled sample slice.
func FromSamples(samples []float64, frequency float64, sampleRate int) *Wavetable {
	cp := make([]float64, len(samples))
	copy(cp, samples)
	return newWavetable(cp, frequency, sampleRate)
}

// FromFunction builds a wavetable of size n by sampling fn at n uniformly
// spaced phase points in [0, 1).
func FromFunction(n int, frequency float64, sampleRate int, fn func(phase float64) float64) *Wavetable {
	if n <= 0 {
		panic("osc: wavetable size must be positive")
	}
	table := make([]float64, n)
	for i := range table {
		table[i] = fn(float64(i) / float64(n))
	}
	return newWavetable(table, frequency, sampleRate)
}

// SineTable builds a canned single-cycle sine wavetable of size n.
func SineTable(n int, frequency float64, sampleRate int) *Wavetable {
	return FromFunction(n, frequency, sampleRate, func(p float64) float64 {
		return math.Sin(2 * math.Pi * p)
	})
}

// SawTable builds a canned single-cycle sawtooth wavetable of size n.
func SawTable(n int, frequency float64, sampleRate int) *Wavetable {
	return FromFunction(n, frequency, sampleRate, func(p float64) float64 {
		return 2*p - 1
	})
}

// SquareTable builds a canned single-cycle square wavetable of size n.
func SquareTable(n int, frequency float64, sampleRate int) *Wavetable {
	return FromFunction(n, frequency, sampleRate, func(p float64) float64 {
		if p < 0.5 {
			return 1
		}
		return -1
	})
}

// TriangleTable builds a canned single-cycle triangle wavetable of size n.
func TriangleTable(n int, frequency float64, sampleRate int) *Wavetable {
	return FromFunction(n, frequency, sampleRate, func(p float64) float64 {
		if p < 0.5 {
			return 4*p - 1
		}
		return 3 - 4*p
	})
}

// SetInterpolation selects the read mode used by NextSample.
func (w *Wavetable) SetInterpolation(mode Interpolation) {
	w.interp = mode
}

// SetFrequency recomputes the phase increment: freq * N / sample_rate.
func (w *Wavetable) SetFrequency(hz float64) {
	w.increment = hz * float64(len(w.table)) / float64(w.sampleRate)
}

// Frequency returns the frequency implied by the current increment.
func (w *Wavetable) Frequency() float64 {
	return w.increment * float64(w.sampleRate) / float64(len(w.table))
}

// Reset zeroes the wavetable's phase.
func (w *Wavetable) Reset() {
	w.phase = 0
}

// NextSample reads the table at the current phase using the configured
// interpolation mode, then advances and wraps phase over [0, N).
func (w *Wavetable) NextSample() float64 {
	v := w.read(w.phase)
	n := float64(len(w.table))
	w.phase += w.increment
	if w.phase >= n {
		w.phase -= n
	}
	if w.phase < 0 {
		w.phase += n
	}
	return v
}

// Process fills buf with consecutive samples.
func (w *Wavetable) Process(buf []float64) {
	signal.Fill(buf, w.NextSample)
}

func (w *Wavetable) at(i int) float64 {
	n := len(w.table)
	return w.table[((i%n)+n)%n]
}

func (w *Wavetable) read(p float64) float64 {
	n := len(w.table)
	switch w.interp {
	case None:
		i := int(math.Round(p)) % n
		if i < 0 {
			i += n
		}
		return w.table[i]
	case Cubic:
		i := int(math.Floor(p))
		f := p - float64(i)
		y0 := w.at(i - 1)
		y1 := w.at(i)
		y2 := w.at(i + 1)
		y3 := w.at(i + 2)
		c0 := y1
		c1 := 0.5 * (y2 - y0)
		c2 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
		c3 := 0.5*(y3-y0) + 1.5*(y1-y2)
		return c0 + f*(c1+f*(c2+f*c3))
	default: // Linear
		i := int(math.Floor(p))
		f := p - float64(i)
		y0 := w.at(i)
		y1 := w.at(i + 1)
		return (1-f)*y0 + f*y1
	}
}

// Len returns the number of samples in the underlying table.
func (w *Wavetable) Len() int {
	return len(w.table)
}

var _ signal.Signal = (*Wavetable)(nil)
var _ signal.Pitched = (*Wavetable)(nil)
