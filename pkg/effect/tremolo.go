package effect

import "github.com/abytetracker/synthgraph/pkg/signal"

// Tremolo multiplies its source by a gain derived from a modulator
// signal (by default a sine LFO), consuming exactly one modulator sample
// per output sample.
type Tremolo struct {
	source    signal.Signal
	modulator signal.Signal
	depth     signal.Parameter // [0,1]
}

// NewTremolo creates a Tremolo over source, driven by modulator (a
// sub-signal expected to produce values in [-1,+1], such as a sine
// oscillator used as an LFO).
func NewTremolo(source, modulator signal.Signal, depth float64) *Tremolo {
	return &Tremolo{source: source, modulator: modulator, depth: signal.Fixed(depth)}
}

// SetDepth fixes the tremolo depth, clamped to [0,1].
func (t *Tremolo) SetDepth(depth float64) { t.depth.SetFixed(depth) }

// NextSample advances source and modulator exactly once each, source
// first, and returns source * gain where
// gain = 1 + (depth/2) * (mod - 1).
func (t *Tremolo) NextSample() float64 {
	x := t.source.NextSample()
	mod := t.modulator.NextSample()
	depth := signal.Clamp(t.depth.Value(), 0, 1)
	gain := 1 + (depth/2)*(mod-1)
	return x * gain
}

// Process fills buf with consecutive samples.
func (t *Tremolo) Process(buf []float64) {
	signal.Fill(buf, t.NextSample)
}

var _ signal.Signal = (*Tremolo)(nil)
