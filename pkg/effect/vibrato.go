// Package effect implements the modulation and distortion processors:
// vibrato (LFO-modulated delay), tremolo (LFO-multiplied amplitude),
// distortion (tanh waveshaping) and the bitcrusher (sample-and-hold plus
// amplitude quantization).
package effect

import (
	"math"

	"github.com/abytetracker/synthgraph/pkg/signal"
)

const vibratoMaxDelayMs = 50.0
const vibratoBaseDelayMs = 5.0

// Vibrato is a variable-delay line with an internal sine LFO, producing
// pitch wobble. There is no dry mix; the output is the delay-line read.
type Vibrato struct {
	source signal.Signal

	buffer     []float64
	writePos   int
	sampleRate int

	lfoPhase float64
	rate     signal.Parameter // Hz
	depth    signal.Parameter // cents
}

// NewVibrato creates a Vibrato over source with the given LFO rate (Hz)
// and depth (cents).
func NewVibrato(source signal.Signal, rateHz, depthCents float64, sampleRate int) *Vibrato {
	size := int(vibratoMaxDelayMs/1000*float64(sampleRate)) + 1
	return &Vibrato{
		source:     source,
		buffer:     make([]float64, size),
		sampleRate: sampleRate,
		rate:       signal.Fixed(rateHz),
		depth:      signal.Fixed(depthCents),
	}
}

// SetRate fixes the LFO rate in Hz.
func (v *Vibrato) SetRate(hz float64) { v.rate.SetFixed(hz) }

// SetDepth fixes the modulation depth in cents.
func (v *Vibrato) SetDepth(cents float64) { v.depth.SetFixed(cents) }

// NextSample advances the LFO by one sample, writes the input into the
// delay buffer, and reads back at the LFO-modulated delay with linear
// interpolation.
func (v *Vibrato) NextSample() float64 {
	x := v.source.NextSample()

	size := len(v.buffer)
	rate := v.rate.Value()
	v.lfoPhase += rate / float64(v.sampleRate)
	if v.lfoPhase >= 1 {
		v.lfoPhase -= math.Floor(v.lfoPhase)
	}
	lfo := math.Sin(2 * math.Pi * v.lfoPhase)

	depth := v.depth.Value()
	delayMs := vibratoBaseDelayMs + lfo*(depth/100)*10
	delaySamples := math.Max(0, (delayMs/1000)*float64(v.sampleRate))

	v.buffer[v.writePos] = x

	readPos := float64(v.writePos) - delaySamples
	for readPos < 0 {
		readPos += float64(size)
	}
	i0 := int(math.Floor(readPos)) % size
	i1 := (i0 + 1) % size
	frac := readPos - math.Floor(readPos)
	out := (1-frac)*v.buffer[i0] + frac*v.buffer[i1]

	v.writePos = (v.writePos + 1) % size
	return out
}

// Process fills buf with consecutive samples.
func (v *Vibrato) Process(buf []float64) {
	signal.Fill(buf, v.NextSample)
}

var _ signal.Signal = (*Vibrato)(nil)
