package effect

import (
	"math"

	"github.com/abytetracker/synthgraph/pkg/signal"
)

// Bitcrusher degrades its source with amplitude quantization (reduced
// bit depth) and sample-and-hold (reduced effective sample rate).
type Bitcrusher struct {
	source signal.Signal

	bitDepth         signal.Parameter // 1..32
	sampleRateReduce signal.Parameter // >= 1, in source samples per held sample
	holdCounter      float64
	heldValue        float64
}

// NewBitcrusher creates a Bitcrusher over source with the given bit
// depth and sample rate reduction factor.
func NewBitcrusher(source signal.Signal, bitDepth float64, sampleRateReduction float64) *Bitcrusher {
	return &Bitcrusher{
		source:           source,
		bitDepth:         signal.Fixed(bitDepth),
		sampleRateReduce: signal.Fixed(sampleRateReduction),
	}
}

// SetBitDepth fixes the bit depth, clamped to [1,32] on read.
func (b *Bitcrusher) SetBitDepth(bits float64) { b.bitDepth.SetFixed(bits) }

// ModulateBitDepth drives bit depth from a signal source.
func (b *Bitcrusher) ModulateBitDepth(source signal.Signal) { b.bitDepth.SetSource(source) }

// SetSampleRateReduction fixes the hold factor, clamped to >= 1 on read.
func (b *Bitcrusher) SetSampleRateReduction(factor float64) { b.sampleRateReduce.SetFixed(factor) }

// ModulateSampleRateReduction drives the hold factor from a signal source.
func (b *Bitcrusher) ModulateSampleRateReduction(source signal.Signal) {
	b.sampleRateReduce.SetSource(source)
}

// NextSample advances source exactly once, sample-and-holds it at the
// reduced rate, then quantizes the held value to the configured bit
// depth.
func (b *Bitcrusher) NextSample() float64 {
	x := b.source.NextSample()

	reduction := math.Max(b.sampleRateReduce.Value(), 1)
	if b.holdCounter <= 0 {
		b.heldValue = x
		b.holdCounter = reduction
	}
	b.holdCounter--

	bits := signal.Clamp(b.bitDepth.Value(), 1, 32)
	levels := math.Pow(2, bits)
	return math.Round(b.heldValue*levels) / levels
}

// Process fills buf with consecutive samples.
func (b *Bitcrusher) Process(buf []float64) {
	signal.Fill(buf, b.NextSample)
}

var _ signal.Signal = (*Bitcrusher)(nil)
