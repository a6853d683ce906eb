// Package noise implements white noise (uniform RNG) and pink noise
// (Voss-McCartney, 16 rows), matching the teacher oscillator bank's
// RNG-backed noise channel but generalized to the boxed Signal contract.
package noise

import (
	"math/rand"

	"github.com/abytetracker/synthgraph/pkg/signal"
)

// Source is the minimal RNG surface Noise nodes need: a single uniform
// draw in [0, 1), which the nodes rescale to [-1, 1]. Any RNG qualifies,
// including *rand.Rand.
type Source interface {
	Float64() float64 // uniform in [0, 1)
}

// White generates uniform noise in [-1, +1] from an owned RNG instance, so
// that two White nodes never share hidden global state.
type White struct {
	rng Source
}

// NewWhite creates a white noise generator using a freshly seeded
// *rand.Rand as its source.
func NewWhite(seed int64) *White {
	return &White{rng: rand.New(rand.NewSource(seed))}
}

// NewWhiteFromSource creates a white noise generator backed by a
// caller-supplied RNG, for tests or deterministic replay.
func NewWhiteFromSource(rng Source) *White {
	return &White{rng: rng}
}

// NextSample returns a uniform sample in [-1, +1].
func (w *White) NextSample() float64 {
	return w.rng.Float64()*2 - 1
}

// Process fills buf with consecutive samples.
func (w *White) Process(buf []float64) {
	signal.Fill(buf, w.NextSample)
}

var _ signal.Signal = (*White)(nil)

const pinkRows = 16

// Pink generates approximately -3 dB/octave noise using the
// Voss-McCartney algorithm with 16 generator rows.
type Pink struct {
	rng        Source
	generators [pinkRows]float64
	counter    uint32
}

// NewPink creates a pink noise generator using a freshly seeded
// *rand.Rand as its source.
func NewPink(seed int64) *Pink {
	p := &Pink{rng: rand.New(rand.NewSource(seed))}
	for i := range p.generators {
		p.generators[i] = p.rng.Float64()*2 - 1
	}
	return p
}

// NewPinkFromSource creates a pink noise generator backed by a
// caller-supplied RNG.
func NewPinkFromSource(rng Source) *Pink {
	p := &Pink{rng: rng}
	for i := range p.generators {
		p.generators[i] = p.rng.Float64()*2 - 1
	}
	return p
}

// NextSample finds the lowest-order zero bit in the counter, refreshes
// every generator row up to and including that bit, increments the
// counter, and returns the average of all 16 rows.
func (p *Pink) NextSample() float64 {
	lowestZero := pinkRows - 1
	for i := 0; i < pinkRows; i++ {
		if p.counter&(1<<uint(i)) == 0 {
			lowestZero = i
			break
		}
	}
	for i := 0; i <= lowestZero; i++ {
		p.generators[i] = p.rng.Float64()*2 - 1
	}
	p.counter++

	var sum float64
	for _, g := range p.generators {
		sum += g
	}
	return sum / pinkRows
}

// Process fills buf with consecutive samples.
func (p *Pink) Process(buf []float64) {
	signal.Fill(buf, p.NextSample)
}

var _ signal.Signal = (*Pink)(nil)
