package noise_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abytetracker/synthgraph/pkg/noise"
)

func TestWhiteNoiseBounded(t *testing.T) {
	w := noise.NewWhite(1)
	for i := 0; i < 10000; i++ {
		v := w.NextSample()
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestWhiteNoiseDeterministicGivenSameSeed(t *testing.T) {
	a := noise.NewWhite(42)
	b := noise.NewWhite(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.NextSample(), b.NextSample())
	}
}

func TestWhiteNoiseIndependentInstancesDoNotShareState(t *testing.T) {
	a := noise.NewWhite(1)
	b := noise.NewWhite(2)
	c := noise.NewWhite(2)

	// Advancing a must not affect b's independent sequence: b and a
	// fresh instance seeded the same as b (c) must still agree after a
	// has been driven hard.
	for i := 0; i < 50; i++ {
		a.NextSample()
	}
	assert.Equal(t, c.NextSample(), b.NextSample())
}

func TestPinkNoiseBounded(t *testing.T) {
	p := noise.NewPink(1)
	for i := 0; i < 10000; i++ {
		v := p.NextSample()
		assert.False(t, math.IsNaN(v))
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestPinkNoiseUpdatesLowRowsEverySample(t *testing.T) {
	p := noise.NewPink(7)
	first := p.NextSample()
	second := p.NextSample()
	// Two consecutive samples should essentially never be bit-identical
	// given a non-degenerate RNG, since row 0 always refreshes.
	assert.NotEqual(t, first, second)
}

func TestPinkNoiseProcessMatchesNextSample(t *testing.T) {
	a := noise.NewPink(3)
	b := noise.NewPink(3)

	buf := make([]float64, 32)
	a.Process(buf)
	for i := range buf {
		assert.Equal(t, b.NextSample(), buf[i])
	}
}
