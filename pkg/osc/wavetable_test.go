package osc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abytetracker/synthgraph/pkg/osc"
)

func TestWavetableEmptyPanics(t *testing.T) {
	assert.Panics(t, func() {
		osc.FromSamples(nil, 440, sr)
	})
}

func TestWavetableFromFunctionMatchesSine(t *testing.T) {
	wt := osc.SineTable(2048, 440, sr)
	wt.SetInterpolation(osc.None)
	ref := osc.New(osc.Sine, 440, sr)

	for i := 0; i < 500; i++ {
		assert.InDelta(t, ref.NextSample(), wt.NextSample(), 0.01)
	}
}

func TestWavetableLinearSmoothsBetweenPoints(t *testing.T) {
	table := []float64{0, 1, 0, -1}
	// increment = freq * N / sr = (sr/8) * 4 / sr = 0.5, so the second read
	// lands half-way between index 0 and index 1.
	wt := osc.FromSamples(table, float64(sr)/8, sr)
	wt.SetInterpolation(osc.Linear)

	assert.InDelta(t, 0, wt.NextSample(), 1e-9)
	assert.InDelta(t, 0.5, wt.NextSample(), 1e-9)
}

func TestWavetableLenMatchesTableSize(t *testing.T) {
	wt := osc.SawTable(512, 220, sr)
	assert.Equal(t, 512, wt.Len())
}

func TestWavetableFrequencyRoundTrip(t *testing.T) {
	wt := osc.SquareTable(1024, 100, sr)
	wt.SetFrequency(250)
	assert.InDelta(t, 250.0, wt.Frequency(), 1e-6)
}

func TestWavetableResetReturnsToStart(t *testing.T) {
	wt := osc.TriangleTable(256, 440, sr)
	first := wt.NextSample()
	for i := 0; i < 50; i++ {
		wt.NextSample()
	}
	wt.Reset()
	assert.InDelta(t, first, wt.NextSample(), 1e-9)
}

func TestWavetableInterpolationModesStayBounded(t *testing.T) {
	for _, mode := range []osc.Interpolation{osc.None, osc.Linear, osc.Cubic} {
		wt := osc.SineTable(64, 440, sr)
		wt.SetInterpolation(mode)
		for i := 0; i < 500; i++ {
			v := wt.NextSample()
			assert.GreaterOrEqual(t, v, -1.2)
			assert.LessOrEqual(t, v, 1.2)
		}
	}
}
