package filter_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/abytetracker/synthgraph/pkg/filter"
	"github.com/abytetracker/synthgraph/pkg/osc"
)

const sr = 44100

func TestLowpassPreservesDC(t *testing.T) {
	dc := &constSource{value: 1.0}
	f := filter.New(dc, filter.Lowpass, 1000, 0.707, sr)
	var last float64
	for i := 0; i < 2000; i++ {
		last = f.NextSample()
	}
	assert.InDelta(t, 1.0, last, 0.01)
}

func TestLowpassAttenuatesAboveCutoff(t *testing.T) {
	tone := osc.New(osc.Sine, 10000, sr)
	f := filter.New(tone, filter.Lowpass, 1000, 0.707, sr)

	for i := 0; i < 100; i++ {
		f.NextSample() // warm up past the filter's transient response
	}

	var peakOut float64
	for i := 0; i < 500; i++ {
		out := f.NextSample()
		peakOut = math.Max(peakOut, math.Abs(out))
	}
	assert.Less(t, peakOut, 0.1)
}

func TestHighpassAttenuatesDC(t *testing.T) {
	dc := &constSource{value: 1.0}
	f := filter.New(dc, filter.Highpass, 1000, 0.707, sr)
	var last float64
	for i := 0; i < 2000; i++ {
		last = f.NextSample()
	}
	assert.InDelta(t, 0.0, last, 0.01)
}

func TestBiquadOutputNeverNaNUnderBoundedInput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		mode := filter.Mode(rapid.IntRange(0, 4).Draw(t, "mode"))
		cutoff := rapid.Float64Range(1, 20000).Draw(t, "cutoff")
		q := rapid.Float64Range(0.001, 20).Draw(t, "q")
		freq := rapid.Float64Range(20, 20000).Draw(t, "freq")

		src := osc.New(osc.Sawtooth, freq, sr)
		f := filter.New(src, mode, cutoff, q, sr)
		for i := 0; i < 500; i++ {
			v := f.NextSample()
			assert.False(t, math.IsNaN(v))
			assert.False(t, math.IsInf(v, 0))
		}
	})
}

func TestBiquadModulatedCoefficientsStayStable(t *testing.T) {
	src := osc.New(osc.Sawtooth, 220, sr)
	lfo := osc.New(osc.Sine, 2, sr)
	cutoffMod := &scaledSource{inner: lfo, scale: 500, offset: 1000}

	f := filter.New(src, filter.Lowpass, 1000, 0.707, sr)
	f.ModulateCutoff(cutoffMod)

	for i := 0; i < 2000; i++ {
		v := f.NextSample()
		assert.False(t, math.IsNaN(v))
	}
}

type constSource struct {
	value float64
}

func (c *constSource) NextSample() float64 { return c.value }
func (c *constSource) Process(buf []float64) {
	for i := range buf {
		buf[i] = c.value
	}
}

type scaledSource struct {
	inner  interface{ NextSample() float64 }
	scale  float64
	offset float64
}

func (s *scaledSource) NextSample() float64 { return s.inner.NextSample()*s.scale + s.offset }
func (s *scaledSource) Process(buf []float64) {
	for i := range buf {
		buf[i] = s.NextSample()
	}
}
