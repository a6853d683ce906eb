package effect_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/abytetracker/synthgraph/pkg/effect"
	"github.com/abytetracker/synthgraph/pkg/osc"
	"github.com/abytetracker/synthgraph/pkg/signal"
)

const sr = 44100

func TestVibratoOutputBounded(t *testing.T) {
	src := osc.New(osc.Sine, 220, sr)
	v := effect.NewVibrato(src, 5, 20, sr)
	for i := 0; i < 5000; i++ {
		out := v.NextSample()
		assert.GreaterOrEqual(t, out, -1.2)
		assert.LessOrEqual(t, out, 1.2)
	}
}

func TestVibratoZeroDepthIsNearlyStaticDelay(t *testing.T) {
	src := osc.New(osc.Sine, 220, sr)
	ref := osc.New(osc.Sine, 220, sr)
	v := effect.NewVibrato(src, 5, 0, sr)
	// With zero depth the delay stays at the 5 ms base: 220.5 samples at
	// 44100 Hz, read half-way between the inputs 221 and 220 samples back.
	in := make([]float64, 1000)
	for i := 0; i < 1000; i++ {
		in[i] = ref.NextSample()
		out := v.NextSample()
		assert.False(t, math.IsNaN(out))
		if i >= 221 {
			assert.InDelta(t, 0.5*(in[i-221]+in[i-220]), out, 1e-9)
		}
	}
}

func TestTremoloAdvancesSourceBeforeModulator(t *testing.T) {
	var order []string
	src := &orderTrackingSignal{name: "source", order: &order, value: 1.0}
	mod := &orderTrackingSignal{name: "modulator", order: &order, value: 0.0}

	tr := effect.NewTremolo(src, mod, 1.0)
	tr.NextSample()

	assert.Equal(t, []string{"source", "modulator"}, order)
}

func TestTremoloZeroDepthPassesThroughUnchanged(t *testing.T) {
	src := &constSignal{value: 0.8}
	mod := &constSignal{value: -1.0} // would swing gain wildly at full depth
	tr := effect.NewTremolo(src, mod, 0.0)
	assert.InDelta(t, 0.8, tr.NextSample(), 1e-9)
}

func TestTremoloFullDepthAtTroughSilencesSource(t *testing.T) {
	src := &constSignal{value: 1.0}
	mod := &constSignal{value: -1.0} // gain = 1 + 0.5*(-1-1) = 0
	tr := effect.NewTremolo(src, mod, 1.0)
	assert.InDelta(t, 0.0, tr.NextSample(), 1e-9)
}

func TestDistortionDrySignalUnchangedAtZeroMix(t *testing.T) {
	src := &constSignal{value: 0.5}
	d := effect.NewDistortion(src, 10.0, 0.0)
	assert.InDelta(t, 0.5, d.NextSample(), 1e-9)
}

func TestDistortionFullyWetIsBoundedByTanhScale(t *testing.T) {
	src := &constSignal{value: 1.0}
	d := effect.NewDistortion(src, 100.0, 1.0)
	out := d.NextSample()
	assert.LessOrEqual(t, math.Abs(out), 0.7000001)
}

func TestDistortionPresetsProduceBoundedOutput(t *testing.T) {
	presets := []func(signal.Signal) *effect.Distortion{
		effect.Overdrive, effect.ClassicDistortion, effect.Fuzz,
	}
	for _, preset := range presets {
		src := osc.New(osc.Sawtooth, 220, sr)
		d := preset(src)
		for i := 0; i < 500; i++ {
			v := d.NextSample()
			assert.False(t, math.IsNaN(v))
			assert.LessOrEqual(t, math.Abs(v), 1.0000001)
		}
	}
}

func TestBitcrusherQuantizesToDiscreteLevels(t *testing.T) {
	src := osc.New(osc.Sine, 220, sr)
	b := effect.NewBitcrusher(src, 2, 1) // 2-bit depth, no sample-hold
	seen := map[float64]bool{}
	for i := 0; i < 2000; i++ {
		seen[b.NextSample()] = true
	}
	// 2-bit quantization rounds to multiples of 1/2^2 in [-1,1], so at most
	// 9 distinct levels can appear.
	assert.LessOrEqual(t, len(seen), 9)
}

func TestBitcrusherSampleHoldRepeatsValues(t *testing.T) {
	src := osc.New(osc.Sine, 220, sr)
	b := effect.NewBitcrusher(src, 16, 8)
	first := b.NextSample()
	repeats := 0
	for i := 0; i < 7; i++ {
		if b.NextSample() == first {
			repeats++
		}
	}
	assert.Greater(t, repeats, 0)
}

func TestEffectsNeverProduceNaNUnderRandomParameters(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rate := rapid.Float64Range(0.1, 20).Draw(t, "rate")
		depth := rapid.Float64Range(0, 100).Draw(t, "depth")

		src := osc.New(osc.Sawtooth, 220, sr)
		v := effect.NewVibrato(src, rate, depth, sr)
		for i := 0; i < 200; i++ {
			assert.False(t, math.IsNaN(v.NextSample()))
		}
	})
}

type constSignal struct {
	value float64
}

func (c *constSignal) NextSample() float64 { return c.value }
func (c *constSignal) Process(buf []float64) {
	for i := range buf {
		buf[i] = c.value
	}
}

type orderTrackingSignal struct {
	name  string
	order *[]string
	value float64
}

func (o *orderTrackingSignal) NextSample() float64 {
	*o.order = append(*o.order, o.name)
	return o.value
}

func (o *orderTrackingSignal) Process(buf []float64) {
	for i := range buf {
		buf[i] = o.NextSample()
	}
}
