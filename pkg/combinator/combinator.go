// Package combinator implements the small first-class signal wrappers
// used to compose graphs: mixing, arithmetic, gain staging, crossfading,
// clamping, remapping, gating and shape inversion. Every combinator wraps
// its upstream Signal(s) by value composition — there is no separate
// graph-builder abstraction, in keeping with the "chains are built by
// wrapping" design.
package combinator

import "github.com/abytetracker/synthgraph/pkg/signal"

// Mix sums any number of sources, each scaled by a fixed weight, useful
// for simple channel mixdown without headroom normalization (callers
// apply their own Gain if needed).
type Mix struct {
	sources []signal.Signal
	weights []float64
}

// NewMix creates a Mix over sources with equal weight 1.0 each.
func NewMix(sources ...signal.Signal) *Mix {
	weights := make([]float64, len(sources))
	for i := range weights {
		weights[i] = 1
	}
	return &Mix{sources: sources, weights: weights}
}

// NewWeightedMix creates a Mix over sources with per-source weights.
// Panics if the slice lengths differ.
func NewWeightedMix(sources []signal.Signal, weights []float64) *Mix {
	if len(sources) != len(weights) {
		panic("combinator: sources and weights must have equal length")
	}
	return &Mix{sources: sources, weights: weights}
}

// NextSample advances every source exactly once, in order, and returns
// the weighted sum.
func (m *Mix) NextSample() float64 {
	var sum float64
	for i, s := range m.sources {
		sum += s.NextSample() * m.weights[i]
	}
	return sum
}

// Process fills buf with consecutive samples.
func (m *Mix) Process(buf []float64) { signal.Fill(buf, m.NextSample) }

var _ signal.Signal = (*Mix)(nil)

// Multiply advances a and b exactly once each, in that order, and returns
// their product (ring modulation when both are audio-rate).
type Multiply struct {
	a, b signal.Signal
}

// NewMultiply creates a Multiply node over a and b.
func NewMultiply(a, b signal.Signal) *Multiply { return &Multiply{a: a, b: b} }

// NextSample returns a.NextSample() * b.NextSample().
func (m *Multiply) NextSample() float64 {
	av := m.a.NextSample()
	bv := m.b.NextSample()
	return av * bv
}

// Process fills buf with consecutive samples.
func (m *Multiply) Process(buf []float64) { signal.Fill(buf, m.NextSample) }

var _ signal.Signal = (*Multiply)(nil)

// Add advances a and b exactly once each and returns their sum.
type Add struct {
	a, b signal.Signal
}

// NewAdd creates an Add node over a and b.
func NewAdd(a, b signal.Signal) *Add { return &Add{a: a, b: b} }

// NextSample returns a.NextSample() + b.NextSample().
func (a *Add) NextSample() float64 { return a.a.NextSample() + a.b.NextSample() }

// Process fills buf with consecutive samples.
func (a *Add) Process(buf []float64) { signal.Fill(buf, a.NextSample) }

var _ signal.Signal = (*Add)(nil)

// Gain scales its source by a fixed or modulated amount.
type Gain struct {
	source signal.Signal
	amount signal.Parameter
}

// NewGain creates a Gain node with a fixed amount.
func NewGain(source signal.Signal, amount float64) *Gain {
	return &Gain{source: source, amount: signal.Fixed(amount)}
}

// SetAmount fixes the gain amount.
func (g *Gain) SetAmount(amount float64) { g.amount.SetFixed(amount) }

// ModulateAmount drives the gain amount from a signal source.
func (g *Gain) ModulateAmount(source signal.Signal) { g.amount.SetSource(source) }

// NextSample returns source.NextSample() * amount.
func (g *Gain) NextSample() float64 { return g.source.NextSample() * g.amount.Value() }

// Process fills buf with consecutive samples.
func (g *Gain) Process(buf []float64) { signal.Fill(buf, g.NextSample) }

var _ signal.Signal = (*Gain)(nil)

// Offset adds a fixed or modulated DC amount to its source.
type Offset struct {
	source signal.Signal
	amount signal.Parameter
}

// NewOffset creates an Offset node with a fixed amount.
func NewOffset(source signal.Signal, amount float64) *Offset {
	return &Offset{source: source, amount: signal.Fixed(amount)}
}

// SetAmount fixes the offset amount.
func (o *Offset) SetAmount(amount float64) { o.amount.SetFixed(amount) }

// ModulateAmount drives the offset amount from a signal source.
func (o *Offset) ModulateAmount(source signal.Signal) { o.amount.SetSource(source) }

// NextSample returns source.NextSample() + amount.
func (o *Offset) NextSample() float64 { return o.source.NextSample() + o.amount.Value() }

// Process fills buf with consecutive samples.
func (o *Offset) Process(buf []float64) { signal.Fill(buf, o.NextSample) }

var _ signal.Signal = (*Offset)(nil)

// Crossfade blends between a and b by a fixed or modulated mix in [0,1]:
// 0 is all a, 1 is all b.
type Crossfade struct {
	a, b signal.Signal
	mix  signal.Parameter
}

// NewCrossfade creates a Crossfade node with a fixed mix amount.
func NewCrossfade(a, b signal.Signal, mix float64) *Crossfade {
	return &Crossfade{a: a, b: b, mix: signal.Fixed(mix)}
}

// SetMix fixes the crossfade position.
func (c *Crossfade) SetMix(mix float64) { c.mix.SetFixed(mix) }

// ModulateMix drives the crossfade position from a signal source.
func (c *Crossfade) ModulateMix(source signal.Signal) { c.mix.SetSource(source) }

// NextSample advances a and b exactly once each, in that order, and
// returns their crossfaded blend.
func (c *Crossfade) NextSample() float64 {
	av := c.a.NextSample()
	bv := c.b.NextSample()
	mix := signal.Clamp(c.mix.Value(), 0, 1)
	return av*(1-mix) + bv*mix
}

// Process fills buf with consecutive samples.
func (c *Crossfade) Process(buf []float64) { signal.Fill(buf, c.NextSample) }

var _ signal.Signal = (*Crossfade)(nil)

// Clamp restricts its source's output to [lo, hi].
type Clamp struct {
	source signal.Signal
	lo, hi float64
}

// NewClamp creates a Clamp node over source with bounds [lo, hi].
func NewClamp(source signal.Signal, lo, hi float64) *Clamp {
	return &Clamp{source: source, lo: lo, hi: hi}
}

// NextSample returns source.NextSample() clamped to [lo, hi].
func (c *Clamp) NextSample() float64 { return signal.Clamp(c.source.NextSample(), c.lo, c.hi) }

// Process fills buf with consecutive samples.
func (c *Clamp) Process(buf []float64) { signal.Fill(buf, c.NextSample) }

var _ signal.Signal = (*Clamp)(nil)

// Map linearly remaps its source's output from [fromLo, fromHi] to
// [toLo, toHi].
type Map struct {
	source         signal.Signal
	fromLo, fromHi float64
	toLo, toHi     float64
}

// NewMap creates a Map node over source.
func NewMap(source signal.Signal, fromLo, fromHi, toLo, toHi float64) *Map {
	return &Map{source: source, fromLo: fromLo, fromHi: fromHi, toLo: toLo, toHi: toHi}
}

// NextSample remaps source.NextSample() into the target range.
func (m *Map) NextSample() float64 {
	v := m.source.NextSample()
	t := (v - m.fromLo) / (m.fromHi - m.fromLo)
	return m.toLo + t*(m.toHi-m.toLo)
}

// Process fills buf with consecutive samples.
func (m *Map) Process(buf []float64) { signal.Fill(buf, m.NextSample) }

var _ signal.Signal = (*Map)(nil)

// Gate passes its source through unchanged while open, or outputs 0
// while closed.
type Gate struct {
	source signal.Signal
	open   bool
}

// NewGate creates a Gate node, initially open.
func NewGate(source signal.Signal) *Gate { return &Gate{source: source, open: true} }

// SetOpen opens or closes the gate.
func (g *Gate) SetOpen(open bool) { g.open = open }

// NextSample always advances source by exactly one sample (so downstream
// timing is unaffected by gate state), returning 0 while closed.
func (g *Gate) NextSample() float64 {
	v := g.source.NextSample()
	if !g.open {
		return 0
	}
	return v
}

// Process fills buf with consecutive samples.
func (g *Gate) Process(buf []float64) { signal.Fill(buf, g.NextSample) }

var _ signal.Signal = (*Gate)(nil)

// Abs returns the absolute value of its source's output.
type Abs struct {
	source signal.Signal
}

// NewAbs creates an Abs node over source.
func NewAbs(source signal.Signal) *Abs { return &Abs{source: source} }

// NextSample returns |source.NextSample()|.
func (a *Abs) NextSample() float64 {
	v := a.source.NextSample()
	if v < 0 {
		return -v
	}
	return v
}

// Process fills buf with consecutive samples.
func (a *Abs) Process(buf []float64) { signal.Fill(buf, a.NextSample) }

var _ signal.Signal = (*Abs)(nil)

// MinMax clamps neither a nor b by itself; instead it advances both and
// emits either the smaller (Min) or larger (Max) value per sample.
type MinMax struct {
	a, b   signal.Signal
	useMax bool
}

// NewMin creates a MinMax node that emits the smaller of a and b.
func NewMin(a, b signal.Signal) *MinMax { return &MinMax{a: a, b: b} }

// NewMax creates a MinMax node that emits the larger of a and b.
func NewMax(a, b signal.Signal) *MinMax { return &MinMax{a: a, b: b, useMax: true} }

// NextSample advances a and b exactly once each, in that order.
func (m *MinMax) NextSample() float64 {
	av := m.a.NextSample()
	bv := m.b.NextSample()
	if m.useMax {
		if av > bv {
			return av
		}
		return bv
	}
	if av < bv {
		return av
	}
	return bv
}

// Process fills buf with consecutive samples.
func (m *MinMax) Process(buf []float64) { signal.Fill(buf, m.NextSample) }

var _ signal.Signal = (*MinMax)(nil)

// Invert negates its source's output.
type Invert struct {
	source signal.Signal
}

// NewInvert creates an Invert node over source.
func NewInvert(source signal.Signal) *Invert { return &Invert{source: source} }

// NextSample returns -source.NextSample().
func (i *Invert) NextSample() float64 { return -i.source.NextSample() }

// Process fills buf with consecutive samples.
func (i *Invert) Process(buf []float64) { signal.Fill(buf, i.NextSample) }

var _ signal.Signal = (*Invert)(nil)
