package effect

import (
	"math"

	"github.com/abytetracker/synthgraph/pkg/signal"
)

// Distortion is a tanh waveshaper with drive and wet/dry mix controls.
type Distortion struct {
	source signal.Signal
	drive  signal.Parameter // >= 0
	mix    signal.Parameter // [0,1]
}

// NewDistortion creates a Distortion over source with the given drive
// amount and wet/dry mix.
func NewDistortion(source signal.Signal, drive, mix float64) *Distortion {
	return &Distortion{source: source, drive: signal.Fixed(drive), mix: signal.Fixed(mix)}
}

// SetDrive fixes the drive amount, clamped to >= 0 on read.
func (d *Distortion) SetDrive(drive float64) { d.drive.SetFixed(drive) }

// ModulateDrive drives the drive amount from a signal source.
func (d *Distortion) ModulateDrive(source signal.Signal) { d.drive.SetSource(source) }

// SetMix fixes the wet/dry mix, clamped to [0,1].
func (d *Distortion) SetMix(mix float64) { d.mix.SetFixed(mix) }

// ModulateMix drives the wet/dry mix from a signal source.
func (d *Distortion) ModulateMix(source signal.Signal) { d.mix.SetSource(source) }

// NextSample computes output = x*(1-mix) + tanh(x*drive)*0.7*mix.
func (d *Distortion) NextSample() float64 {
	x := d.source.NextSample()
	drive := math.Max(d.drive.Value(), 0)
	mix := signal.Clamp(d.mix.Value(), 0, 1)
	shaped := math.Tanh(x*drive) * 0.7
	return x*(1-mix) + shaped*mix
}

// Process fills buf with consecutive samples.
func (d *Distortion) Process(buf []float64) {
	signal.Fill(buf, d.NextSample)
}

var _ signal.Signal = (*Distortion)(nil)

// Overdrive returns a mild distortion preset: low drive, partial mix.
func Overdrive(source signal.Signal) *Distortion {
	return NewDistortion(source, 2.0, 0.5)
}

// ClassicDistortion returns a medium distortion preset, fully wet.
func ClassicDistortion(source signal.Signal) *Distortion {
	return NewDistortion(source, 6.0, 1.0)
}

// Fuzz returns an extreme distortion preset, fully wet.
func Fuzz(source signal.Signal) *Distortion {
	return NewDistortion(source, 20.0, 1.0)
}
