// Package delay implements a ring-buffered delay line with feedback and
// wet/dry mixing. The delay time is rounded to whole samples.
package delay

import (
	"math"

	"github.com/abytetracker/synthgraph/pkg/signal"
)

// Line is a ring-buffer delay with feedback and wet/dry mix. Buffer size
// is fixed at construction to the maximum requested delay time in
// samples plus one.
type Line struct {
	source signal.Signal

	buffer     []float64
	writeIndex int

	sampleRate int
	delayTime  signal.Parameter // seconds
	feedback   signal.Parameter
	mix        signal.Parameter
}

// New creates a delay line over source with a maximum delay time in
// seconds (the ring buffer is sized to maxDelaySeconds*sampleRate + 1).
func New(source signal.Signal, maxDelaySeconds float64, sampleRate int) *Line {
	size := int(maxDelaySeconds*float64(sampleRate)) + 1
	if size < 1 {
		size = 1
	}
	return &Line{
		source:     source,
		buffer:     make([]float64, size),
		sampleRate: sampleRate,
		delayTime:  signal.Fixed(0),
		feedback:   signal.Fixed(0),
		mix:        signal.Fixed(0.5),
	}
}

// SetDelayTime fixes the delay time in seconds.
func (l *Line) SetDelayTime(seconds float64) { l.delayTime.SetFixed(seconds) }

// ModulateDelayTime drives delay time from a signal source. Modulating
// delay time produces zipper noise at sample resolution; use Vibrato for
// interpolated pitch-modulated delay.
func (l *Line) ModulateDelayTime(source signal.Signal) { l.delayTime.SetSource(source) }

// SetFeedback fixes the feedback amount, clamped to [0, 0.99].
func (l *Line) SetFeedback(amount float64) { l.feedback.SetFixed(amount) }

// ModulateFeedback drives feedback from a signal source.
func (l *Line) ModulateFeedback(source signal.Signal) { l.feedback.SetSource(source) }

// SetMix fixes the wet/dry mix, clamped to [0, 1].
func (l *Line) SetMix(mix float64) { l.mix.SetFixed(mix) }

// ModulateMix drives the wet/dry mix from a signal source.
func (l *Line) ModulateMix(source signal.Signal) { l.mix.SetSource(source) }

// NextSample reads one sample from source, writes it (plus scaled
// feedback) into the ring buffer, and returns the wet/dry blend of the
// dry input and the delayed tap.
func (l *Line) NextSample() float64 {
	x := l.source.NextSample()

	size := len(l.buffer)
	delaySeconds := l.delayTime.Value()
	delaySamples := int(math.Round(delaySeconds * float64(l.sampleRate)))
	delaySamples = int(signal.Clamp(float64(delaySamples), 0, float64(size-1)))

	readIndex := ((l.writeIndex-delaySamples)%size + size) % size
	delayed := l.buffer[readIndex]

	feedback := signal.Clamp(l.feedback.Value(), 0, 0.99)
	l.buffer[l.writeIndex] = x + delayed*feedback
	l.writeIndex = (l.writeIndex + 1) % size

	mix := signal.Clamp(l.mix.Value(), 0, 1)
	return x*(1-mix) + delayed*mix
}

// Process fills buf with consecutive samples.
func (l *Line) Process(buf []float64) {
	signal.Fill(buf, l.NextSample)
}

var _ signal.Signal = (*Line)(nil)
