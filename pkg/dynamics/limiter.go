package dynamics

import (
	"math"

	"github.com/abytetracker/synthgraph/pkg/signal"
)

const limiterFloor = 1e-4

// Limiter is a peak-following brick-wall limiter: instant attack, smooth
// release. It is a compressor with infinite ratio and zero attack time,
// specialized here for clarity and to avoid paying the RMS detector's
// window cost on every sample.
type Limiter struct {
	source signal.Signal

	sampleRate int
	threshold  signal.Parameter
	release    signal.Parameter

	currentGain float64
}

// NewLimiter creates a Limiter reading from source with the given linear
// threshold and release time in seconds.
func NewLimiter(source signal.Signal, threshold, releaseSeconds float64, sampleRate int) *Limiter {
	return &Limiter{
		source:      source,
		sampleRate:  sampleRate,
		threshold:   signal.Fixed(threshold),
		release:     signal.Fixed(releaseSeconds),
		currentGain: 1,
	}
}

// SetThreshold fixes the linear threshold above which the limiter engages.
func (l *Limiter) SetThreshold(linear float64) { l.threshold.SetFixed(linear) }

// ModulateThreshold drives the threshold from a signal source.
func (l *Limiter) ModulateThreshold(source signal.Signal) { l.threshold.SetSource(source) }

// SetRelease fixes the release time constant in seconds.
func (l *Limiter) SetRelease(seconds float64) { l.release.SetFixed(seconds) }

// CurrentGain returns the most recently applied linear gain.
func (l *Limiter) CurrentGain() float64 { return l.currentGain }

// NextSample advances the gain follower and returns the limited output.
func (l *Limiter) NextSample() float64 {
	x := l.source.NextSample()

	threshold := math.Max(l.threshold.Value(), limiterFloor)
	abs := math.Abs(x)

	target := 1.0
	if abs > threshold {
		target = threshold / math.Max(abs, limiterFloor)
	}

	if target < l.currentGain {
		l.currentGain = target
	} else {
		tau := math.Max(l.release.Value(), 1e-6)
		alpha := 1 - math.Exp(-1/(tau*float64(l.sampleRate)))
		l.currentGain += alpha * (target - l.currentGain)
	}

	return x * l.currentGain
}

// Process fills buf with consecutive samples.
func (l *Limiter) Process(buf []float64) {
	signal.Fill(buf, l.NextSample)
}

var _ signal.Signal = (*Limiter)(nil)
