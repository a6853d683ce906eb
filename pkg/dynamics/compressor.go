// Package dynamics implements the RMS-detecting compressor (using a
// circular-buffer envelope detector) and the peak-following limiter
// (which reads the instantaneous |x| and uses no detector buffer).
package dynamics

import (
	"math"

	"github.com/abytetracker/synthgraph/pkg/signal"
)

const rmsFloor = 1e-4

// rmsDetector holds a circular buffer of |x| samples over an
// approximately fixed time window and computes its RMS on demand.
type rmsDetector struct {
	buffer []float64
	index  int
	sum    float64 // running sum of squares
}

func newRMSDetector(sampleRate int, windowSeconds float64) *rmsDetector {
	n := int(float64(sampleRate) * windowSeconds)
	if n < 1 {
		n = 1
	}
	return &rmsDetector{buffer: make([]float64, n)}
}

func (d *rmsDetector) push(x float64) float64 {
	abs := math.Abs(x)
	old := d.buffer[d.index]
	d.sum += abs*abs - old*old
	d.buffer[d.index] = abs
	d.index = (d.index + 1) % len(d.buffer)
	if d.sum < 0 {
		d.sum = 0
	}
	return math.Sqrt(d.sum / float64(len(d.buffer)))
}

// Compressor implements RMS-detected dynamic range compression with a
// hard or soft knee and a one-pole attack/release gain smoother.
type Compressor struct {
	source signal.Signal

	detector *rmsDetector

	sampleRate int
	threshold  signal.Parameter // linear, > 0
	ratio      signal.Parameter // >= 1
	kneeDB     signal.Parameter // >= 0
	attack     signal.Parameter // seconds
	release    signal.Parameter // seconds

	currentGain float64
}

// NewCompressor creates a Compressor reading from source with an
// approximately 10ms RMS detection window.
func NewCompressor(source signal.Signal, sampleRate int) *Compressor {
	return &Compressor{
		source:      source,
		detector:    newRMSDetector(sampleRate, 0.010),
		sampleRate:  sampleRate,
		threshold:   signal.Fixed(1.0),
		ratio:       signal.Fixed(1.0),
		kneeDB:      signal.Fixed(0),
		attack:      signal.Fixed(0.01),
		release:     signal.Fixed(0.1),
		currentGain: 1,
	}
}

// SetThreshold fixes the linear threshold above which gain reduction
// begins.
func (c *Compressor) SetThreshold(linear float64) { c.threshold.SetFixed(linear) }

// ModulateThreshold drives the threshold from a signal source.
func (c *Compressor) ModulateThreshold(source signal.Signal) { c.threshold.SetSource(source) }

// SetRatio fixes the compression ratio (clamped to >= 1 on read).
func (c *Compressor) SetRatio(ratio float64) { c.ratio.SetFixed(ratio) }

// ModulateRatio drives the ratio from a signal source.
func (c *Compressor) ModulateRatio(source signal.Signal) { c.ratio.SetSource(source) }

// SetKnee fixes the knee width in dB (0 = hard knee).
func (c *Compressor) SetKnee(db float64) { c.kneeDB.SetFixed(db) }

// ModulateKnee drives the knee width from a signal source.
func (c *Compressor) ModulateKnee(source signal.Signal) { c.kneeDB.SetSource(source) }

// SetAttack fixes the attack time constant in seconds.
func (c *Compressor) SetAttack(seconds float64) { c.attack.SetFixed(seconds) }

// SetRelease fixes the release time constant in seconds.
func (c *Compressor) SetRelease(seconds float64) { c.release.SetFixed(seconds) }

// CurrentGain returns the most recently applied linear gain, for
// metering.
func (c *Compressor) CurrentGain() float64 { return c.currentGain }

// NextSample advances the detector and gain smoother and returns the
// compressed output.
func (c *Compressor) NextSample() float64 {
	x := c.source.NextSample()

	level := c.detector.push(x)
	levelDB := 20 * math.Log10(math.Max(level, rmsFloor))

	threshold := math.Max(c.threshold.Value(), rmsFloor)
	thresholdDB := 20 * math.Log10(threshold)
	ratio := math.Max(c.ratio.Value(), 1)
	knee := math.Max(c.kneeDB.Value(), 0)

	grDB := gainReductionDB(levelDB, thresholdDB, ratio, knee)
	target := math.Pow(10, -grDB/20)

	var tau float64
	if target < c.currentGain {
		tau = math.Max(c.attack.Value(), 1e-6)
	} else {
		tau = math.Max(c.release.Value(), 1e-6)
	}
	alpha := 1 - math.Exp(-1/(tau*float64(c.sampleRate)))
	c.currentGain += alpha * (target - c.currentGain)

	return x * c.currentGain
}

// gainReductionDB computes the Compressor's gain reduction in dB for a
// given detected level: a hard knee when kneeDB is 0, otherwise a soft
// knee of width kneeDB centred on the threshold.
func gainReductionDB(levelDB, thresholdDB, ratio, kneeDB float64) float64 {
	slope := 1 - 1/ratio
	if kneeDB == 0 {
		if levelDB > thresholdDB {
			return (levelDB - thresholdDB) * slope
		}
		return 0
	}

	start := thresholdDB - kneeDB/2
	end := thresholdDB + kneeDB/2
	switch {
	case levelDB >= end:
		return (levelDB - thresholdDB) * slope
	case levelDB > start:
		w := (levelDB - start) / kneeDB
		return w * (levelDB - thresholdDB) * slope
	default:
		return 0
	}
}

// Process fills buf with consecutive samples.
func (c *Compressor) Process(buf []float64) {
	signal.Fill(buf, c.NextSample)
}

var _ signal.Signal = (*Compressor)(nil)
