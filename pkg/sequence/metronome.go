// Package sequence provides sample-accurate musical timing (Metronome),
// step-based note data (Pattern) and the transport that ties them
// together (Sequencer).
package sequence

// Metronome tracks musical time in beats and step subdivisions,
// converting between musical time and audio sample time using a
// floating-point accumulator so that long-running playback does not
// drift from the requested tempo.
type Metronome struct {
	bpm          float64
	stepsPerBeat int
	sampleRate   int

	samplesPerStep float64
	accumulator    float64
	currentStep    uint64
}

// NewMetronome creates a Metronome at the given tempo and step
// resolution (4 = 16th notes, 2 = 8th notes, 1 = quarter notes).
func NewMetronome(bpm float64, stepsPerBeat, sampleRate int) *Metronome {
	if bpm <= 0 {
		panic("sequence: bpm must be greater than 0")
	}
	if stepsPerBeat <= 0 {
		panic("sequence: stepsPerBeat must be greater than 0")
	}
	return &Metronome{
		bpm:            bpm,
		stepsPerBeat:   stepsPerBeat,
		sampleRate:     sampleRate,
		samplesPerStep: samplesPerStep(bpm, stepsPerBeat, sampleRate),
	}
}

func samplesPerStep(bpm float64, stepsPerBeat, sampleRate int) float64 {
	beatsPerSecond := bpm / 60.0
	stepsPerSecond := beatsPerSecond * float64(stepsPerBeat)
	return float64(sampleRate) / stepsPerSecond
}

// Tick advances the metronome by one sample and reports whether a step
// boundary was crossed.
func (m *Metronome) Tick() bool {
	m.accumulator++
	if m.accumulator >= m.samplesPerStep {
		m.accumulator -= m.samplesPerStep
		m.currentStep++
		return true
	}
	return false
}

// CurrentStep returns the step counter, incremented on every boundary
// crossing and never reset except by Reset.
func (m *Metronome) CurrentStep() uint64 {
	return m.currentStep
}

// Reset returns the metronome to step 0 and clears the accumulator.
func (m *Metronome) Reset() {
	m.accumulator = 0
	m.currentStep = 0
}

// SetTempo changes the tempo in BPM. The sample accumulator is left
// untouched so a tempo change mid-step does not reset timing — only the
// length of the step in progress (and beyond) changes.
func (m *Metronome) SetTempo(bpm float64) {
	if bpm <= 0 {
		panic("sequence: bpm must be greater than 0")
	}
	m.bpm = bpm
	m.samplesPerStep = samplesPerStep(bpm, m.stepsPerBeat, m.sampleRate)
}

// Tempo returns the current tempo in BPM.
func (m *Metronome) Tempo() float64 {
	return m.bpm
}

// StepsPerBeat returns the configured step subdivision.
func (m *Metronome) StepsPerBeat() int {
	return m.stepsPerBeat
}
