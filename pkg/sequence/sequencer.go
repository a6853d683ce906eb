package sequence

// PlayState is the sequencer's transport state.
type PlayState int

const (
	Stopped PlayState = iota
	Playing
)

// Sequencer combines a Metronome (timing) with a Pattern (note data) to
// produce note events in sync with audio sample generation. Call Tick
// once per sample from the audio callback; when it returns a non-nil
// slice, trigger those notes on a voice allocator.
type Sequencer struct {
	metronome *Metronome
	pattern   *Pattern
	state     PlayState
}

// NewSequencer creates a Sequencer at the given tempo and step
// resolution. It starts Stopped with no pattern loaded.
func NewSequencer(bpm float64, stepsPerBeat, sampleRate int) *Sequencer {
	return &Sequencer{metronome: NewMetronome(bpm, stepsPerBeat, sampleRate)}
}

// SetPattern sets the active pattern.
func (s *Sequencer) SetPattern(pattern *Pattern) { s.pattern = pattern }

// Pattern returns the active pattern, or nil if none is set.
func (s *Sequencer) Pattern() *Pattern { return s.pattern }

// ClearPattern removes the active pattern.
func (s *Sequencer) ClearPattern() { s.pattern = nil }

// Play starts (or resumes) playback without resetting position.
func (s *Sequencer) Play() { s.state = Playing }

// Stop halts playback. The current position is preserved; call Reset to
// return to step 0.
func (s *Sequencer) Stop() { s.state = Stopped }

// Reset returns the sequencer to step 0.
func (s *Sequencer) Reset() { s.metronome.Reset() }

// IsPlaying reports whether the sequencer is in the Playing state.
func (s *Sequencer) IsPlaying() bool { return s.state == Playing }

// State returns the current transport state.
func (s *Sequencer) State() PlayState { return s.state }

// SetTempo changes the tempo in BPM without disturbing timing position.
func (s *Sequencer) SetTempo(bpm float64) { s.metronome.SetTempo(bpm) }

// Tempo returns the current tempo in BPM.
func (s *Sequencer) Tempo() float64 { return s.metronome.Tempo() }

// Tick advances the sequencer by one sample. It returns nil unless a
// step boundary was crossed while playing and the active pattern has
// events at that step, in which case it returns those events (copied,
// safe for the caller to hold onto).
func (s *Sequencer) Tick() []NoteEvent {
	if s.state != Playing {
		return nil
	}
	if s.pattern == nil {
		return nil
	}

	if !s.metronome.Tick() {
		return nil
	}

	step := int((s.metronome.CurrentStep() - 1) % uint64(s.pattern.Length()))
	events := s.pattern.EventsAtStep(step)
	if len(events) == 0 {
		return nil
	}
	return events
}
