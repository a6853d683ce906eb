package voice

import (
	"math"

	"github.com/abytetracker/synthgraph/pkg/pitch"
)

// StealingStrategy selects which voice to reuse when all voices in an
// Allocator's pool are active and a new note arrives.
type StealingStrategy int

const (
	// Released prefers a voice currently in its envelope's release
	// phase, falling back to Oldest when none are releasing.
	Released StealingStrategy = iota
	// Oldest steals the voice with the lowest age counter.
	Oldest
	// Quietest steals the voice with the lowest envelope level.
	Quietest
)

type voiceState struct {
	voice *Voice
	note  int // -1 when idle
	age   uint64
}

// Allocator manages a fixed pool of voices for polyphonic playback,
// allocating free voices to incoming notes and stealing active ones
// according to a StealingStrategy once the pool is exhausted.
type Allocator struct {
	voices     []voiceState
	strategy   StealingStrategy
	ageCounter uint64
}

// NewAllocator creates an Allocator with the given pool of voices. The
// stealing strategy defaults to Released. make_ is called once per pool
// slot to construct an independent Voice (its own source and envelope
// instances — voices must not share mutable state).
func NewAllocator(poolSize int, make_ func() *Voice) *Allocator {
	voices := make([]voiceState, poolSize)
	for i := range voices {
		voices[i] = voiceState{voice: make_(), note: -1}
	}
	return &Allocator{voices: voices, strategy: Released}
}

// SetStrategy sets the voice stealing strategy.
func (a *Allocator) SetStrategy(strategy StealingStrategy) {
	a.strategy = strategy
}

// NoteOn triggers the given MIDI note number, allocating a free voice or
// stealing one according to the configured strategy. The sounding
// frequency is derived from the MIDI note itself so it can never
// disagree with the note used for note-off lookup and stealing.
func (a *Allocator) NoteOn(note int, velocity float64) {
	idx := a.findVoiceToUse()

	a.ageCounter++
	state := &a.voices[idx]
	state.note = note
	state.age = a.ageCounter
	state.voice.NoteOn(pitch.MIDIToHz(uint8(note)), velocity)
}

// NoteOff releases the first voice found playing the given note.
func (a *Allocator) NoteOff(note int) {
	for i := range a.voices {
		if a.voices[i].note == note {
			a.voices[i].voice.NoteOff()
			a.voices[i].note = -1
			return
		}
	}
}

// AllNotesOff releases every currently playing voice.
func (a *Allocator) AllNotesOff() {
	for i := range a.voices {
		a.voices[i].voice.NoteOff()
		a.voices[i].note = -1
	}
}

// IsNotePlaying reports whether the given note is assigned to any voice.
func (a *Allocator) IsNotePlaying(note int) bool {
	for i := range a.voices {
		if a.voices[i].note == note {
			return true
		}
	}
	return false
}

// ActiveVoiceCount returns the number of voices whose envelope is still
// producing sound.
func (a *Allocator) ActiveVoiceCount() int {
	count := 0
	for i := range a.voices {
		if a.voices[i].voice.IsActive() {
			count++
		}
	}
	return count
}

func (a *Allocator) findVoiceToUse() int {
	for i := range a.voices {
		if !a.voices[i].voice.IsActive() {
			return i
		}
	}
	return a.findVoiceToSteal()
}

func (a *Allocator) findVoiceToSteal() int {
	switch a.strategy {
	case Oldest:
		return a.findOldestVoice()
	case Quietest:
		return a.findQuietestVoice()
	default:
		return a.findReleasedOrOldestVoice()
	}
}

func (a *Allocator) findOldestVoice() int {
	best := 0
	for i := 1; i < len(a.voices); i++ {
		if a.voices[i].age < a.voices[best].age {
			best = i
		}
	}
	return best
}

func (a *Allocator) findQuietestVoice() int {
	best := 0
	bestLevel := math.Abs(a.voices[0].voice.EnvelopeLevel())
	for i := 1; i < len(a.voices); i++ {
		level := math.Abs(a.voices[i].voice.EnvelopeLevel())
		if level < bestLevel {
			best = i
			bestLevel = level
		}
	}
	return best
}

func (a *Allocator) findReleasedOrOldestVoice() int {
	best := -1
	for i := range a.voices {
		if !a.voices[i].voice.IsReleasing() {
			continue
		}
		if best == -1 || a.voices[i].age < a.voices[best].age {
			best = i
		}
	}
	if best == -1 {
		return a.findOldestVoice()
	}
	return best
}

// NextSample sums every voice's output and normalizes by 1/sqrt(pool
// size) to avoid clipping when several voices sound at once while
// preserving perceived loudness, assuming voices are not fully
// phase-correlated.
func (a *Allocator) NextSample() float64 {
	var sum float64
	for i := range a.voices {
		sum += a.voices[i].voice.NextSample()
	}
	return sum / math.Sqrt(float64(len(a.voices)))
}

// Process fills buf with consecutive samples.
func (a *Allocator) Process(buf []float64) {
	for i := range buf {
		buf[i] = a.NextSample()
	}
}
