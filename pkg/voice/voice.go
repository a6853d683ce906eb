// Package voice combines a pitched signal with an envelope into a single
// playable note, and provides a fixed-pool polyphonic allocator on top.
package voice

import (
	"github.com/abytetracker/synthgraph/pkg/envelope"
	"github.com/abytetracker/synthgraph/pkg/signal"
)

// Source is a signal that can also report and set its own frequency, the
// combination required to play a pitched note.
type Source interface {
	signal.Signal
	signal.Pitched
}

// Voice is a single playable note: a pitched signal source paired with an
// amplitude envelope. The output of NextSample is the source sample
// scaled by the envelope's current level.
type Voice struct {
	Source   Source
	Envelope envelope.Envelope

	lastLevel float64
}

// New creates a Voice over the given source and envelope.
func New(source Source, env envelope.Envelope) *Voice {
	return &Voice{Source: source, Envelope: env}
}

// NoteOn sets the source frequency and triggers the envelope at the
// given velocity.
func (v *Voice) NoteOn(freqHz, velocity float64) {
	v.Source.SetFrequency(freqHz)
	v.Envelope.Trigger(velocity)
}

// NoteOff releases the envelope, starting its release phase.
func (v *Voice) NoteOff() {
	v.Envelope.Release()
}

// IsActive reports whether the voice's envelope is still producing sound.
func (v *Voice) IsActive() bool {
	return v.Envelope.IsActive()
}

// IsReleasing reports whether the voice is in its envelope's final
// decay-to-Idle phase (used by the Released stealing strategy).
func (v *Voice) IsReleasing() bool {
	return v.Envelope.IsReleasing()
}

// EnvelopeLevel returns the envelope's last computed sample, used by the
// Quietest stealing strategy without advancing the voice.
func (v *Voice) EnvelopeLevel() float64 {
	return v.lastLevel
}

// NextSample advances the source and the envelope exactly once each and
// returns their product.
func (v *Voice) NextSample() float64 {
	s := v.Source.NextSample()
	e := v.Envelope.NextSample()
	v.lastLevel = e
	return s * e
}

// Process fills buf with consecutive samples.
func (v *Voice) Process(buf []float64) {
	signal.Fill(buf, v.NextSample)
}

var _ signal.Signal = (*Voice)(nil)
