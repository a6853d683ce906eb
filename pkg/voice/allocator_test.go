package voice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abytetracker/synthgraph/pkg/envelope"
	"github.com/abytetracker/synthgraph/pkg/osc"
	"github.com/abytetracker/synthgraph/pkg/pitch"
	"github.com/abytetracker/synthgraph/pkg/voice"
)

const sr = 44100

func newTestVoice() *voice.Voice {
	o := osc.New(osc.Sawtooth, 440, sr)
	env := envelope.NewADSR(0.01, 0.05, 0.7, 0.2, sr)
	return voice.New(o, env)
}

func TestVoiceNoteOnSetsFrequencyAndTriggersEnvelope(t *testing.T) {
	o := osc.New(osc.Sine, 0, sr)
	env := envelope.NewADSR(0, 0.01, 1, 0.01, sr)
	v := voice.New(o, env)

	v.NoteOn(pitch.MIDIToHz(69), 1.0)
	assert.InDelta(t, 440.0, o.Frequency(), 1e-6)
	assert.True(t, v.IsActive())
}

func TestVoiceNextSampleAdvancesBothSourceAndEnvelope(t *testing.T) {
	o := osc.New(osc.Sine, 1000, sr)
	env := envelope.NewADSR(0, 0, 1, 0, sr)
	v := voice.New(o, env)

	v.NoteOn(1000, 1.0)
	refOsc := osc.New(osc.Sine, 1000, sr)
	for i := 0; i < 10; i++ {
		expected := refOsc.NextSample() * 1.0
		assert.InDelta(t, expected, v.NextSample(), 1e-9)
	}
}

func TestAllocatorFourSimultaneousNotesFillPool(t *testing.T) {
	a := voice.NewAllocator(4, newTestVoice)
	a.NoteOn(60, 1.0)
	a.NoteOn(62, 1.0)
	a.NoteOn(64, 1.0)
	a.NoteOn(65, 1.0)

	assert.Equal(t, 4, a.ActiveVoiceCount())
	assert.True(t, a.IsNotePlaying(60))
	assert.True(t, a.IsNotePlaying(65))
}

func TestAllocatorOldestStrategyEvictsFirstNote(t *testing.T) {
	a := voice.NewAllocator(4, newTestVoice)
	a.SetStrategy(voice.Oldest)

	a.NoteOn(60, 1.0)
	a.NoteOn(62, 1.0)
	a.NoteOn(64, 1.0)
	a.NoteOn(65, 1.0)
	a.NoteOn(67, 1.0)

	assert.False(t, a.IsNotePlaying(60))
	assert.True(t, a.IsNotePlaying(62))
	assert.True(t, a.IsNotePlaying(64))
	assert.True(t, a.IsNotePlaying(65))
	assert.True(t, a.IsNotePlaying(67))
	assert.Equal(t, 4, a.ActiveVoiceCount())
}

func TestAllocatorNoteOffReleasesVoice(t *testing.T) {
	a := voice.NewAllocator(2, newTestVoice)
	a.NoteOn(60, 1.0)
	a.NoteOff(60)
	assert.False(t, a.IsNotePlaying(60))
}

func TestAllocatorNoteOffUnknownNoteIsNoop(t *testing.T) {
	a := voice.NewAllocator(2, newTestVoice)
	a.NoteOn(60, 1.0)
	a.NoteOff(99)
	assert.True(t, a.IsNotePlaying(60))
}

func TestAllocatorAllNotesOffReleasesEveryVoice(t *testing.T) {
	a := voice.NewAllocator(3, newTestVoice)
	a.NoteOn(60, 1.0)
	a.NoteOn(62, 1.0)
	a.AllNotesOff()
	assert.False(t, a.IsNotePlaying(60))
	assert.False(t, a.IsNotePlaying(62))
}

func TestAllocatorQuietestStrategyStealsLowestLevel(t *testing.T) {
	a := voice.NewAllocator(2, func() *voice.Voice {
		o := osc.New(osc.Sine, 440, sr)
		env := envelope.NewADSR(0.5, 0.1, 0.7, 0.5, sr)
		return voice.New(o, env)
	})
	a.SetStrategy(voice.Quietest)

	// Voice 0 gets a head start in its attack ramp, so by the time voice
	// 1 triggers and both have advanced further, voice 1's level is the
	// lower of the two and is the one stolen.
	a.NoteOn(60, 1.0)
	for i := 0; i < 5; i++ {
		a.NextSample()
	}
	a.NoteOn(62, 1.0)
	for i := 0; i < 2; i++ {
		a.NextSample()
	}
	a.NoteOn(64, 1.0)

	assert.False(t, a.IsNotePlaying(62))
	assert.True(t, a.IsNotePlaying(60))
	assert.True(t, a.IsNotePlaying(64))
}

func TestAllocatorSumsAllVoicesNormalized(t *testing.T) {
	a := voice.NewAllocator(4, func() *voice.Voice {
		o := osc.New(osc.Square, 0, sr)
		env := envelope.NewADSR(0, 0, 1, 0, sr)
		return voice.New(o, env)
	})
	for i := 0; i < 4; i++ {
		a.NoteOn(60+i, 1.0)
	}
	// Every voice at phase 0 outputs square(0)=+1, times envelope 1; the
	// sum 4 is divided by sqrt(4), giving 2.
	assert.InDelta(t, 2.0, a.NextSample(), 1e-9)
}
