package pitch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abytetracker/synthgraph/pkg/pitch"
)

func TestMIDIToHz(t *testing.T) {
	tests := []struct {
		name string
		note uint8
		want float64
		delta float64
	}{
		{"A4 is 440Hz", 69, 440.0, 0.001},
		{"A3 is half of A4", 57, 220.0, 0.001},
		{"A5 is double A4", 81, 880.0, 0.001},
		{"C4 middle C", 60, 261.6256, 0.001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, pitch.MIDIToHz(tt.note), tt.delta)
		})
	}
}

func TestToMIDI(t *testing.T) {
	tests := []struct {
		name   string
		class  pitch.Class
		octave int
		want   uint8
	}{
		{"C4 is 60", pitch.C, 4, 60},
		{"A4 is 69", pitch.A, 4, 69},
		{"C-1 is 0", pitch.C, -1, 0},
		{"G9 reaches top of range", pitch.G, 9, 127},
		{"C10 clamps to 127", pitch.C, 10, 127},
		{"far below zero clamps to 0", pitch.C, -10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pitch.ToMIDI(tt.class, tt.octave))
		})
	}
}

func TestToHz(t *testing.T) {
	assert.InDelta(t, 440.0, pitch.ToHz(pitch.A, 4), 0.001)
}

func TestToMIDIAlwaysInRange(t *testing.T) {
	for octave := -20; octave <= 20; octave++ {
		for class := pitch.C; class <= pitch.B; class++ {
			note := pitch.ToMIDI(class, octave)
			assert.GreaterOrEqual(t, note, uint8(0))
			assert.LessOrEqual(t, note, uint8(127))
		}
	}
}
