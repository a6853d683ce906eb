package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abytetracker/synthgraph/pkg/pitch"
)

// songFile is the on-disk YAML shape loaded for the demo: a tempo, an
// instrument definition shared by every voice, and a flat step list.
// This is intentionally simple — it is a demonstration host, not a
// project file format the engine itself depends on.
type songFile struct {
	Tempo         float64       `yaml:"tempo"`
	StepsPerBeat  int           `yaml:"steps_per_beat"`
	PatternLength int           `yaml:"pattern_length"`
	Voices        int           `yaml:"voices"`
	Stealing      string        `yaml:"stealing"`
	Instrument    instrumentDef `yaml:"instrument"`
	Steps         []stepDef     `yaml:"steps"`
}

type instrumentDef struct {
	Waveform string  `yaml:"waveform"`
	Attack   float64 `yaml:"attack"`
	Decay    float64 `yaml:"decay"`
	Sustain  float64 `yaml:"sustain"`
	Release  float64 `yaml:"release"`
}

type stepDef struct {
	Step     int     `yaml:"step"`
	Note     string  `yaml:"note"`
	Velocity float64 `yaml:"velocity"`
}

var noteClasses = map[string]pitch.Class{
	"C": pitch.C, "C#": pitch.CSharp, "D": pitch.D, "D#": pitch.DSharp,
	"E": pitch.E, "F": pitch.F, "F#": pitch.FSharp, "G": pitch.G,
	"G#": pitch.GSharp, "A": pitch.A, "A#": pitch.ASharp, "B": pitch.B,
}

// parseNoteName converts a note name like "C4" or "F#3" to a frequency
// in Hz. The digits (with optional leading '-') are the octave; anything
// before them is the pitch class name.
func parseNoteName(name string) (float64, error) {
	i := strings.IndexAny(name, "-0123456789")
	if i <= 0 {
		return 0, fmt.Errorf("synthdemo: invalid note name %q", name)
	}
	class, ok := noteClasses[name[:i]]
	if !ok {
		return 0, fmt.Errorf("synthdemo: unknown pitch class %q", name[:i])
	}
	octave, err := strconv.Atoi(name[i:])
	if err != nil {
		return 0, fmt.Errorf("synthdemo: invalid octave in %q: %w", name, err)
	}
	return pitch.ToHz(class, octave), nil
}
