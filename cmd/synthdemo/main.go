// Command synthdemo renders a YAML-defined song through the engine: a
// pool of oscillator+envelope voices allocated by a polyphonic
// Allocator, triggered by a step Sequencer, finished with a brick-wall
// Limiter. It either writes a WAV file or plays back live via oto.
package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/abytetracker/synthgraph/pkg/dynamics"
	"github.com/abytetracker/synthgraph/pkg/envelope"
	"github.com/abytetracker/synthgraph/pkg/osc"
	"github.com/abytetracker/synthgraph/pkg/sequence"
	"github.com/abytetracker/synthgraph/pkg/signal"
	"github.com/abytetracker/synthgraph/pkg/voice"
)

const defaultSampleRate = 44100

func main() {
	songPath := pflag.StringP("pattern", "p", "", "YAML song file to load (required)")
	outPath := pflag.StringP("out", "o", "", "WAV file to write; if empty and --play is not set, defaults to out.wav")
	play := pflag.BoolP("play", "l", false, "Play back live instead of writing a WAV file")
	duration := pflag.Float64P("duration", "d", 8.0, "Seconds of audio to render")
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug logging")
	pflag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if *songPath == "" {
		fmt.Fprintln(os.Stderr, "synthdemo: --pattern is required")
		pflag.Usage()
		os.Exit(2)
	}

	if err := run(*songPath, *outPath, *duration, *play); err != nil {
		log.Fatal("synthdemo failed", "error", err)
	}
}

func run(songPath, outPath string, duration float64, play bool) error {
	data, err := os.ReadFile(songPath)
	if err != nil {
		return fmt.Errorf("reading song file: %w", err)
	}

	var song songFile
	if err := yaml.Unmarshal(data, &song); err != nil {
		return fmt.Errorf("parsing song file: %w", err)
	}
	applyDefaults(&song)

	log.Info("loaded song", "tempo", song.Tempo, "voices", song.Voices, "steps", song.PatternLength)

	pattern := sequence.NewPattern(song.PatternLength)
	for _, step := range song.Steps {
		freq, err := parseNoteName(step.Note)
		if err != nil {
			return err
		}
		pattern.AddEvent(step.Step, sequence.NoteEvent{FrequencyHz: freq, Velocity: step.Velocity})
	}

	seq := sequence.NewSequencer(song.Tempo, song.StepsPerBeat, defaultSampleRate)
	seq.SetPattern(pattern)
	seq.Play()

	allocator := voice.NewAllocator(song.Voices, func() *voice.Voice {
		oscType := waveformFor(song.Instrument.Waveform)
		o := osc.New(oscType, 440.0, defaultSampleRate)
		env := envelope.NewADSR(
			song.Instrument.Attack,
			song.Instrument.Decay,
			song.Instrument.Sustain,
			song.Instrument.Release,
			defaultSampleRate,
		)
		return voice.New(o, env)
	})
	allocator.SetStrategy(strategyFor(song.Stealing))

	master := driver{seq: seq, allocator: allocator}
	limiter := dynamics.NewLimiter(master, 0.95, 0.05, defaultSampleRate)

	if play {
		rt, err := newRealtimeOutput(limiter, defaultSampleRate)
		if err != nil {
			return fmt.Errorf("opening audio device: %w", err)
		}
		defer rt.Close()
		log.Info("playing", "duration_seconds", duration)
		time.Sleep(time.Duration(duration * float64(time.Second)))
		return nil
	}

	if outPath == "" {
		outPath = "out.wav"
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	log.Info("rendering", "out", outPath, "duration_seconds", duration)
	return exportWAV(limiter, f, defaultSampleRate, duration)
}

func applyDefaults(song *songFile) {
	if song.Tempo <= 0 {
		song.Tempo = 120
	}
	if song.StepsPerBeat <= 0 {
		song.StepsPerBeat = 4
	}
	if song.PatternLength <= 0 {
		song.PatternLength = 16
	}
	if song.Voices <= 0 {
		song.Voices = 8
	}
	if song.Instrument.Waveform == "" {
		song.Instrument.Waveform = "sawtooth"
	}
	if song.Instrument.Sustain == 0 && song.Instrument.Decay == 0 && song.Instrument.Release == 0 {
		song.Instrument.Attack = 0.01
		song.Instrument.Decay = 0.1
		song.Instrument.Sustain = 0.7
		song.Instrument.Release = 0.3
	}
}

func waveformFor(name string) osc.Waveform {
	switch name {
	case "sine":
		return osc.Sine
	case "triangle":
		return osc.Triangle
	case "square":
		return osc.Square
	default:
		return osc.Sawtooth
	}
}

func strategyFor(name string) voice.StealingStrategy {
	switch name {
	case "oldest":
		return voice.Oldest
	case "quietest":
		return voice.Quietest
	default:
		return voice.Released
	}
}

// driver bridges the Sequencer's step events into the voice Allocator
// and exposes the allocator's mixed output as a single Signal, the way
// a host application drives this engine's note layer from its timing
// layer.
type driver struct {
	seq       *sequence.Sequencer
	allocator *voice.Allocator
}

func (d driver) NextSample() float64 {
	if events := d.seq.Tick(); events != nil {
		for _, e := range events {
			d.allocator.NoteOn(nearestMIDINote(e.FrequencyHz), e.Velocity)
		}
	}
	return d.allocator.NextSample()
}

// nearestMIDINote recovers the MIDI note key the Allocator expects from a
// NoteEvent's frequency in Hz, since sequence.NoteEvent carries pitch as
// Hz rather than a MIDI note. Patterns built by this demo always come
// from parseNoteName (exact semitones), so the round-trip is exact.
func nearestMIDINote(freqHz float64) int {
	return int(math.Round(69 + 12*math.Log2(freqHz/440)))
}

func (d driver) Process(buf []float64) {
	signal.Fill(buf, d.NextSample)
}

var _ signal.Signal = driver{}
