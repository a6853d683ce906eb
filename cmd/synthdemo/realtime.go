package main

import (
	"encoding/binary"

	"github.com/ebitengine/oto/v3"

	"github.com/abytetracker/synthgraph/pkg/signal"
)

// realtimeOutput pushes a signal.Signal to the system audio device via
// oto, converting float samples to signed 16-bit PCM as they are pulled.
type realtimeOutput struct {
	src        signal.Signal
	otoCtx     *oto.Context
	otoPlayer  *oto.Player
	buffer     []float64
	sampleRate int
	running    bool
}

func newRealtimeOutput(src signal.Signal, sampleRate int) (*realtimeOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	rt := &realtimeOutput{
		src:        src,
		otoCtx:     otoCtx,
		buffer:     make([]float64, 512),
		sampleRate: sampleRate,
		running:    true,
	}

	rt.otoPlayer = otoCtx.NewPlayer(&signalStream{rt: rt})
	rt.otoPlayer.SetBufferSize(sampleRate / 10)
	rt.otoPlayer.Play()

	return rt, nil
}

func (rt *realtimeOutput) Close() {
	rt.running = false
	if rt.otoPlayer != nil {
		rt.otoPlayer.Close()
	}
}

type signalStream struct {
	rt *realtimeOutput
}

func (s *signalStream) Read(buf []byte) (int, error) {
	if !s.rt.running {
		for i := range buf {
			buf[i] = 0
		}
		return len(buf), nil
	}

	samples := len(buf) / 2
	if samples > len(s.rt.buffer) {
		s.rt.buffer = make([]float64, samples)
	}

	s.rt.src.Process(s.rt.buffer[:samples])

	for i := 0; i < samples; i++ {
		sample := signal.Clamp(s.rt.buffer[i], -1.0, 1.0)
		s16 := int16(sample * 32767)
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s16))
	}

	return samples * 2, nil
}
