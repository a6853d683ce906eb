package main

import (
	"encoding/binary"
	"io"

	"github.com/abytetracker/synthgraph/pkg/signal"
)

// wavWriter writes 16-bit mono PCM WAV data, mirroring the simple
// streaming writer pattern used by the engine's original tracker
// exporter: a fixed header up front sized from a known sample count,
// then raw PCM samples clamped to [-1, 1].
type wavWriter struct {
	w           io.Writer
	sampleRate  int
	channels    int
	dataWritten int
}

func newWAVWriter(w io.Writer, sampleRate, channels int) *wavWriter {
	return &wavWriter{w: w, sampleRate: sampleRate, channels: channels}
}

func (w *wavWriter) writeHeader(dataSize int) error {
	if _, err := w.w.Write([]byte("RIFF")); err != nil {
		return err
	}
	if err := binary.Write(w.w, binary.LittleEndian, uint32(dataSize+36)); err != nil {
		return err
	}
	if _, err := w.w.Write([]byte("WAVE")); err != nil {
		return err
	}

	if _, err := w.w.Write([]byte("fmt ")); err != nil {
		return err
	}
	binary.Write(w.w, binary.LittleEndian, uint32(16))
	binary.Write(w.w, binary.LittleEndian, uint16(1))
	binary.Write(w.w, binary.LittleEndian, uint16(w.channels))
	binary.Write(w.w, binary.LittleEndian, uint32(w.sampleRate))
	byteRate := w.sampleRate * w.channels * 2
	binary.Write(w.w, binary.LittleEndian, uint32(byteRate))
	blockAlign := w.channels * 2
	binary.Write(w.w, binary.LittleEndian, uint16(blockAlign))
	binary.Write(w.w, binary.LittleEndian, uint16(16))

	if _, err := w.w.Write([]byte("data")); err != nil {
		return err
	}
	return binary.Write(w.w, binary.LittleEndian, uint32(dataSize))
}

func (w *wavWriter) writeSamples(samples []float64) error {
	for _, s := range samples {
		s = signal.Clamp(s, -1.0, 1.0)
		s16 := int16(s * 32767)
		if err := binary.Write(w.w, binary.LittleEndian, s16); err != nil {
			return err
		}
		w.dataWritten += 2
	}
	return nil
}

// exportWAV renders durationSeconds worth of audio from src to w as a
// 16-bit mono WAV file, generating in fixed-size chunks.
func exportWAV(src signal.Signal, w io.Writer, sampleRate int, durationSeconds float64) error {
	totalSamples := int(durationSeconds * float64(sampleRate))
	dataSize := totalSamples * 2

	writer := newWAVWriter(w, sampleRate, 1)
	if err := writer.writeHeader(dataSize); err != nil {
		return err
	}

	const chunkSize = 4096
	buffer := make([]float64, chunkSize)
	for written := 0; written < totalSamples; {
		remaining := totalSamples - written
		buf := buffer
		if remaining < chunkSize {
			buf = buffer[:remaining]
		}
		src.Process(buf)
		if err := writer.writeSamples(buf); err != nil {
			return err
		}
		written += len(buf)
	}
	return nil
}
