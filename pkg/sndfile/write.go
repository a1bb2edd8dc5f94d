package sndfile

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWav encodes a channel-major float64 signal as PCM WAV. Samples are
// expected in [-1.0, 1.0]; values outside that range are clipped by the
// integer conversion.
func WriteWav(path string, data [][]float64, rate, bitDepth int) error {
	channels := len(data)
	if channels == 0 {
		return fmt.Errorf("cannot write WAV file without channels")
	}
	frames := len(data[0])

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, bitDepth, channels, wavFormatPCM)

	maxVal := float64(audio.IntMaxSignedValue(bitDepth))
	buf := &audio.IntBuffer{
		Data: make([]int, frames*channels),
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  rate,
		},
		SourceBitDepth: bitDepth,
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			v := data[c][i]
			var s int
			if bitDepth == 8 {
				// 8-bit WAV is unsigned PCM
				s = int(math.Round(v*127)) + 128
			} else {
				s = int(math.Round(v * maxVal))
			}
			buf.Data[i*channels+c] = s
		}
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write PCM data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	return nil
}
