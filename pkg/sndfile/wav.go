package sndfile

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV format tags, per the RIFF registry.
const (
	wavFormatPCM      = 1
	wavFormatMSADPCM  = 2
	wavFormatFloat    = 3
	wavFormatALaw     = 6
	wavFormatMuLaw    = 7
	wavFormatIMAADPCM = 17
	wavFormatGSM610   = 49
	wavFormatG721     = 64
)

// wavBitDepth maps a format tag plus the container's bits-per-sample to
// the effective bit depth of the encoding.
func wavBitDepth(audioFormat uint16, bits int) int {
	switch audioFormat {
	case wavFormatPCM, wavFormatFloat:
		return bits
	case wavFormatALaw, wavFormatMuLaw:
		return 8
	case wavFormatMSADPCM, wavFormatIMAADPCM, wavFormatG721:
		return 4
	case wavFormatGSM610:
		return 16
	default:
		return 0
	}
}

func probeWAV(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}
	if err := d.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("failed to seek to PCM data: %w", err)
	}

	channels := int(d.NumChans)
	rate := int(d.SampleRate)
	bits := int(d.BitDepth)
	if channels == 0 || rate == 0 || bits == 0 {
		return nil, fmt.Errorf("invalid WAV header: %s", path)
	}
	frames := d.PCMLen() / int64(bits/8*channels)

	return &Info{
		SampleRate: rate,
		Channels:   channels,
		Frames:     frames,
		Duration:   float64(frames) / float64(rate),
		BitDepth:   wavBitDepth(d.WavAudioFormat, bits),
	}, nil
}

func readRangeWAV(path string, start, stop int64) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}
	if err := d.FwdToPCM(); err != nil {
		return nil, 0, fmt.Errorf("failed to seek to PCM data: %w", err)
	}

	channels := int(d.NumChans)
	rate := int(d.SampleRate)
	bits := int(d.BitDepth)

	const chunkFrames = 4096
	buf := &audio.IntBuffer{
		Data: make([]int, chunkFrames*channels),
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  rate,
		},
	}

	out := newBuffer(channels, chunkFrames)
	maxVal := float64(audio.IntMaxSignedValue(bits))
	var pos int64

	for stop < 0 || pos < stop {
		n, err := d.PCMBuffer(buf)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read PCM buffer: %w", err)
		}
		if n == 0 {
			break
		}
		frames := n / channels
		for i := 0; i < frames; i++ {
			if pos >= start && (stop < 0 || pos < stop) {
				for c := 0; c < channels; c++ {
					v := buf.Data[i*channels+c]
					var s float64
					if bits == 8 {
						// 8-bit WAV is unsigned PCM
						s = float64(v-128) / 128.0
					} else {
						s = float64(v) / maxVal
					}
					out[c] = append(out[c], s)
				}
			}
			pos++
		}
	}
	return out, rate, nil
}
