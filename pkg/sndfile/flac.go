package sndfile

import (
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

func probeFLAC(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FLAC stream: %w", err)
	}

	info := stream.Info
	rate := int(info.SampleRate)
	frames := int64(info.NSamples)
	if rate == 0 {
		return nil, fmt.Errorf("invalid FLAC header: %s", path)
	}

	return &Info{
		SampleRate: rate,
		Channels:   int(info.NChannels),
		Frames:     frames,
		Duration:   float64(frames) / float64(rate),
		BitDepth:   int(info.BitsPerSample),
	}, nil
}

func readRangeFLAC(path string, start, stop int64) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	stream, err := flac.New(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse FLAC stream: %w", err)
	}

	channels := int(stream.Info.NChannels)
	rate := int(stream.Info.SampleRate)
	scale := float64(int64(1) << (stream.Info.BitsPerSample - 1))

	out := newBuffer(channels, 0)
	var pos int64

	for stop < 0 || pos < stop {
		frame, err := stream.ParseNext()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, 0, fmt.Errorf("failed to parse FLAC frame: %w", err)
		}
		blockLen := int64(len(frame.Subframes[0].Samples))
		// Skip whole blocks before the requested range.
		if pos+blockLen <= start {
			pos += blockLen
			continue
		}
		for i := int64(0); i < blockLen; i++ {
			if pos >= start && (stop < 0 || pos < stop) {
				for c := 0; c < channels; c++ {
					out[c] = append(out[c], float64(frame.Subframes[c].Samples[i])/scale)
				}
			}
			pos++
		}
	}
	return out, rate, nil
}
