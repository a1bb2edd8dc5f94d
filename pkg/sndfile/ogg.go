package sndfile

import (
	"fmt"
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"
)

func probeOGG(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open OGG stream: %w", err)
	}

	rate := r.SampleRate()
	frames := r.Length()

	return &Info{
		SampleRate: rate,
		Channels:   r.Channels(),
		Frames:     frames,
		Duration:   float64(frames) / float64(rate),
		// Vorbis has no fixed bit depth.
		BitDepth: 0,
	}, nil
}

func readRangeOGG(path string, start, stop int64) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	r, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open OGG stream: %w", err)
	}

	channels := r.Channels()
	rate := r.SampleRate()

	if start > 0 {
		if err := r.SetPosition(start); err != nil {
			return nil, 0, fmt.Errorf("failed to seek OGG stream: %w", err)
		}
	}

	out := newBuffer(channels, 0)
	buf := make([]float32, 4096*channels)
	pos := start

	for stop < 0 || pos < stop {
		n, err := r.Read(buf)
		if err != nil && err != io.EOF {
			return nil, 0, fmt.Errorf("failed to read OGG data: %w", err)
		}
		if n == 0 {
			break
		}
		frames := n / channels
		for i := 0; i < frames; i++ {
			if stop >= 0 && pos >= stop {
				break
			}
			for c := 0; c < channels; c++ {
				out[c] = append(out[c], float64(buf[i*channels+c]))
			}
			pos++
		}
		if err == io.EOF {
			break
		}
	}
	return out, rate, nil
}
