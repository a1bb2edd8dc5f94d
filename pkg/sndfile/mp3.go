package sndfile

import (
	"fmt"
	"io"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// go-mp3 always decodes to interleaved 16-bit stereo, 4 bytes per frame.
const mp3BytesPerFrame = 4

// mp3Channels returns the channel count declared by the first MPEG frame
// header. go-mp3 upmixes mono streams to stereo during decoding, so the
// header is the only place the real channel count survives. Unreadable
// or unrecognizable data falls back to the stereo carrier.
func mp3Channels(r io.ReadSeeker) int {
	var tag [3]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return 2
	}
	if string(tag[:]) == "ID3" {
		// version (2), flags (1), syncsafe size (4)
		var rest [7]byte
		if _, err := io.ReadFull(r, rest[:]); err != nil {
			return 2
		}
		size := int64(rest[3]&0x7f)<<21 | int64(rest[4]&0x7f)<<14 |
			int64(rest[5]&0x7f)<<7 | int64(rest[6]&0x7f)
		if _, err := r.Seek(10+size, io.SeekStart); err != nil {
			return 2
		}
	} else if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 2
	}

	buf := make([]byte, 64*1024)
	n, _ := io.ReadFull(r, buf)
	for i := 0; i+3 < n; i++ {
		if buf[i] == 0xff && buf[i+1]&0xe0 == 0xe0 {
			// Channel mode 3 is single channel.
			if buf[i+3]>>6 == 3 {
				return 1
			}
			return 2
		}
	}
	return 2
}

func probeMP3(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	channels := mp3Channels(f)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create MP3 decoder: %w", err)
	}

	rate := d.SampleRate()
	frames := d.Length() / mp3BytesPerFrame

	return &Info{
		SampleRate: rate,
		Channels:   channels,
		Frames:     frames,
		Duration:   float64(frames) / float64(rate),
		// MP3 has no fixed bit depth.
		BitDepth: 0,
	}, nil
}

func readRangeMP3(path string, start, stop int64) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	channels := mp3Channels(f)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, 0, err
	}

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create MP3 decoder: %w", err)
	}
	rate := d.SampleRate()

	if start > 0 {
		if _, err := d.Seek(start*mp3BytesPerFrame, io.SeekStart); err != nil {
			return nil, 0, fmt.Errorf("failed to seek MP3 stream: %w", err)
		}
	}

	out := newBuffer(channels, 0)
	buf := make([]byte, 4096*mp3BytesPerFrame)
	pos := start

	for stop < 0 || pos < stop {
		n, err := d.Read(buf)
		if err != nil && err != io.EOF {
			return nil, 0, fmt.Errorf("failed to read MP3 data: %w", err)
		}
		if n == 0 {
			break
		}
		frames := n / mp3BytesPerFrame
		for i := 0; i < frames; i++ {
			if stop >= 0 && pos >= stop {
				break
			}
			// A mono stream decodes with both carrier channels identical,
			// so the left channel alone is the signal.
			left := int16(buf[i*4]) | int16(buf[i*4+1])<<8
			out[0] = append(out[0], float64(left)/32768.0)
			if channels == 2 {
				right := int16(buf[i*4+2]) | int16(buf[i*4+3])<<8
				out[1] = append(out[1], float64(right)/32768.0)
			}
			pos++
		}
		if err == io.EOF {
			break
		}
	}
	return out, rate, nil
}
