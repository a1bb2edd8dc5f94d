// Package sndfile is the native codec layer. It decodes and probes WAV,
// FLAC, MP3, and OGG files with pure-Go codec libraries and encodes WAV
// files. Every other container has to be transcoded by an external tool
// before this package can touch it.
package sndfile

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrFormat is returned for files whose extension no native codec handles.
var ErrFormat = errors.New("format not supported by the native codec layer")

// Info describes a natively decodable audio file.
type Info struct {
	SampleRate int
	Channels   int
	Frames     int64
	Duration   float64 // seconds
	// BitDepth is the fixed bit depth of the encoding, or 0 for codecs
	// without one (MP3, OGG).
	BitDepth int
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// IsNative reports whether the file extension belongs to a natively
// decodable format.
func IsNative(path string) bool {
	switch extension(path) {
	case "wav", "flac", "mp3", "ogg":
		return true
	}
	return false
}

// Probe reads the file header and returns its metadata without decoding
// samples, except for MP3 where the frame index has to be scanned to
// obtain an exact frame count.
func Probe(path string) (*Info, error) {
	switch extension(path) {
	case "wav":
		return probeWAV(path)
	case "flac":
		return probeFLAC(path)
	case "mp3":
		return probeMP3(path)
	case "ogg":
		return probeOGG(path)
	default:
		return nil, ErrFormat
	}
}

// ReadRange decodes the sample range [start, stop) into a channel-major
// float64 buffer and returns it together with the sampling rate.
// stop == -1 reads to the end of the stream. Requesting a range past the
// end of the signal yields the overlapping part only.
func ReadRange(path string, start, stop int64) ([][]float64, int, error) {
	switch extension(path) {
	case "wav":
		return readRangeWAV(path, start, stop)
	case "flac":
		return readRangeFLAC(path, start, stop)
	case "mp3":
		return readRangeMP3(path, start, stop)
	case "ogg":
		return readRangeOGG(path, start, stop)
	default:
		return nil, 0, ErrFormat
	}
}

// newBuffer allocates a channel-major sample buffer.
func newBuffer(channels int, frames int64) [][]float64 {
	data := make([][]float64, channels)
	for c := range data {
		data[c] = make([]float64, 0, frames)
	}
	return data
}
