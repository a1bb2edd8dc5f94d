package audio

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/audiokit/audiofile/pkg/sndfile"
)

func assertExists(file string) error {
	if _, err := os.Stat(file); err != nil {
		return &FileMissingError{File: file}
	}
	return nil
}

// Channels returns the number of channels in the file.
func Channels(file string) (int, error) {
	if err := assertExists(file); err != nil {
		return 0, err
	}
	if sndfile.IsNative(file) {
		info, err := sndfile.Probe(file)
		if err != nil {
			return 0, &BrokenFileError{File: file}
		}
		return info.Channels, nil
	}

	ctx := context.Background()
	if soxTool.Available() {
		if channels, err := soxTool.Channels(ctx, file); err == nil {
			return channels, nil
		}
	}
	if !ffTool.ProbeAvailable() {
		return 0, &BinaryMissingError{Tool: "ffprobe"}
	}
	md, err := ffTool.GetMetadata(ctx, file)
	if err != nil || md.Channels == 0 {
		return 0, &BrokenFileError{File: file}
	}
	return md.Channels, nil
}

// SamplingRate returns the sampling rate of the file in Hz.
func SamplingRate(file string) (int, error) {
	if err := assertExists(file); err != nil {
		return 0, err
	}
	if sndfile.IsNative(file) {
		info, err := sndfile.Probe(file)
		if err != nil {
			return 0, &BrokenFileError{File: file}
		}
		return info.SampleRate, nil
	}

	ctx := context.Background()
	if soxTool.Available() {
		if rate, err := soxTool.SampleRate(ctx, file); err == nil {
			return rate, nil
		}
	}
	if !ffTool.ProbeAvailable() {
		return 0, &BinaryMissingError{Tool: "ffprobe"}
	}
	md, err := ffTool.GetMetadata(ctx, file)
	if err != nil || md.SampleRate == 0 {
		return 0, &BrokenFileError{File: file}
	}
	return md.SampleRate, nil
}

// Samples returns the number of samples per channel. For non-native
// formats the file is transcoded to a temporary WAV first, which makes
// the count exact but slow on long files.
func Samples(file string) (int64, error) {
	if err := assertExists(file); err != nil {
		return 0, err
	}
	if sndfile.IsNative(file) {
		info, err := sndfile.Probe(file)
		if err != nil {
			return 0, &BrokenFileError{File: file}
		}
		return info.Frames, nil
	}

	dir, err := os.MkdirTemp(tempDir, "audiofile_*")
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(dir)

	tmp := filepath.Join(dir, tmpWavName(file))
	if err := transcodeAny(file, tmp, transcodeParams{}); err != nil {
		return 0, err
	}
	info, err := sndfile.Probe(tmp)
	if err != nil {
		return 0, &BrokenFileError{File: file}
	}
	return info.Frames, nil
}

// Duration returns the duration of the file in seconds.
//
// With sloppy set the duration is taken from the file header as reported
// by sox or ffprobe, which is fast but can deviate from the real length,
// typically below 100 ms. Without sloppy the file is decoded and the
// duration computed from the exact sample count. A header that reports
// no duration at all falls back to the exact computation.
func Duration(file string, sloppy bool) (float64, error) {
	if err := assertExists(file); err != nil {
		return 0, err
	}
	if sndfile.IsNative(file) {
		info, err := sndfile.Probe(file)
		if err != nil {
			return 0, &BrokenFileError{File: file}
		}
		return info.Duration, nil
	}

	if sloppy {
		ctx := context.Background()
		if soxTool.Available() {
			if duration, err := soxTool.Duration(ctx, file); err == nil && duration > 0 {
				return duration, nil
			}
		}
		if !ffTool.ProbeAvailable() {
			return 0, &BinaryMissingError{Tool: "ffprobe"}
		}
		if md, err := ffTool.GetMetadata(ctx, file); err == nil && md.Duration > 0 {
			return md.Duration, nil
		}
		// A header that carries no duration is not an answer; fall back to
		// the exact sample count.
	}

	samples, err := Samples(file)
	if err != nil {
		return 0, err
	}
	rate, err := SamplingRate(file)
	if err != nil {
		return 0, err
	}
	return float64(samples) / float64(rate), nil
}

// BitDepth returns the bit depth of the file, or 0 for formats without a
// fixed bit depth (MP3, OGG, and every non-native format).
func BitDepth(file string) (int, error) {
	if err := assertExists(file); err != nil {
		return 0, err
	}
	if sndfile.IsNative(file) {
		info, err := sndfile.Probe(file)
		if err != nil {
			return 0, &BrokenFileError{File: file}
		}
		return info.BitDepth, nil
	}
	return 0, nil
}

// HasVideo reports whether the file carries a video stream. Native audio
// formats never do; everything else is answered by ffprobe.
func HasVideo(file string) (bool, error) {
	if err := assertExists(file); err != nil {
		return false, err
	}
	if sndfile.IsNative(file) {
		return false, nil
	}
	if !ffTool.ProbeAvailable() {
		return false, &BinaryMissingError{Tool: "ffprobe"}
	}
	hasVideo, err := ffTool.HasVideoStream(context.Background(), file)
	if err != nil {
		return false, &BrokenFileError{File: file}
	}
	return hasVideo, nil
}

// tmpWavName derives the name of the intermediate WAV file from the
// input file name.
func tmpWavName(file string) string {
	base := filepath.Base(file)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".wav"
}
