// Package ffmpeg wraps the ffmpeg and ffprobe command line tools. ffprobe
// answers metadata queries for containers the native codecs and sox cannot
// open, ffmpeg is the transcoding fallback when sox is missing or fails.
package ffmpeg

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"time"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// Available reports whether the ffmpeg binary can be found
func (f *FFmpeg) Available() bool {
	_, err := exec.LookPath(f.ffmpegPath)
	return err == nil
}

// ProbeAvailable reports whether the ffprobe binary can be found
func (f *FFmpeg) ProbeAvailable() bool {
	_, err := exec.LookPath(f.ffprobePath)
	return err == nil
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return ErrFFmpegNotFound
	}
	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return ErrFFprobeNotFound
	}
	return nil
}

// TranscodeOptions controls a Transcode call. Duration is only applied
// when HasDuration is set, since 0 is a valid duration.
type TranscodeOptions struct {
	Offset      float64 // seconds to skip from the start
	Duration    float64 // seconds to keep
	HasDuration bool
	SampleRate  int    // resample the output, 0 keeps the input rate
	Codec       string // output audio codec, "" picks the container default
}

// Transcode converts infile to outfile, inferring the output format from
// the file extension
func (f *FFmpeg) Transcode(ctx context.Context, infile, outfile string, opts TranscodeOptions) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	var args []string
	// -ss before -i seeks on the demuxer, which keeps the cut aligned
	// with sample-based trimming.
	if opts.Offset > 0 {
		args = append(args, "-ss", formatSeconds(opts.Offset))
	}
	args = append(args, "-i", infile)
	if opts.HasDuration {
		args = append(args, "-t", formatSeconds(opts.Duration))
	}
	if opts.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(opts.SampleRate))
	}
	if opts.Codec != "" {
		args = append(args, "-c:a", opts.Codec)
	}
	args = append(args, "-y", outfile)

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return NewProcessingError("transcode", infile, err, stderr.String())
	}
	return nil
}

// PCMCodec returns the ffmpeg codec name for PCM WAV output at the given
// bit depth, or "" for depths without a PCM codec.
func PCMCodec(bitDepth int) string {
	switch bitDepth {
	case 8:
		return "pcm_u8"
	case 16:
		return "pcm_s16le"
	case 24:
		return "pcm_s24le"
	case 32:
		return "pcm_s32le"
	}
	return ""
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
