// Package sox wraps the sox command line tool. It answers the metadata
// queries soxi answers and transcodes between audio containers, including
// trimming to an offset and duration.
package sox

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Sox wraps sox functionality
type Sox struct {
	path    string
	timeout time.Duration
}

// New creates a new Sox instance
func New(path string, timeout time.Duration) *Sox {
	if path == "" {
		path = "sox"
	}
	return &Sox{
		path:    path,
		timeout: timeout,
	}
}

// Available reports whether the sox binary can be found
func (s *Sox) Available() bool {
	_, err := exec.LookPath(s.path)
	return err == nil
}

// Validate checks if the sox binary is available
func (s *Sox) Validate() error {
	if _, err := exec.LookPath(s.path); err != nil {
		return ErrSoxNotFound
	}
	return nil
}

// query runs `sox --i <flag> <file>` and returns the trimmed stdout
func (s *Sox) query(ctx context.Context, flag, file string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, s.path, "--i", flag, file)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", NewProcessingError("query", file, err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Channels returns the number of channels in the file
func (s *Sox) Channels(ctx context.Context, file string) (int, error) {
	out, err := s.query(ctx, "-c", file)
	if err != nil {
		return 0, err
	}
	channels, err := strconv.Atoi(out)
	if err != nil {
		return 0, NewProcessingError("query", file, err, "")
	}
	return channels, nil
}

// SampleRate returns the sampling rate of the file in Hz
func (s *Sox) SampleRate(ctx context.Context, file string) (int, error) {
	out, err := s.query(ctx, "-r", file)
	if err != nil {
		return 0, err
	}
	// sox prints rates like "44100" but also "8k" style values for some
	// formats, so parse as float first.
	rate, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return 0, NewProcessingError("query", file, err, "")
	}
	return int(rate), nil
}

// Duration returns the duration of the file in seconds
func (s *Sox) Duration(ctx context.Context, file string) (float64, error) {
	out, err := s.query(ctx, "-D", file)
	if err != nil {
		return 0, err
	}
	duration, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return 0, NewProcessingError("query", file, err, "")
	}
	return duration, nil
}

// BitDepth returns the bit depth of the file, or 0 when the format has no
// fixed bit depth
func (s *Sox) BitDepth(ctx context.Context, file string) (int, error) {
	out, err := s.query(ctx, "-b", file)
	if err != nil {
		return 0, err
	}
	bits, err := strconv.Atoi(out)
	if err != nil {
		return 0, NewProcessingError("query", file, err, "")
	}
	return bits, nil
}

// TranscodeOptions controls a Transcode call. Duration is only applied
// when HasDuration is set, since 0 is a valid duration.
type TranscodeOptions struct {
	Offset      float64 // seconds to skip from the start
	Duration    float64 // seconds to keep
	HasDuration bool
	SampleRate  int // resample the output, 0 keeps the input rate
	BitDepth    int // output bit depth, 0 keeps the default
}

// Transcode converts infile to outfile, inferring both formats from the
// file extensions
func (s *Sox) Transcode(ctx context.Context, infile, outfile string, opts TranscodeOptions) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	args := []string{infile}
	if opts.BitDepth > 0 {
		args = append(args, "-b", strconv.Itoa(opts.BitDepth))
	}
	args = append(args, outfile)
	if opts.Offset > 0 || opts.HasDuration {
		args = append(args, "trim", formatSeconds(opts.Offset))
		if opts.HasDuration {
			args = append(args, formatSeconds(opts.Duration))
		}
	}
	if opts.SampleRate > 0 {
		args = append(args, "rate", strconv.Itoa(opts.SampleRate))
	}

	cmd := exec.CommandContext(ctx, s.path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return NewProcessingError("transcode", infile, err, stderr.String())
	}
	return nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
