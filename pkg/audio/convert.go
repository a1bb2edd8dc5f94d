package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/audiokit/audiofile/pkg/ffmpeg"
	"github.com/audiokit/audiofile/pkg/sox"
)

// transcodeParams describes a single external transcoding step.
type transcodeParams struct {
	offset      float64 // seconds
	duration    float64 // seconds, applied only with hasDuration
	hasDuration bool
	sampleRate  int // 0 keeps the input rate
	bitDepth    int // 0 keeps the tool default, WAV and FLAC targets only
}

// transcodeAny converts infile to outfile with sox, falling back to
// ffmpeg when sox is missing or cannot open the input. A missing ffmpeg
// at the end of the chain is fatal; any other terminal failure means the
// input is unreadable.
func transcodeAny(infile, outfile string, p transcodeParams) error {
	ctx := context.Background()

	if soxTool.Available() {
		err := soxTool.Transcode(ctx, infile, outfile, sox.TranscodeOptions{
			Offset:      p.offset,
			Duration:    p.duration,
			HasDuration: p.hasDuration,
			SampleRate:  p.sampleRate,
			BitDepth:    p.bitDepth,
		})
		if err == nil {
			return nil
		}
	}

	if !ffTool.Available() {
		return &BinaryMissingError{Tool: "ffmpeg"}
	}
	codec := ""
	if p.bitDepth > 0 && strings.EqualFold(filepath.Ext(outfile), ".wav") {
		codec = ffmpeg.PCMCodec(p.bitDepth)
	}
	err := ffTool.Transcode(ctx, infile, outfile, ffmpeg.TranscodeOptions{
		Offset:      p.offset,
		Duration:    p.duration,
		HasDuration: p.hasDuration,
		SampleRate:  p.sampleRate,
		Codec:       codec,
	})
	if err != nil {
		return &BrokenFileError{File: infile}
	}
	return nil
}

// ConvertToWav converts any audio or video file to WAV and returns the
// path of the written file. With an empty outfile the output is placed
// next to the input with the extension replaced by ".wav".
func ConvertToWav(infile, outfile string, opts *ConvertOptions) (string, error) {
	if opts == nil {
		opts = &ConvertOptions{}
	}

	if outfile == "" {
		ext := filepath.Ext(infile)
		outfile = strings.TrimSuffix(infile, ext) + ".wav"
	}
	inAbs, err := filepath.Abs(infile)
	if err != nil {
		return "", err
	}
	outAbs, err := filepath.Abs(outfile)
	if err != nil {
		return "", err
	}
	if inAbs == outAbs && !opts.Overwrite {
		return "", fmt.Errorf(
			"'%s' would be overwritten by its own conversion, set Overwrite to allow this", infile)
	}

	signal, rate, err := Read(infile, &ReadOptions{
		Offset:   opts.Offset,
		Duration: opts.Duration,
	})
	if err != nil {
		return "", err
	}
	err = Write(outfile, signal, rate, &WriteOptions{
		BitDepth:  opts.BitDepth,
		Normalize: opts.Normalize,
	})
	if err != nil {
		return "", err
	}
	return outfile, nil
}
