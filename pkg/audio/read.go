package audio

import (
	"os"
	"path/filepath"

	"github.com/audiokit/audiofile/pkg/sndfile"
)

// Read decodes file into a channel-major float64 signal and returns it
// together with the sampling rate.
//
// Native formats (WAV, FLAC, MP3, OGG) are decoded in process. Every
// other format is transcoded to a temporary WAV by sox or ffmpeg first;
// the requested offset and duration are applied during transcoding, so
// only the requested part is ever decoded. Both paths resolve offset and
// duration on the same sample grid and return identical results.
func Read(file string, opts *ReadOptions) (Signal, int, error) {
	if opts == nil {
		opts = &ReadOptions{}
	}
	meta := opts.Metadata
	if meta == nil {
		meta = stdResolver{}
	}

	if err := assertExists(file); err != nil {
		return nil, 0, err
	}

	r, err := resolveRange(file, opts.Offset, opts.Duration, meta)
	if err != nil {
		return nil, 0, err
	}

	// A resolved duration of zero samples still has to report the real
	// channel count and sampling rate, just with no data.
	if r.empty {
		channels, err := meta.Channels(file)
		if err != nil {
			return nil, 0, err
		}
		return NewSignal(channels, 0), r.rate, nil
	}

	if sndfile.IsNative(file) {
		stop := int64(-1)
		if r.duration >= 0 {
			stop = r.offset + r.duration
		}
		data, rate, err := sndfile.ReadRange(file, r.offset, stop)
		if err != nil {
			return nil, 0, &BrokenFileError{File: file}
		}
		return Signal(data), rate, nil
	}

	// The trim window is converted back to seconds on the resolved
	// sample grid, so external trimming cuts on the same samples the
	// native path would.
	rate := r.rate
	if rate == 0 {
		rate, err = meta.SamplingRate(file)
		if err != nil {
			return nil, 0, err
		}
	}
	p := transcodeParams{
		offset: float64(r.offset) / float64(rate),
		// Decoders that resample on the fly (opus in sox) would change
		// the grid, so the input rate is always pinned on the output.
		sampleRate: rate,
	}
	if r.duration >= 0 {
		p.duration = float64(r.duration) / float64(rate)
		p.hasDuration = true
	}

	dir, err := os.MkdirTemp(tempDir, "audiofile_*")
	if err != nil {
		return nil, 0, err
	}
	defer os.RemoveAll(dir)

	tmp := filepath.Join(dir, tmpWavName(file))
	if err := transcodeAny(file, tmp, p); err != nil {
		return nil, 0, err
	}
	data, outRate, err := sndfile.ReadRange(tmp, 0, -1)
	if err != nil {
		return nil, 0, &BrokenFileError{File: file}
	}
	return Signal(data), outRate, nil
}
