package audio

import "math"

// Signal is an in-memory multichannel sample buffer in channel-major
// layout: Signal[channel][sample]. Sample values are nominally in
// [-1.0, 1.0]. A Signal returned by Read is owned by the caller.
type Signal [][]float64

// NewSignal allocates a zeroed signal of the given shape.
func NewSignal(channels, samples int) Signal {
	s := make(Signal, channels)
	for c := range s {
		s[c] = make([]float64, samples)
	}
	return s
}

// NumChannels returns the number of channels.
func (s Signal) NumChannels() int {
	return len(s)
}

// NumSamples returns the number of samples per channel.
func (s Signal) NumSamples() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Mono returns the first channel, or nil for an empty signal.
func (s Signal) Mono() []float64 {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

// peak returns the maximum absolute sample value across all channels.
func (s Signal) peak() float64 {
	max := 0.0
	for _, ch := range s {
		for _, v := range ch {
			if a := math.Abs(v); a > max {
				max = a
			}
		}
	}
	return max
}

// scaled returns a copy of the signal with every sample multiplied by f.
func (s Signal) scaled(f float64) Signal {
	out := make(Signal, len(s))
	for c, ch := range s {
		out[c] = make([]float64, len(ch))
		for i, v := range ch {
			out[c][i] = v * f
		}
	}
	return out
}

// ReadOptions controls Read.
//
// Offset and Duration accept nil (absent), numeric values (seconds),
// numeric strings without unit (samples), strings with a unit ("2ms",
// "1.5 s", "2 min"), the tokens "Inf", "-Inf", "NaN", "NaT", "None",
// and time.Duration values. Negative values are counted from the end of
// the signal.
type ReadOptions struct {
	Offset   any
	Duration any

	// Metadata overrides the provider used to resolve sampling rate,
	// signal duration and channel count during offset/duration
	// normalization. Nil selects the package's own resolver.
	Metadata MetadataProvider
}

// WriteOptions controls Write.
type WriteOptions struct {
	// BitDepth of the written file. 0 selects the default of 16.
	BitDepth int
	// Normalize scales the signal so its peak absolute value is 1.0.
	// An all-zero signal is written unchanged.
	Normalize bool
}

// ConvertOptions controls ConvertToWav.
type ConvertOptions struct {
	Offset    any
	Duration  any
	BitDepth  int
	Normalize bool
	// Overwrite allows the input file itself to be replaced when the
	// output path resolves to the input path.
	Overwrite bool
}

// MetadataProvider supplies the per-file metadata the time-spec
// normalizer needs. It exists so the reader and normalizer do not
// depend on the package-level accessors directly.
type MetadataProvider interface {
	SamplingRate(file string) (int, error)
	Duration(file string) (float64, error)
	Channels(file string) (int, error)
}

// stdResolver implements MetadataProvider with the package accessors.
type stdResolver struct{}

func (stdResolver) SamplingRate(file string) (int, error) { return SamplingRate(file) }
func (stdResolver) Duration(file string) (float64, error) { return Duration(file, false) }
func (stdResolver) Channels(file string) (int, error)     { return Channels(file) }
