package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/audiokit/audiofile/pkg/sndfile"
)

// Write stores a channel-major float64 signal as an audio file. The
// target format follows from the file extension; WAV, FLAC, MP3, and OGG
// are supported. Parameters are validated before anything touches the
// disk.
//
// WAV files are encoded in process. FLAC, MP3, and OGG go through an
// intermediate WAV handed to sox or ffmpeg, since those encoders are not
// available natively.
func Write(file string, signal Signal, rate int, opts *WriteOptions) error {
	if opts == nil {
		opts = &WriteOptions{}
	}

	format := detectFormat(file)
	if format == FormatOther {
		return &UnsupportedParameterError{
			Param: "format",
			Message: fmt.Sprintf(
				"The file format of '%s' is not supported. Supported formats are: wav, flac, mp3, ogg.", file),
		}
	}

	bitDepth := opts.BitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	if allowed, ok := allowedBitDepths[format]; ok && !slices.Contains(allowed, bitDepth) {
		return unsupportedBitDepth(allowed)
	}
	if max := maxChannels[format]; signal.NumChannels() > max {
		return unsupportedChannels(format, max)
	}

	if opts.Normalize {
		// An all-zero signal stays untouched, there is nothing to scale
		// to full range.
		if peak := signal.peak(); peak > 0 {
			signal = signal.scaled(1 / peak)
		}
	}

	if format == FormatWAV {
		return sndfile.WriteWav(file, signal, rate, bitDepth)
	}

	// The intermediate WAV carries the requested depth for FLAC so the
	// transcoder only changes the container. MP3 and OGG encode lossily
	// anyway, 16 bit input is as good as any.
	wavDepth := bitDepth
	if format == FormatMP3 || format == FormatOGG {
		wavDepth = 16
	}

	dir, err := os.MkdirTemp(tempDir, "audiofile_*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	tmp := filepath.Join(dir, tmpWavName(file))
	if err := sndfile.WriteWav(tmp, signal, rate, wavDepth); err != nil {
		return err
	}

	p := transcodeParams{}
	if format == FormatFLAC {
		p.bitDepth = bitDepth
	}
	return transcodeAny(tmp, file, p)
}
