package audio

import (
	"path/filepath"
	"strings"
)

// Format identifies an audio container format by file extension.
// The zero value is FormatOther, i.e. a format that needs external tools.
type Format int

const (
	// FormatOther covers every extension the native codec layer cannot
	// decode (MP4, AMR, OPUS, AAC, ...); such files go through the
	// external transcoder.
	FormatOther Format = iota
	FormatWAV
	FormatFLAC
	FormatMP3
	FormatOGG
)

// String returns the lowercase extension of the format.
func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatFLAC:
		return "flac"
	case FormatMP3:
		return "mp3"
	case FormatOGG:
		return "ogg"
	default:
		return "other"
	}
}

// Native reports whether files of this format are decodable without
// external tools.
func (f Format) Native() bool {
	return f != FormatOther
}

// maxChannels is the maximum number of channels the writer accepts per
// target format.
var maxChannels = map[Format]int{
	FormatWAV:  65535,
	FormatOGG:  255,
	FormatMP3:  2,
	FormatFLAC: 8,
}

// allowedBitDepths lists the bit depths the writer accepts per target
// format. OGG and MP3 use a fixed internal encoding, so any requested
// depth is accepted and ignored.
var allowedBitDepths = map[Format][]int{
	FormatWAV:  {8, 16, 24, 32},
	FormatFLAC: {8, 16, 24},
}

// detectFormat classifies a path by its extension. Classification is
// purely syntactic; the file does not have to exist.
func detectFormat(path string) Format {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "wav":
		return FormatWAV
	case "flac":
		return FormatFLAC
	case "mp3":
		return FormatMP3
	case "ogg":
		return FormatOGG
	default:
		return FormatOther
	}
}
