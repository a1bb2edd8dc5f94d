package audio

import (
	"time"

	"github.com/audiokit/audiofile/pkg/ffmpeg"
	"github.com/audiokit/audiofile/pkg/sox"
)

// The external tool chain. sox is tried first for everything it can do,
// ffmpeg/ffprobe are the fallback for formats sox cannot open.
var (
	soxTool = sox.New("", 0)
	ffTool  = ffmpeg.New("", "", 0)
	tempDir = ""
)

// Config wires the external tools used for non-native formats.
type Config struct {
	SoxPath     string
	FFmpegPath  string
	FFprobePath string
	// Timeout bounds every external tool invocation. 0 means no limit.
	Timeout time.Duration
	// TempDir hosts intermediate WAV files. "" selects the system default.
	TempDir string
}

// Configure replaces the package's external tool chain. It is meant to be
// called once at startup, before any file operation.
func Configure(cfg Config) {
	soxTool = sox.New(cfg.SoxPath, cfg.Timeout)
	ffTool = ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath, cfg.Timeout)
	tempDir = cfg.TempDir
}
