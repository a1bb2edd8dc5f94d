package audio

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/audiokit/audiofile/pkg/sndfile"
)

func TestInfoNativeWav(t *testing.T) {
	file := filepath.Join(t.TempDir(), "stereo.wav")
	data := [][]float64{make([]float64, 4000), make([]float64, 4000)}
	if err := sndfile.WriteWav(file, data, 8000, 24); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	channels, err := Channels(file)
	if err != nil {
		t.Fatalf("Channels() error = %v", err)
	}
	if channels != 2 {
		t.Errorf("Channels() = %d, want 2", channels)
	}

	rate, err := SamplingRate(file)
	if err != nil {
		t.Fatalf("SamplingRate() error = %v", err)
	}
	if rate != 8000 {
		t.Errorf("SamplingRate() = %d, want 8000", rate)
	}

	samples, err := Samples(file)
	if err != nil {
		t.Fatalf("Samples() error = %v", err)
	}
	if samples != 4000 {
		t.Errorf("Samples() = %d, want 4000", samples)
	}

	for _, sloppy := range []bool{false, true} {
		duration, err := Duration(file, sloppy)
		if err != nil {
			t.Fatalf("Duration(sloppy=%v) error = %v", sloppy, err)
		}
		if duration != 0.5 {
			t.Errorf("Duration(sloppy=%v) = %v, want 0.5", sloppy, duration)
		}
	}

	depth, err := BitDepth(file)
	if err != nil {
		t.Fatalf("BitDepth() error = %v", err)
	}
	if depth != 24 {
		t.Errorf("BitDepth() = %d, want 24", depth)
	}

	hasVideo, err := HasVideo(file)
	if err != nil {
		t.Fatalf("HasVideo() error = %v", err)
	}
	if hasVideo {
		t.Error("HasVideo() = true for a WAV file")
	}
}

func TestInfoMissingFile(t *testing.T) {
	const file = "/nonexistent/tone.wav"

	checks := []struct {
		name string
		call func() error
	}{
		{"Channels", func() error { _, err := Channels(file); return err }},
		{"SamplingRate", func() error { _, err := SamplingRate(file); return err }},
		{"Samples", func() error { _, err := Samples(file); return err }},
		{"Duration", func() error { _, err := Duration(file, false); return err }},
		{"BitDepth", func() error { _, err := BitDepth(file); return err }},
		{"HasVideo", func() error { _, err := HasVideo(file); return err }},
	}
	for _, c := range checks {
		err := c.call()
		var missing *FileMissingError
		if !errors.As(err, &missing) {
			t.Errorf("%s error = %v, want FileMissingError", c.name, err)
		}
	}
}

func TestInfoBrokenNativeFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "garbage.flac")
	if err := os.WriteFile(file, []byte("not a flac file"), 0o644); err != nil {
		t.Fatal(err)
	}

	checks := []struct {
		name string
		call func() error
	}{
		{"Channels", func() error { _, err := Channels(file); return err }},
		{"SamplingRate", func() error { _, err := SamplingRate(file); return err }},
		{"Samples", func() error { _, err := Samples(file); return err }},
		{"Duration", func() error { _, err := Duration(file, true); return err }},
		{"BitDepth", func() error { _, err := BitDepth(file); return err }},
	}
	for _, c := range checks {
		err := c.call()
		var broken *BrokenFileError
		if !errors.As(err, &broken) {
			t.Errorf("%s error = %v, want BrokenFileError", c.name, err)
		}
	}
}

// writeStubTool creates an executable shell script standing in for an
// external binary.
func writeStubTool(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDurationSloppyFallsBackToExact(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub tools are shell scripts")
	}
	dir := t.TempDir()

	// A WAV payload behind a non-native extension forces the external
	// probe and transcode path.
	file := filepath.Join(dir, "clip.m4a")
	if err := sndfile.WriteWav(file, [][]float64{make([]float64, 4000)}, 8000, 16); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	// sox answers every query but reports a zero duration; ffprobe returns
	// headers without any duration field. The transcode branch of the stub
	// just copies the payload, which already is a WAV.
	soxStub := writeStubTool(t, dir, "sox", `#!/bin/sh
if [ "$1" = "--i" ]; then
	case "$2" in
	-D) echo 0 ;;
	-r) echo 8000 ;;
	-c) echo 1 ;;
	-b) echo 16 ;;
	esac
	exit 0
fi
cp "$1" "$2"
`)
	probeStub := writeStubTool(t, dir, "ffprobe", `#!/bin/sh
echo '{"format": {"format_name": "mov"}, "streams": []}'
`)

	oldSox, oldFF, oldTmp := soxTool, ffTool, tempDir
	defer func() { soxTool, ffTool, tempDir = oldSox, oldFF, oldTmp }()
	Configure(Config{SoxPath: soxStub, FFprobePath: probeStub})

	duration, err := Duration(file, true)
	if err != nil {
		t.Fatalf("Duration() error = %v", err)
	}
	if duration != 0.5 {
		t.Errorf("Duration() = %v, want 0.5 from the exact fallback", duration)
	}
}

func TestTmpWavName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/some/dir/video.mp4", "video.wav"},
		{"clip.opus", "clip.wav"},
		{"noext", "noext.wav"},
	}
	for _, tt := range tests {
		if got := tmpWavName(tt.in); got != tt.want {
			t.Errorf("tmpWavName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
