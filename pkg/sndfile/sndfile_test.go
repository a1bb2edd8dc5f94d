package sndfile

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestIsNative(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"tone.wav", true},
		{"tone.WAV", true},
		{"tone.flac", true},
		{"tone.mp3", true},
		{"tone.ogg", true},
		{"clip.mp4", false},
		{"clip.opus", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsNative(tt.path); got != tt.want {
			t.Errorf("IsNative(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestProbeUnsupportedExtension(t *testing.T) {
	if _, err := Probe("clip.mp4"); !errors.Is(err, ErrFormat) {
		t.Errorf("Probe() error = %v, want ErrFormat", err)
	}
	if _, _, err := ReadRange("clip.mp4", 0, -1); !errors.Is(err, ErrFormat) {
		t.Errorf("ReadRange() error = %v, want ErrFormat", err)
	}
}

func TestWavRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	want := [][]float64{{0, 0.25, -0.5, 1.0, -1.0}}

	if err := WriteWav(path, want, 8000, 16); err != nil {
		t.Fatalf("WriteWav() error = %v", err)
	}

	info, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if info.SampleRate != 8000 || info.Channels != 1 || info.Frames != 5 || info.BitDepth != 16 {
		t.Errorf("Probe() = %+v, want rate 8000, 1 channel, 5 frames, 16 bit", info)
	}
	if info.Duration != 5.0/8000.0 {
		t.Errorf("Probe() duration = %v, want %v", info.Duration, 5.0/8000.0)
	}

	got, rate, err := ReadRange(path, 0, -1)
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	if rate != 8000 {
		t.Errorf("ReadRange() rate = %d, want 8000", rate)
	}
	if len(got) != 1 || len(got[0]) != 5 {
		t.Fatalf("ReadRange() shape = (%d, %d), want (1, 5)", len(got), len(got[0]))
	}
	for i := range want[0] {
		if math.Abs(got[0][i]-want[0][i]) > 1e-4 {
			t.Errorf("Sample %d = %v, want %v", i, got[0][i], want[0][i])
		}
	}
}

func TestWavRoundTrip8Bit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	want := [][]float64{{0, 0.5, -0.5, 1.0, -1.0}}

	if err := WriteWav(path, want, 8000, 8); err != nil {
		t.Fatalf("WriteWav() error = %v", err)
	}

	info, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if info.BitDepth != 8 {
		t.Errorf("Probe() bit depth = %d, want 8", info.BitDepth)
	}

	got, _, err := ReadRange(path, 0, -1)
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	for i := range want[0] {
		if math.Abs(got[0][i]-want[0][i]) > 0.01 {
			t.Errorf("Sample %d = %v, want %v", i, got[0][i], want[0][i])
		}
	}
}

func TestWavStereoInterleaving(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	left := []float64{0.1, 0.2, 0.3}
	right := []float64{-0.1, -0.2, -0.3}

	if err := WriteWav(path, [][]float64{left, right}, 44100, 16); err != nil {
		t.Fatalf("WriteWav() error = %v", err)
	}

	got, _, err := ReadRange(path, 0, -1)
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadRange() returned %d channels, want 2", len(got))
	}
	for i := range left {
		if math.Abs(got[0][i]-left[i]) > 1e-4 || math.Abs(got[1][i]-right[i]) > 1e-4 {
			t.Errorf("Frame %d = (%v, %v), want (%v, %v)",
				i, got[0][i], got[1][i], left[i], right[i])
		}
	}
}

func TestReadRangeWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ramp.wav")
	ramp := make([]float64, 100)
	for i := range ramp {
		ramp[i] = float64(i) / 200
	}
	if err := WriteWav(path, [][]float64{ramp}, 8000, 16); err != nil {
		t.Fatalf("WriteWav() error = %v", err)
	}

	got, _, err := ReadRange(path, 10, 14)
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	if len(got[0]) != 4 {
		t.Fatalf("ReadRange(10, 14) returned %d samples, want 4", len(got[0]))
	}
	for i := 0; i < 4; i++ {
		if math.Abs(got[0][i]-ramp[10+i]) > 1e-4 {
			t.Errorf("Sample %d = %v, want %v", i, got[0][i], ramp[10+i])
		}
	}

	// A window past the end yields the overlapping part only.
	got, _, err = ReadRange(path, 90, 200)
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	if len(got[0]) != 10 {
		t.Errorf("ReadRange(90, 200) returned %d samples, want 10", len(got[0]))
	}

	got, _, err = ReadRange(path, 200, -1)
	if err != nil {
		t.Fatalf("ReadRange() error = %v", err)
	}
	if len(got[0]) != 0 {
		t.Errorf("ReadRange(200, -1) returned %d samples, want 0", len(got[0]))
	}
}

func TestMP3Channels(t *testing.T) {
	// MPEG frame headers: 0xff 0xfb sync, byte 3's top two bits carry the
	// channel mode (3 = single channel).
	monoHeader := []byte{0xff, 0xfb, 0x90, 0xc4}
	stereoHeader := []byte{0xff, 0xfb, 0x90, 0x04}
	jointHeader := []byte{0xff, 0xfb, 0x90, 0x44}

	// "ID3" + version + flags + syncsafe size 5 + 5 payload bytes
	id3 := append([]byte("ID3"), 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x05)
	id3 = append(id3, make([]byte, 5)...)

	tests := []struct {
		name string
		data []byte
		want int
	}{
		{"mono", monoHeader, 1},
		{"stereo", stereoHeader, 2},
		{"joint stereo", jointHeader, 2},
		{"mono behind ID3 tag", append(append([]byte{}, id3...), monoHeader...), 1},
		{"garbage defaults to stereo", []byte{0x00, 0x01, 0x02, 0x03, 0x04}, 2},
		{"empty defaults to stereo", nil, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mp3Channels(bytes.NewReader(tt.data)); got != tt.want {
				t.Errorf("mp3Channels() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProbeInvalidWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("not a wav file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Probe(path); err == nil {
		t.Error("Probe() should fail for garbage data")
	}
	if _, _, err := ReadRange(path, 0, -1); err == nil {
		t.Error("ReadRange() should fail for garbage data")
	}
}

func TestWriteWavRejectsEmptySignal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	if err := WriteWav(path, nil, 8000, 16); err == nil {
		t.Error("WriteWav() should reject a signal with no channels")
	}
}
