package sox

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/audiokit/audiofile/pkg/sndfile"
)

func TestNew(t *testing.T) {
	s := New("sox", 30*time.Second)
	if s.path != "sox" {
		t.Errorf("Expected path to be 'sox', got %s", s.path)
	}
	if s.timeout != 30*time.Second {
		t.Errorf("Expected timeout to be 30s, got %v", s.timeout)
	}
}

func TestNewDefaultsEmptyPath(t *testing.T) {
	s := New("", 0)
	if s.path != "sox" {
		t.Errorf("Expected empty path to default to 'sox', got %s", s.path)
	}
}

func TestAvailableMissing(t *testing.T) {
	s := New("definitely-not-sox", time.Second)
	if s.Available() {
		t.Errorf("Expected Available to be false for a missing binary")
	}
	if err := s.Validate(); !errors.Is(err, ErrSoxNotFound) {
		t.Errorf("Expected ErrSoxNotFound, got %v", err)
	}
}

// Integration tests - only run if sox is available

func TestQueries(t *testing.T) {
	s := New("sox", 30*time.Second)
	if !s.Available() {
		t.Skipf("sox binary not available")
	}

	ctx := context.Background()
	src := filepath.Join(t.TempDir(), "tone.wav")
	if err := generateTone(t, src, 2); err != nil {
		t.Fatalf("Failed to generate test tone: %v", err)
	}

	channels, err := s.Channels(ctx, src)
	if err != nil {
		t.Fatalf("Failed to query channels: %v", err)
	}
	if channels != 1 {
		t.Errorf("Expected 1 channel, got %d", channels)
	}

	rate, err := s.SampleRate(ctx, src)
	if err != nil {
		t.Fatalf("Failed to query sample rate: %v", err)
	}
	if rate != 8000 {
		t.Errorf("Expected sample rate 8000, got %d", rate)
	}

	duration, err := s.Duration(ctx, src)
	if err != nil {
		t.Fatalf("Failed to query duration: %v", err)
	}
	if duration < 1.9 || duration > 2.1 {
		t.Errorf("Expected duration around 2 seconds, got %f", duration)
	}

	bits, err := s.BitDepth(ctx, src)
	if err != nil {
		t.Fatalf("Failed to query bit depth: %v", err)
	}
	if bits != 16 {
		t.Errorf("Expected bit depth 16, got %d", bits)
	}
}

func TestTranscodeTrim(t *testing.T) {
	s := New("sox", 30*time.Second)
	if !s.Available() {
		t.Skipf("sox binary not available")
	}

	ctx := context.Background()
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "tone.wav")
	if err := generateTone(t, src, 2); err != nil {
		t.Fatalf("Failed to generate test tone: %v", err)
	}

	dst := filepath.Join(tempDir, "trimmed.wav")
	err := s.Transcode(ctx, src, dst, TranscodeOptions{
		Offset:      0.5,
		Duration:    1,
		HasDuration: true,
		SampleRate:  4000,
		BitDepth:    16,
	})
	if err != nil {
		t.Fatalf("Failed to transcode: %v", err)
	}

	duration, err := s.Duration(ctx, dst)
	if err != nil {
		t.Fatalf("Failed to query trimmed duration: %v", err)
	}
	if duration < 0.9 || duration > 1.1 {
		t.Errorf("Expected duration around 1 second, got %f", duration)
	}

	rate, err := s.SampleRate(ctx, dst)
	if err != nil {
		t.Fatalf("Failed to query trimmed sample rate: %v", err)
	}
	if rate != 4000 {
		t.Errorf("Expected sample rate 4000, got %d", rate)
	}
}

func TestQueryFileNotFound(t *testing.T) {
	s := New("sox", 30*time.Second)
	if !s.Available() {
		t.Skipf("sox binary not available")
	}

	ctx := context.Background()
	_, err := s.Channels(ctx, "/nonexistent/file.wav")
	if err == nil {
		t.Errorf("Expected error for non-existent file, got nil")
	}

	var procErr *ProcessingError
	if !errors.As(err, &procErr) {
		t.Errorf("Expected ProcessingError, got %T", err)
	}
}

// generateTone writes a short mono 8 kHz sine tone, so tests do not need
// checked-in fixtures.
func generateTone(t *testing.T, path string, seconds int) error {
	t.Helper()
	const rate = 8000
	samples := make([]float64, seconds*rate)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/rate)
	}
	return sndfile.WriteWav(path, [][]float64{samples}, rate, 16)
}
