package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/audiokit/audiofile/pkg/sndfile"
)

func TestInfoCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tone.wav")
	signal := [][]float64{make([]float64, 8000)}
	if err := sndfile.WriteWav(file, signal, 16000, 16); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"info", file})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"Channels:       1",
		"Sampling rate:  16000 Hz",
		"Samples:        8000",
		"Duration:       0.500000 s",
		"Bit depth:      16",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got %q", want, output)
		}
	}
}

func TestInfoCommandMissingFile(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"info", "/nonexistent/file.wav"})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for non-existent file")
	}
}
