package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/audiokit/audiofile/pkg/audio"
	"github.com/audiokit/audiofile/pkg/config"
)

// appConfig holds the loaded configuration, populated by loadConfig
var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "audiofile",
	Short: "Audio file inspection and conversion",
	Long: `audiofile - read, write, and convert audio files

WAV, FLAC, MP3, and OGG files are handled by built-in codecs. Every
other audio or video format works through sox and ffmpeg when they are
installed.

Features:
  • Metadata queries (channels, sampling rate, duration, bit depth)
  • Conversion of audio and video files to WAV
  • Sample-accurate trimming via offset and duration
  • HTTP API for remote inspection and conversion`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

// loadConfig loads the configuration and wires the external tools.
// Commands call it lazily so version and help never touch the config.
func loadConfig() error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	appConfig = cfg

	audio.Configure(audio.Config{
		SoxPath:     cfg.Tools.SoxPath,
		FFmpegPath:  cfg.Tools.FFmpegPath,
		FFprobePath: cfg.Tools.FFprobePath,
		Timeout:     cfg.Tools.Timeout,
		TempDir:     cfg.Storage.TempDir,
	})
	return nil
}
