package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/audiokit/audiofile/pkg/audio"
)

var infoSloppy bool

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Print audio file metadata",
	Long: `Print the metadata of an audio or video file: channels, sampling
rate, number of samples, duration, and bit depth.

The duration of non-native formats is exact by default, which requires
decoding the whole file. Pass --sloppy to read it from the file header
instead.

Example:
  audiofile info recording.flac
  audiofile info --sloppy interview.m4a`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&infoSloppy, "sloppy", false, "take the duration from the file header instead of decoding")
}

func runInfo(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	file := args[0]

	channels, err := audio.Channels(file)
	if err != nil {
		return err
	}
	rate, err := audio.SamplingRate(file)
	if err != nil {
		return err
	}
	samples, err := audio.Samples(file)
	if err != nil {
		return err
	}
	duration, err := audio.Duration(file, infoSloppy)
	if err != nil {
		return err
	}
	bitDepth, err := audio.BitDepth(file)
	if err != nil {
		return err
	}
	hasVideo, err := audio.HasVideo(file)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:           %s\n", file)
	fmt.Fprintf(out, "Channels:       %d\n", channels)
	fmt.Fprintf(out, "Sampling rate:  %d Hz\n", rate)
	fmt.Fprintf(out, "Samples:        %d\n", samples)
	fmt.Fprintf(out, "Duration:       %.6f s\n", duration)
	if bitDepth > 0 {
		fmt.Fprintf(out, "Bit depth:      %d\n", bitDepth)
	} else {
		fmt.Fprintf(out, "Bit depth:      n/a\n")
	}
	fmt.Fprintf(out, "Video stream:   %t\n", hasVideo)
	return nil
}
