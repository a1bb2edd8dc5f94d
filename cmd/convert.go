package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/audiokit/audiofile/pkg/audio"
)

var (
	convertOutput    string
	convertOffset    string
	convertDuration  string
	convertBitDepth  int
	convertNormalize bool
	convertOverwrite bool
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert INFILE",
	Short: "Convert an audio or video file to WAV",
	Long: `Convert any audio or video file to WAV. Without --output the result
is written next to the input with the extension replaced by ".wav".

Offset and duration accept plain numbers (seconds), values with a unit
("500ms", "2 min"), and "Inf"/"-Inf". Negative values count from the
end of the file.

Example:
  audiofile convert recording.m4a
  audiofile convert --offset 30 --duration 10 episode.mp3 --output clip.wav
  audiofile convert --duration "-5 s" talk.flac`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file (defaults to the input with a .wav extension)")
	convertCmd.Flags().StringVar(&convertOffset, "offset", "", "start position in the input")
	convertCmd.Flags().StringVar(&convertDuration, "duration", "", "length to convert")
	convertCmd.Flags().IntVar(&convertBitDepth, "bit-depth", 16, "output bit depth (8, 16, 24, 32)")
	convertCmd.Flags().BoolVar(&convertNormalize, "normalize", false, "scale the signal to full range")
	convertCmd.Flags().BoolVar(&convertOverwrite, "overwrite", false, "allow replacing the input file")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	written, err := audio.ConvertToWav(args[0], convertOutput, &audio.ConvertOptions{
		Offset:    timeFlag(convertOffset),
		Duration:  timeFlag(convertDuration),
		BitDepth:  convertBitDepth,
		Normalize: convertNormalize,
		Overwrite: convertOverwrite,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), written)
	return nil
}

// timeFlag converts a flag value into an offset/duration spec. Plain
// numbers mean seconds on the command line; everything else is passed
// through as a string for the audio package's grammar.
func timeFlag(v string) any {
	if v == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}
