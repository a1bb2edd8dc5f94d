package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
)

// ffprobeOutput represents the JSON structure returned by ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType        string `json:"codec_type"`
		CodecName        string `json:"codec_name"`
		SampleRate       string `json:"sample_rate"`
		Channels         int    `json:"channels"`
		Duration         string `json:"duration"`
		BitsPerSample    int    `json:"bits_per_sample"`
		BitsPerRawSample string `json:"bits_per_raw_sample"`
	} `json:"streams"`
}

func (f *FFmpeg) probe(ctx context.Context, filePath string, selectStreams string) (*ffprobeOutput, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	args := []string{
		"-v", "quiet",
		"-show_format",
		"-show_streams",
	}
	if selectStreams != "" {
		args = append(args, "-select_streams", selectStreams)
	}
	args = append(args, "-of", "json", filePath)

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, NewProcessingError("metadata_extraction", filePath, err, stderr.String())
	}

	var output ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return nil, NewProcessingError("metadata_parsing", filePath, err, "")
	}
	return &output, nil
}

// GetMetadata extracts metadata for the first audio stream of a file
func (f *FFmpeg) GetMetadata(ctx context.Context, filePath string) (*AudioMetadata, error) {
	output, err := f.probe(ctx, filePath, "a:0")
	if err != nil {
		return nil, err
	}

	metadata := &AudioMetadata{Format: output.Format.FormatName}

	if output.Format.Duration != "" {
		if duration, err := strconv.ParseFloat(output.Format.Duration, 64); err == nil {
			metadata.Duration = duration
		}
	}

	for _, stream := range output.Streams {
		if stream.CodecType != "audio" {
			continue
		}
		metadata.Codec = stream.CodecName
		metadata.Channels = stream.Channels

		if stream.SampleRate != "" {
			if sampleRate, err := strconv.Atoi(stream.SampleRate); err == nil {
				metadata.SampleRate = sampleRate
			}
		}
		metadata.BitDepth = stream.BitsPerSample
		if metadata.BitDepth == 0 && stream.BitsPerRawSample != "" {
			if bits, err := strconv.Atoi(stream.BitsPerRawSample); err == nil {
				metadata.BitDepth = bits
			}
		}

		// Use stream duration if format duration is not available
		if metadata.Duration == 0 && stream.Duration != "" {
			if duration, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
				metadata.Duration = duration
			}
		}
		break
	}

	return metadata, nil
}

// HasVideoStream reports whether the file carries at least one video
// stream. Attached cover art counts as a video stream here, matching how
// ffprobe classifies it.
func (f *FFmpeg) HasVideoStream(ctx context.Context, filePath string) (bool, error) {
	output, err := f.probe(ctx, filePath, "v")
	if err != nil {
		return false, err
	}
	return len(output.Streams) > 0, nil
}
