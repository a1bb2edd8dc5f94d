package ffmpeg

// AudioMetadata represents metadata extracted from an audio file
type AudioMetadata struct {
	Duration   float64 `json:"duration"`    // Duration in seconds
	SampleRate int     `json:"sample_rate"` // Sample rate in Hz
	Channels   int     `json:"channels"`    // Number of audio channels
	BitDepth   int     `json:"bit_depth"`   // Bits per sample, 0 when the codec has no fixed depth
	Format     string  `json:"format"`      // Container format (mp3, m4a, etc.)
	Codec      string  `json:"codec"`       // Audio codec
}
