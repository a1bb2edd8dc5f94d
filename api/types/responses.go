package types

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`            // One of the Status constants above
	Message string `json:"message,omitempty"` // Human-readable message
}

// InfoResponse carries the metadata of an uploaded audio file
type InfoResponse struct {
	BaseResponse
	File         string  `json:"file"`
	Channels     int     `json:"channels"`
	SamplingRate int     `json:"sampling_rate"` // Hz
	Samples      int64   `json:"samples"`       // per channel
	Duration     float64 `json:"duration"`      // seconds
	BitDepth     int     `json:"bit_depth"`     // 0 when the format has no fixed depth
	HasVideo     bool    `json:"has_video"`
}

// ErrorResponse for failed requests
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
