package health

import (
	"net/http"
	"os/exec"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/audiokit/audiofile/api/types"
)

// Get handles health check requests
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"tools":     toolStatus(deps),
		})
	}
}

// toolStatus reports which external tools are installed. The native codecs
// cover WAV, FLAC, MP3, and OGG without any of them.
func toolStatus(deps *types.Dependencies) gin.H {
	soxPath, ffmpegPath, ffprobePath := "sox", "ffmpeg", "ffprobe"
	if deps != nil && deps.Config != nil {
		if p := deps.Config.Tools.SoxPath; p != "" {
			soxPath = p
		}
		if p := deps.Config.Tools.FFmpegPath; p != "" {
			ffmpegPath = p
		}
		if p := deps.Config.Tools.FFprobePath; p != "" {
			ffprobePath = p
		}
	}
	return gin.H{
		"sox":     binaryFound(soxPath),
		"ffmpeg":  binaryFound(ffmpegPath),
		"ffprobe": binaryFound(ffprobePath),
	}
}

func binaryFound(path string) string {
	if _, err := exec.LookPath(path); err != nil {
		return "missing"
	}
	return "available"
}
