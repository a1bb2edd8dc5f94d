package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Build variables - set during build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// Get handles version requests
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "audiofile",
			"version":     Version,
			"commit":      GitCommit,
			"description": "API for reading, writing, and converting audio files",
			"status":      "running",
		})
	}
}
