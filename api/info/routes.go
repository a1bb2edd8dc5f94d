package info

import (
	"github.com/gin-gonic/gin"

	"github.com/audiokit/audiofile/api/types"
)

// RegisterRoutes registers info routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("", Post(deps))
}
