package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audiokit/audiofile/api/types"
	"github.com/audiokit/audiofile/pkg/config"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		setupDeps func() *types.Dependencies
	}{
		{
			name: "with config",
			setupDeps: func() *types.Dependencies {
				return &types.Dependencies{Config: &config.Config{}}
			},
		},
		{
			name: "without config",
			setupDeps: func() *types.Dependencies {
				return &types.Dependencies{}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			handler := Get(tt.setupDeps())

			// Execute
			handler(c)

			// Assert
			assert.Equal(t, http.StatusOK, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)

			assert.Equal(t, "ok", response["status"])
			assert.NotEmpty(t, response["timestamp"])

			tools, ok := response["tools"].(map[string]interface{})
			require.True(t, ok, "tools should be an object")
			for _, tool := range []string{"sox", "ffmpeg", "ffprobe"} {
				assert.Contains(t, tools, tool)
				assert.Contains(t, []string{"available", "missing"}, tools[tool])
			}
		})
	}
}

func TestToolStatusMisconfiguredPath(t *testing.T) {
	deps := &types.Dependencies{
		Config: &config.Config{
			Tools: config.ToolsConfig{
				SoxPath: "/nonexistent/sox",
			},
		},
	}
	status := toolStatus(deps)
	assert.Equal(t, "missing", status["sox"])
}
