package info

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/audiokit/audiofile/api/types"
	"github.com/audiokit/audiofile/pkg/audio"
)

// Post handles metadata requests for an uploaded audio file
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			types.SendBadRequest(c, "missing 'file' upload")
			return
		}
		sloppy, _ := strconv.ParseBool(c.PostForm("sloppy"))

		dir, err := os.MkdirTemp(tempDir(deps), "upload_*")
		if err != nil {
			types.SendInternalError(c, "failed to create temporary directory")
			return
		}
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, filepath.Base(fileHeader.Filename))
		if err := c.SaveUploadedFile(fileHeader, path); err != nil {
			types.SendInternalError(c, "failed to store upload")
			return
		}

		channels, err := audio.Channels(path)
		if err != nil {
			sendAudioError(c, err)
			return
		}
		rate, err := audio.SamplingRate(path)
		if err != nil {
			sendAudioError(c, err)
			return
		}
		samples, err := audio.Samples(path)
		if err != nil {
			sendAudioError(c, err)
			return
		}
		duration, err := audio.Duration(path, sloppy)
		if err != nil {
			sendAudioError(c, err)
			return
		}
		bitDepth, err := audio.BitDepth(path)
		if err != nil {
			sendAudioError(c, err)
			return
		}
		hasVideo, err := audio.HasVideo(path)
		if err != nil {
			sendAudioError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.InfoResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			File:         fileHeader.Filename,
			Channels:     channels,
			SamplingRate: rate,
			Samples:      samples,
			Duration:     duration,
			BitDepth:     bitDepth,
			HasVideo:     hasVideo,
		})
	}
}

// sendAudioError maps errors from the audio package to HTTP status codes.
// Unreadable or unsupported uploads are the client's problem, a missing
// external tool is ours.
func sendAudioError(c *gin.Context, err error) {
	var binErr *audio.BinaryMissingError
	if errors.As(err, &binErr) {
		types.SendInternalError(c, err.Error())
		return
	}
	types.SendBadRequest(c, err.Error())
}

func tempDir(deps *types.Dependencies) string {
	if deps != nil && deps.Config != nil {
		return deps.Config.Storage.TempDir
	}
	return ""
}
