package convert

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/audiokit/audiofile/api/types"
	"github.com/audiokit/audiofile/pkg/audio"
)

// Post converts an uploaded audio or video file to WAV and streams the
// result back as an attachment.
//
// Form fields besides "file": "offset" and "duration" select the part to
// convert, "bit_depth" and "normalize" control the output encoding.
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			types.SendBadRequest(c, "missing 'file' upload")
			return
		}

		bitDepth := 16
		if v := c.PostForm("bit_depth"); v != "" {
			bitDepth, err = strconv.Atoi(v)
			if err != nil {
				types.SendBadRequest(c, "invalid 'bit_depth' value")
				return
			}
		}
		normalize, _ := strconv.ParseBool(c.PostForm("normalize"))

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

		outfile := strings.TrimSuffix(path, filepath.Ext(path)) + ".wav"
		written, err := audio.ConvertToWav(path, outfile, &audio.ConvertOptions{
			Offset:    timeSpec(c.PostForm("offset")),
			Duration:  timeSpec(c.PostForm("duration")),
			BitDepth:  bitDepth,
			Normalize: normalize,
			// The upload keeps its original name, so a WAV input converts
			// onto its own path inside the scratch directory.
			Overwrite: true,
		})
		if err != nil {
			sendAudioError(c, err)
			return
		}

		c.FileAttachment(written, filepath.Base(written))
	}
}

// timeSpec converts a form value into an offset/duration spec. Plain
// numbers mean seconds here; everything else ("2 min", "-1.5 s", "Inf")
// is passed through as a string for the audio package's grammar.
func timeSpec(v string) any {
	if v == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

// sendAudioError maps errors from the audio package to HTTP status codes
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
