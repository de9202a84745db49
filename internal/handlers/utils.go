package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// param reads a query parameter, falling back to a multipart form value.
func param(c *gin.Context, name string) string {
	if v := strings.TrimSpace(c.Query(name)); v != "" {
		return v
	}
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return strings.TrimSpace(c.PostForm(name))
	}
	return ""
}

var audioExtensions = map[string]string{
	"audio/wav":    "wav",
	"audio/x-wav":  "wav",
	"audio/wave":   "wav",
	"audio/webm":   "webm",
	"audio/ogg":    "ogg",
	"audio/mpeg":   "mp3",
	"audio/mp4":    "m4a",
	"audio/x-m4a":  "m4a",
	"audio/flac":   "flac",
	"video/webm":   "webm",
	"audio/x-flac": "flac",
}

// audioFilename invents a filename for a raw upload so transcribers that sniff
// by extension see the right container.
func audioFilename(contentType string) string {
	if ext, ok := audioExtensions[strings.ToLower(contentType)]; ok {
		return "audio." + ext
	}
	return "audio.wav"
}
