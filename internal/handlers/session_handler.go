package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/xarvis-voice/internal/domains/session"
	"github.com/xpanvictor/xarvis-voice/pkg/Logger"
)

// SessionService is the part of session.Manager the HTTP layer drives.
type SessionService interface {
	Start(ctx context.Context, audio []byte, opts session.Options) (string, error)
	Poll(sessionID string) (session.PollResult, error)
}

type SessionHandler struct {
	sessions       SessionService
	maxUploadBytes int64
	logger         *Logger.Logger
}

func NewSessionHandler(sessions SessionService, maxUploadBytes int64, logger *Logger.Logger) *SessionHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 25 << 20
	}
	return &SessionHandler{
		sessions:       sessions,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// StartSession accepts a recorded utterance and starts producing the reply
// @Summary Start a voice session
// @Description Uploads audio (raw body or multipart field "audio") and starts transcription, response generation, speech synthesis and lip sync in the background. Poll the returned session for results.
// @Tags Session
// @Accept application/octet-stream
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file false "Recorded audio when sent as multipart"
// @Param mouthShapeCount query int false "Number of mouth images on the rig (3-6)" default(6)
// @Param lipSyncMethod query string false "timestamps or amplitude" default(timestamps)
// @Param voiceId query string false "Synthesis voice"
// @Param participantId query string false "Key for short-term conversation memory"
// @Param speed query number false "Speech speed multiplier"
// @Param subjectId query string false "Profile used as prompt context"
// @Success 200 {object} StartSessionResponse "Session started"
// @Failure 400 {object} ErrorResponse "No audio or invalid parameters"
// @Failure 413 {object} ErrorResponse "Upload too large"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/start-session [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	audio, filename, err := readAudio(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Audio upload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not read audio", Details: err.Error()})
		return
	}

	opts, err := sessionOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request data", Details: err.Error()})
		return
	}
	opts.Filename = filename

	id, err := h.sessions.Start(c.Request.Context(), audio, opts)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrEmptyAudio):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No audio provided"})
		default:
			h.logger.Errorf("start session error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, StartSessionResponse{SessionID: id})
}

// PollSession returns everything produced since the last poll
// @Summary Poll a voice session
// @Description Drains queued text and audio chunks. A completed session is forgotten once drained, later polls return 404.
// @Tags Session
// @Produce json
// @Param sessionId query string true "Session id from start-session"
// @Success 200 {object} session.PollResult "Chunks produced since the previous poll"
// @Failure 400 {object} ErrorResponse "Missing session id"
// @Failure 404 {object} ErrorResponse "Unknown or finished session"
// @Router /api/poll-session [get]
func (h *SessionHandler) PollSession(c *gin.Context) {
	id := strings.TrimSpace(c.Query("sessionId"))
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "sessionId is required"})
		return
	}

	res, err := h.sessions.Poll(id)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Session not found"})
		default:
			h.logger.Errorf("poll session error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

// readAudio takes the multipart "audio" field when present, the raw body otherwise.
func readAudio(c *gin.Context) ([]byte, string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		fh, err := c.FormFile("audio")
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		if err != nil {
			return nil, "", err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		return data, fh.Filename, err
	}

	data, err := io.ReadAll(c.Request.Body)
	return data, audioFilename(c.ContentType()), err
}

func sessionOptions(c *gin.Context) (session.Options, error) {
	opts := session.Options{
		LipSyncMethod: session.LipSyncMethod(param(c, "lipSyncMethod")),
		VoiceID:       param(c, "voiceId"),
		ParticipantID: param(c, "participantId"),
		SubjectID:     param(c, "subjectId"),
	}
	if v := param(c, "mouthShapeCount"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("mouthShapeCount: %w", err)
		}
		opts.MouthShapeCount = n
	}
	if v := param(c, "speed"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("speed: %w", err)
		}
		opts.Speed = f
	}
	return opts, nil
}
