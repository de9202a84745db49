package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xpanvictor/xarvis-voice/internal/domains/session"
	"github.com/xpanvictor/xarvis-voice/pkg/Logger"
)

type fakeSessions struct {
	audio   []byte
	opts    session.Options
	results map[string]session.PollResult
}

func (f *fakeSessions) Start(_ context.Context, audio []byte, opts session.Options) (string, error) {
	if len(audio) == 0 {
		return "", session.ErrEmptyAudio
	}
	f.audio = audio
	f.opts = opts
	return "123-abc", nil
}

func (f *fakeSessions) Poll(id string) (session.PollResult, error) {
	res, ok := f.results[id]
	if !ok {
		return session.PollResult{}, session.ErrSessionNotFound
	}
	delete(f.results, id)
	return res, nil
}

func newTestRouter(svc SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSessionHandler(svc, 1024, Logger.Nop())
	r.POST("/api/start-session", h.StartSession)
	r.GET("/api/poll-session", h.PollSession)
	return r
}

func TestStartSessionRawBody(t *testing.T) {
	svc := &fakeSessions{}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/start-session?mouthShapeCount=4&lipSyncMethod=amplitude&voiceId=v1&participantId=p1&speed=1.25&subjectId=s1", bytes.NewReader([]byte("RIFFdata")))
	req.Header.Set("Content-Type", "audio/webm")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body StartSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "123-abc", body.SessionID)

	assert.Equal(t, []byte("RIFFdata"), svc.audio)
	assert.Equal(t, session.Options{
		MouthShapeCount: 4,
		LipSyncMethod:   session.Amplitude,
		VoiceID:         "v1",
		ParticipantID:   "p1",
		Speed:           1.25,
		SubjectID:       "s1",
		Filename:        "audio.webm",
	}, svc.opts)
}

func TestStartSessionMultipart(t *testing.T) {
	svc := &fakeSessions{}
	r := newTestRouter(svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("audio", "hello.wav")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("wavbytes"))
	require.NoError(t, mw.WriteField("participantId", "p9"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/start-session", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte("wavbytes"), svc.audio)
	assert.Equal(t, "hello.wav", svc.opts.Filename)
	assert.Equal(t, "p9", svc.opts.ParticipantID)
}

func TestStartSessionRejectsBadInput(t *testing.T) {
	r := newTestRouter(&fakeSessions{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/start-session", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No audio provided")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/start-session?mouthShapeCount=lots", bytes.NewReader([]byte("a"))))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/start-session", bytes.NewReader(make([]byte, 2048))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestPollSession(t *testing.T) {
	msg := "Could not transcribe audio"
	svc := &fakeSessions{results: map[string]session.PollResult{
		"s1": {
			TextChunks:  []session.TextChunk{{Text: "Hi.", SentenceIndex: 0}},
			AudioChunks: []session.AudioChunk{},
			IsComplete:  true,
			Error:       &msg,
		},
	}}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/poll-session?sessionId=s1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["isComplete"])
	assert.Equal(t, msg, body["error"])
	assert.Nil(t, body["transcript"])
	assert.Len(t, body["textChunks"], 1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/poll-session?sessionId=s1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/poll-session", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAudioFilename(t *testing.T) {
	assert.Equal(t, "audio.mp3", audioFilename("audio/mpeg"))
	assert.Equal(t, "audio.wav", audioFilename("application/octet-stream"))
}
