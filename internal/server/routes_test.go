package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/xpanvictor/xarvis-voice/internal/config"
	"github.com/xpanvictor/xarvis-voice/internal/domains/session"
	"github.com/xpanvictor/xarvis-voice/pkg/Logger"
)

type noSessions struct{}

func (noSessions) Start(context.Context, []byte, session.Options) (string, error) {
	return "", session.ErrEmptyAudio
}

func (noSessions) Poll(string) (session.PollResult, error) {
	return session.PollResult{}, session.ErrSessionNotFound
}

func TestRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	InitializeRoutes(r, NewServerDependencies(noSessions{}, Logger.Nop(), &config.Settings{}))

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/api/poll-session?sessionId=nope", http.StatusNotFound},
		{http.MethodPost, "/api/start-session", http.StatusBadRequest},
		{http.MethodOptions, "/api/start-session", http.StatusNoContent},
		{http.MethodGet, "/swagger/doc.json", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.want, w.Code, "%s %s", tc.method, tc.path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.True(t, strings.Contains(w.Body.String(), "/api/poll-session"))
}
