package whisper

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xpanvictor/xarvis-voice/pkg/Logger"
	"github.com/xpanvictor/xarvis-voice/pkg/io/stt"
)

func TestTranscribeJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/asr", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("output"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		file, header, err := r.FormFile("audio_file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		assert.Equal(t, "clip.webm", header.Filename)
		body, _ := io.ReadAll(file)
		assert.Equal(t, []byte("audio"), body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"  hello world ","language":"en"}`))
	}))
	defer srv.Close()

	c := NewWhisperClient(srv.URL+"/", "en", Logger.New(false))
	text, err := c.Transcribe(context.Background(), []byte("audio"), "clip.webm")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestTranscribePlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("just text"))
	}))
	defer srv.Close()

	c := NewWhisperClient(srv.URL, "", Logger.New(false))
	text, err := c.Transcribe(context.Background(), []byte("audio"), "")
	require.NoError(t, err)
	assert.Equal(t, "just text", text)
}

func TestTranscribeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewWhisperClient(srv.URL, "en", Logger.New(false))
	_, err := c.Transcribe(context.Background(), []byte("audio"), "a.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")

	_, err = c.Transcribe(context.Background(), nil, "a.wav")
	assert.True(t, errors.Is(err, stt.ErrNoAudio))
}
