package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":" hi there "}`))
	}))
	defer srv.Close()

	tr := New("sk-test", "en", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	text, err := tr.Transcribe(context.Background(), []byte("RIFF"), "clip.wav")
	require.NoError(t, err)
	assert.Equal(t, "hi there", text)
}

func TestTranscribeEmpty(t *testing.T) {
	_, err := New("sk-test", "").Transcribe(context.Background(), nil, "")
	assert.Error(t, err)
}
