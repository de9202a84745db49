package piper

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xpanvictor/xarvis-voice/pkg/io/tts"
)

func TestSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/text-to-speech", r.URL.Path)
		assert.Equal(t, "Hello there.", r.URL.Query().Get("text"))
		assert.Equal(t, "en_US-amy", r.URL.Query().Get("voice"))
		assert.Equal(t, "0.500", r.URL.Query().Get("length_scale"))
		w.Header().Set("Content-Type", "audio/wav")
		_, _ = w.Write([]byte("RIFFfake"))
	}))
	defer srv.Close()

	p := New(srv.URL)
	p.Voice = "default"
	res, err := p.Synthesize(context.Background(), tts.Request{Text: "Hello there.", VoiceID: "en_US-amy", Speed: 2, WithAlignment: true})
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFFfake"), res.Audio)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("RIFFfake")), res.Base64)
	assert.Equal(t, "audio/wav", res.ContentType)
	assert.Nil(t, res.Alignment)
}

func TestSynthesizeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "voice missing", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Synthesize(context.Background(), tts.Request{Text: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tts http 404")
}

func TestSynthesizeEmptyText(t *testing.T) {
	_, err := New("http://unused").Synthesize(context.Background(), tts.Request{})
	assert.True(t, errors.Is(err, tts.ErrEmptyText))
}
