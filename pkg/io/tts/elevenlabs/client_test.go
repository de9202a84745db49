package elevenlabs

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xpanvictor/xarvis-voice/pkg/io/tts"
)

type fakeServer struct {
	t        *testing.T
	received []map[string]any
	query    map[string]string
	frames   []map[string]any
	done     chan struct{}
}

func newFakeServer(t *testing.T, frames []map[string]any) *fakeServer {
	return &fakeServer{t: t, frames: frames, done: make(chan struct{})}
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer close(f.done)
	assert.Equal(f.t, "secret", r.Header.Get("xi-api-key"))
	assert.True(f.t, strings.Contains(r.URL.Path, "/voice-1/"))
	f.query = map[string]string{}
	for k := range r.URL.Query() {
		f.query[k] = r.URL.Query().Get(k)
	}
	upgrader := websocket.Upgrader{}
	conn, err := upgrader.Upgrade(w, r, nil)
	if !assert.NoError(f.t, err) {
		return
	}
	defer conn.Close()

	for i := 0; i < 3; i++ {
		var msg map[string]any
		if !assert.NoError(f.t, conn.ReadJSON(&msg)) {
			return
		}
		f.received = append(f.received, msg)
	}
	for _, frame := range f.frames {
		if !assert.NoError(f.t, conn.WriteJSON(frame)) {
			return
		}
	}
}

func wsBase(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/text-to-speech/{voice_id}/stream-input"
}

func TestSynthesizeWithAlignment(t *testing.T) {
	fs := newFakeServer(t, []map[string]any{
		{
			"audio": base64.StdEncoding.EncodeToString([]byte("abc")),
			"alignment": map[string]any{
				"chars":            []string{"h", "i"},
				"charStartTimesMs": []int{0, 100},
				"charDurationsMs":  []int{100, 100},
			},
		},
		{
			"audio": base64.StdEncoding.EncodeToString([]byte("de")),
			"alignment": map[string]any{
				"chars":            []string{"!"},
				"charStartTimesMs": []int{0},
				"charDurationsMs":  []int{50},
			},
		},
		{"isFinal": true},
	})
	srv := httptest.NewServer(fs)
	defer srv.Close()

	c, err := New("secret", WithWSBaseURL(wsBase(srv)))
	require.NoError(t, err)

	res, err := c.Synthesize(context.Background(), tts.Request{Text: "hi!", VoiceID: "voice-1", Speed: 1.1, WithAlignment: true})
	require.NoError(t, err)
	<-fs.done
	assert.Equal(t, []byte("abcde"), res.Audio)
	assert.Equal(t, "audio/mpeg", res.ContentType)
	require.NotNil(t, res.Alignment)
	assert.Equal(t, []string{"h", "i", "!"}, res.Alignment.Chars)
	assert.InDeltaSlice(t, []float64{0, 0.1, 0.2}, res.Alignment.Starts, 1e-9)
	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.25}, res.Alignment.Ends, 1e-9)

	assert.Equal(t, "true", fs.query["sync_alignment"])
	require.Len(t, fs.received, 3)
	assert.Equal(t, map[string]any{"speed": 1.1}, fs.received[0]["voice_settings"])
	assert.Equal(t, "hi! ", fs.received[1]["text"])
	assert.Equal(t, true, fs.received[1]["flush"])
	assert.Equal(t, "", fs.received[2]["text"])
}

func TestSynthesizeWithoutAlignment(t *testing.T) {
	fs := newFakeServer(t, []map[string]any{
		{
			"audio": base64.StdEncoding.EncodeToString([]byte("xyz")),
			"alignment": map[string]any{
				"chars":            []string{"o"},
				"charStartTimesMs": []int{0},
				"charDurationsMs":  []int{90},
			},
		},
		{"isFinal": true},
	})
	srv := httptest.NewServer(fs)
	defer srv.Close()

	c, err := New("secret", WithWSBaseURL(wsBase(srv)), WithDefaultVoice("voice-1"))
	require.NoError(t, err)

	res, err := c.Synthesize(context.Background(), tts.Request{Text: "oh"})
	require.NoError(t, err)
	<-fs.done
	assert.Equal(t, []byte("xyz"), res.Audio)
	assert.Nil(t, res.Alignment)
	_, asked := fs.query["sync_alignment"]
	assert.False(t, asked)
}

func TestSynthesizeProviderError(t *testing.T) {
	fs := newFakeServer(t, []map[string]any{
		{"error": "quota_exceeded", "message": "out of credits"},
	})
	srv := httptest.NewServer(fs)
	defer srv.Close()

	c, err := New("secret", WithWSBaseURL(wsBase(srv)))
	require.NoError(t, err)
	_, err = c.Synthesize(context.Background(), tts.Request{Text: "hello", VoiceID: "voice-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota_exceeded")
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New("  ")
	assert.Error(t, err)
}
