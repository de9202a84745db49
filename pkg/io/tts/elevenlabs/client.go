package elevenlabs

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/xpanvictor/xarvis-voice/pkg/io/tts"
)

const defaultWSBase = "wss://api.elevenlabs.io/v1/text-to-speech/{voice_id}/stream-input"

// Client synthesizes a sentence per websocket session over the ElevenLabs
// stream-input API, collecting audio and character alignment.
type Client struct {
	apiKey       string
	wsBaseURL    string
	modelID      string
	outputFormat string
	defaultVoice string
	timeout      time.Duration
	dialer       *websocket.Dialer
}

type Option func(*Client)

func WithWSBaseURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.wsBaseURL = base
		}
	}
}

func WithModel(modelID string) Option {
	return func(c *Client) { c.modelID = strings.TrimSpace(modelID) }
}

func WithDefaultVoice(voiceID string) Option {
	return func(c *Client) { c.defaultVoice = strings.TrimSpace(voiceID) }
}

func WithOutputFormat(format string) Option {
	return func(c *Client) { c.outputFormat = strings.TrimSpace(format) }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("elevenlabs: api key is required")
	}
	c := &Client{
		apiKey:       apiKey,
		wsBaseURL:    defaultWSBase,
		modelID:      "eleven_flash_v2_5",
		outputFormat: "mp3_44100_128",
		timeout:      30 * time.Second,
		dialer:       websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type inbound struct {
	Audio               string          `json:"audio"`
	IsFinal             *bool           `json:"isFinal"`
	Alignment           json.RawMessage `json:"alignment"`
	NormalizedAlignment json.RawMessage `json:"normalizedAlignment"`
	Error               string          `json:"error"`
	Message             string          `json:"message"`
}

type alignmentPayload struct {
	Chars            []string `json:"chars"`
	CharStartTimesMS []int    `json:"charStartTimesMs"`
	CharDurationsMS  []int    `json:"charDurationsMs"`
}

// Synthesize implements tts.Synthesizer.
func (c *Client) Synthesize(ctx context.Context, req tts.Request) (*tts.Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, tts.ErrEmptyText
	}
	voiceID := strings.TrimSpace(req.VoiceID)
	if voiceID == "" {
		voiceID = c.defaultVoice
	}
	if voiceID == "" {
		return nil, errors.New("elevenlabs: voice id is required")
	}
	wsURL, err := c.buildURL(voiceID, req.WithAlignment)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	header := http.Header{}
	header.Set("xi-api-key", c.apiKey)
	conn, _, err := c.dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: dial: %w", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
		_ = conn.SetWriteDeadline(deadline)
	}

	opening := map[string]any{"text": " "}
	if req.Speed > 0 {
		opening["voice_settings"] = map[string]any{"speed": req.Speed}
	}
	for _, msg := range []map[string]any{
		opening,
		{"text": text + " ", "flush": true},
		{"text": ""},
	} {
		if err := conn.WriteJSON(msg); err != nil {
			return nil, fmt.Errorf("elevenlabs: send: %w", err)
		}
	}

	var (
		audio     []byte
		alignment = &tts.Alignment{}
		offset    float64
	)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				break
			}
			return nil, fmt.Errorf("elevenlabs: read: %w", err)
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Error != "" {
			return nil, fmt.Errorf("elevenlabs: %s: %s", msg.Error, msg.Message)
		}
		if msg.Audio != "" {
			chunk, err := base64.StdEncoding.DecodeString(msg.Audio)
			if err != nil {
				return nil, fmt.Errorf("elevenlabs: decode audio: %w", err)
			}
			audio = append(audio, chunk...)
		}
		if req.WithAlignment {
			offset = appendAlignment(alignment, msg, offset)
		}
		if msg.IsFinal != nil && *msg.IsFinal {
			break
		}
	}
	if len(audio) == 0 {
		return nil, errors.New("elevenlabs: no audio received")
	}

	res := &tts.Result{
		Audio:       audio,
		Base64:      base64.StdEncoding.EncodeToString(audio),
		ContentType: contentType(c.outputFormat),
	}
	if req.WithAlignment && !alignment.Empty() {
		res.Alignment = alignment
	}
	return res, nil
}

// appendAlignment adds one message's character timing to a. Chunk timings are
// relative to their own audio, so they are shifted by where the previous chunk
// ended. Returns the new end offset.
func appendAlignment(a *tts.Alignment, msg inbound, offset float64) float64 {
	raw := msg.NormalizedAlignment
	if len(raw) == 0 || string(raw) == "null" {
		raw = msg.Alignment
	}
	if len(raw) == 0 || string(raw) == "null" {
		return offset
	}
	var p alignmentPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return offset
	}
	if len(p.Chars) == 0 || len(p.Chars) != len(p.CharStartTimesMS) || len(p.Chars) != len(p.CharDurationsMS) {
		return offset
	}
	end := offset
	for i, ch := range p.Chars {
		start := offset + float64(p.CharStartTimesMS[i])/1000
		stop := start + float64(p.CharDurationsMS[i])/1000
		a.Chars = append(a.Chars, ch)
		a.Starts = append(a.Starts, start)
		a.Ends = append(a.Ends, stop)
		end = max(end, stop)
	}
	return end
}

func (c *Client) buildURL(voiceID string, withAlignment bool) (string, error) {
	raw := strings.ReplaceAll(c.wsBaseURL, "{voice_id}", url.PathEscape(voiceID))
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("elevenlabs: invalid ws url: %w", err)
	}
	q := u.Query()
	if c.modelID != "" {
		q.Set("model_id", c.modelID)
	}
	if c.outputFormat != "" {
		q.Set("output_format", c.outputFormat)
	}
	if withAlignment {
		q.Set("sync_alignment", "true")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func contentType(format string) string {
	switch {
	case strings.HasPrefix(format, "mp3"):
		return "audio/mpeg"
	case strings.HasPrefix(format, "pcm"):
		return "audio/pcm"
	case strings.HasPrefix(format, "ulaw"):
		return "audio/basic"
	default:
		return "application/octet-stream"
	}
}
