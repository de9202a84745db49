package piper

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/xpanvictor/xarvis-voice/pkg/io/tts"
)

// Piper talks to a rhasspy piper HTTP server. It never reports alignment.
type Piper struct {
	BaseURL string        // e.g. "http://tts:5000"
	Client  *http.Client  // inject; default if nil
	Voice   string        // default voice (override per-call)
	Timeout time.Duration // request timeout per sentence
}

func New(bu string) *Piper {
	return &Piper{BaseURL: bu}
}

// DoTTS streams a WAV body for text; caller must Close it.
func (p *Piper) DoTTS(ctx context.Context, text string, optVoice string, speed float64) (io.ReadCloser, string, error) {
	if text == "" {
		return nil, "", tts.ErrEmptyText
	}
	voice := p.Voice
	if optVoice != "" {
		voice = optVoice
	}

	// GET /api/text-to-speech?text=...&voice=...
	u, err := url.Parse(p.BaseURL + "/api/text-to-speech")
	if err != nil {
		return nil, "", err
	}
	q := u.Query()
	q.Set("text", text)
	if voice != "" {
		q.Set("voice", voice)
	}
	if speed > 0 {
		// piper slows down as length_scale grows
		q.Set("length_scale", strconv.FormatFloat(1/speed, 'f', 3, 64))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "audio/wav")

	hc := p.Client
	if hc == nil {
		hc = &http.Client{}
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("tts http request failed: %w (url=%s)", err, u.String())
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, "", fmt.Errorf("tts http %d: %s (url=%s, dur=%s)", resp.StatusCode, string(b), u.String(), time.Since(start))
	}
	return resp.Body, ifEmpty(resp.Header.Get("Content-Type"), "audio/wav"), nil
}

// Synthesize implements tts.Synthesizer.
func (p *Piper) Synthesize(ctx context.Context, req tts.Request) (*tts.Result, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rc, ct, err := p.DoTTS(ctx, req.Text, req.VoiceID, req.Speed)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	audio, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("tts read body: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("tts returned no audio")
	}
	return &tts.Result{
		Audio:       audio,
		Base64:      base64.StdEncoding.EncodeToString(audio),
		ContentType: ct,
	}, nil
}

func ifEmpty(s, d string) string {
	if s == "" {
		return d
	}
	return s
}
