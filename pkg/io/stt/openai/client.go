package openai

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/xpanvictor/xarvis-voice/pkg/io/stt"
)

// Transcriber uses the hosted whisper-1 model.
type Transcriber struct {
	client   openai.Client
	language string
}

func New(apiKey, language string, opts ...option.RequestOption) *Transcriber {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Transcriber{
		client:   openai.NewClient(opts...),
		language: language,
	}
}

// Transcribe implements stt.Transcriber.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", stt.ErrNoAudio
	}
	if filename == "" {
		filename = "audio.wav"
	}
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(audio), filename, contentType),
		Model: openai.AudioModelWhisper1,
	}
	if t.language != "" {
		params.Language = openai.String(t.language)
	}
	res, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai transcription: %w", err)
	}
	return strings.TrimSpace(res.Text), nil
}
