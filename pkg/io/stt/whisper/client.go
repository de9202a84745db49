package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xpanvictor/xarvis-voice/pkg/Logger"
	"github.com/xpanvictor/xarvis-voice/pkg/io/stt"
)

// TranscriptionResponse represents the response from Whisper STT service
type TranscriptionResponse struct {
	Text        string                 `json:"text"`
	Language    string                 `json:"language"`
	Segments    []TranscriptionSegment `json:"segments,omitempty"`
	GeneratedAt time.Time
}

// TranscriptionSegment represents a timed segment of transcription
type TranscriptionSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	ID    int     `json:"id"`
}

// WhisperClient handles communication with a whisper-asr-webservice instance
type WhisperClient struct {
	baseURL    string
	language   string
	httpClient *http.Client
	logger     *Logger.Logger
}

// NewWhisperClient creates a new Whisper client
func NewWhisperClient(baseURL, language string, logger *Logger.Logger) *WhisperClient {
	return &WhisperClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Transcribe implements stt.Transcriber.
func (w *WhisperClient) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	resp, err := w.TranscribeAudio(ctx, audio, filename)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

// TranscribeAudio uploads a complete clip and returns the full response.
func (w *WhisperClient) TranscribeAudio(ctx context.Context, audio []byte, filename string) (*TranscriptionResponse, error) {
	if len(audio) == 0 {
		return nil, stt.ErrNoAudio
	}
	if filename == "" {
		filename = "audio.wav"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("audio_file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	q := url.Values{}
	q.Set("encode", "true")
	q.Set("task", "transcribe")
	q.Set("output", "json")
	if w.language != "" {
		q.Set("language", w.language)
	}
	requestURL := w.baseURL + "/asr?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		w.logger.Errorf("Whisper service error (status %d): %s", resp.StatusCode, string(responseBody))
		return nil, fmt.Errorf("whisper service returned status %d: %s", resp.StatusCode, string(responseBody))
	}

	var transcription TranscriptionResponse
	if err := json.Unmarshal(responseBody, &transcription); err != nil {
		// some deployments answer with text/plain regardless of output=json
		w.logger.Debugf("Treating whisper response as plain text (length=%d)", len(responseBody))
		return &TranscriptionResponse{
			Text:        string(responseBody),
			Language:    w.language,
			GeneratedAt: time.Now(),
		}, nil
	}
	transcription.GeneratedAt = time.Now()

	w.logger.Debugf("Whisper transcription: %s (language: %s)", transcription.Text, transcription.Language)
	return &transcription, nil
}
