package tts

import (
	"context"
	"errors"
)

var ErrEmptyText = errors.New("tts: empty text")

// Alignment is character level timing in seconds, when a provider reports it.
type Alignment struct {
	Chars  []string  `json:"chars"`
	Starts []float64 `json:"starts"`
	Ends   []float64 `json:"ends"`
}

func (a *Alignment) Empty() bool {
	return a == nil || len(a.Chars) == 0
}

type Request struct {
	Text    string
	VoiceID string
	Speed   float64
	// WithAlignment asks for timestamps. Providers that cannot produce them
	// ignore it and return a nil Alignment.
	WithAlignment bool
}

type Result struct {
	Audio       []byte
	Base64      string
	ContentType string
	Alignment   *Alignment
}

type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (*Result, error)
}
