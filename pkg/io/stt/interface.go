package stt

import (
	"context"
	"errors"
)

var ErrNoAudio = errors.New("stt: no audio provided")

// Transcriber turns a recorded utterance into text. filename hints the
// container format to providers that sniff by extension.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}
