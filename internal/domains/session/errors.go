package session

import "errors"

var (
	ErrEmptyAudio      = errors.New("no audio provided")
	ErrSessionNotFound = errors.New("session not found")
)

// MsgNoTranscription is recorded when the transcriber hears nothing usable.
const MsgNoTranscription = "Could not transcribe audio"
