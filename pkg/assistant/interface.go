package assistant

import (
	"context"
	"iter"
)

type Role string

const (
	USER      Role = "user"
	ASSISTANT Role = "assistant"
	SYSTEM    Role = "system"
)

type Message struct {
	Role    Role
	Content string
}

// Request is one conversational turn.
type Request struct {
	UserText string
	History  []Message
	// Context is free text about the person being spoken to.
	Context string
}

// Generator produces a character response one sentence at a time. The
// sequence is lazy: nothing beyond the next sentence is requested until the
// consumer asks for it. A non-nil error ends the sequence.
type Generator interface {
	StreamSentences(ctx context.Context, req Request) iter.Seq2[string, error]
}

// DeltaStreamer is what a model provider has to implement: push raw text
// deltas into fn as they arrive. A non-nil error from fn aborts the stream
// and is returned unchanged.
type DeltaStreamer interface {
	StreamDeltas(ctx context.Context, msgs []Message, fn func(delta string) error) error
}
