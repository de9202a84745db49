package assistant

import (
	"context"
	"errors"
	"iter"
	"strings"
)

var errStopped = errors.New("assistant: consumer stopped")

type SentenceGenerator struct {
	streamer     DeltaStreamer
	systemPrompt string
	maxChars     int
}

func NewSentenceGenerator(streamer DeltaStreamer, systemPrompt string) *SentenceGenerator {
	return &SentenceGenerator{
		streamer:     streamer,
		systemPrompt: systemPrompt,
		maxChars:     DefaultMaxSentenceChars,
	}
}

// StreamSentences implements Generator.
func (g *SentenceGenerator) StreamSentences(ctx context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		buf := NewSentenceBuffer(g.maxChars)
		stopped := false

		err := g.streamer.StreamDeltas(ctx, BuildMessages(g.systemPrompt, req), func(delta string) error {
			for _, s := range buf.Push(delta) {
				if !yield(s, nil) {
					stopped = true
					return errStopped
				}
			}
			return nil
		})
		if stopped {
			return
		}
		if err != nil {
			yield("", err)
			return
		}
		if rest := buf.Flush(); rest != "" {
			yield(rest, nil)
		}
	}
}

// BuildMessages lays out the prompt: system instructions (with the profile
// context appended), the prior exchanges, then the new user utterance.
func BuildMessages(systemPrompt string, req Request) []Message {
	msgs := make([]Message, 0, len(req.History)+2)

	system := strings.TrimSpace(systemPrompt)
	if c := strings.TrimSpace(req.Context); c != "" {
		if system != "" {
			system += "\n\n"
		}
		system += "About the person you are talking to:\n" + c
	}
	if system != "" {
		msgs = append(msgs, Message{Role: SYSTEM, Content: system})
	}
	for _, m := range req.History {
		if m.Content == "" {
			continue
		}
		msgs = append(msgs, m)
	}
	return append(msgs, Message{Role: USER, Content: req.UserText})
}
