package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/xpanvictor/xarvis-voice/internal/config"
	"github.com/xpanvictor/xarvis-voice/pkg/assistant"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type GeminiProvider struct {
	client *genai.Client
	model  string
}

// New creates a new GeminiProvider instance.
func New(ctx context.Context, cfg config.GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini API client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (gp *GeminiProvider) Close() error {
	return gp.client.Close()
}

// StreamDeltas implements assistant.DeltaStreamer.
func (gp *GeminiProvider) StreamDeltas(ctx context.Context, msgs []assistant.Message, fn func(delta string) error) error {
	system, history, prompt := SplitMessages(msgs)

	model := gp.client.GenerativeModel(gp.model)
	if system != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	}
	cs := model.StartChat()
	cs.History = history

	it := cs.SendMessageStream(ctx, genai.Text(prompt))
	for {
		resp, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to receive from Gemini stream: %w", err)
		}
		if text := ResponseText(resp); text != "" {
			if err := fn(text); err != nil {
				return err
			}
		}
	}
}

// SplitMessages separates the system instructions and the final user prompt
// from the turns that become chat history. Gemini calls the assistant "model".
func SplitMessages(msgs []assistant.Message) (string, []*genai.Content, string) {
	var (
		system  string
		history []*genai.Content
		prompt  string
	)
	for i, m := range msgs {
		switch {
		case m.Role == assistant.SYSTEM:
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
		case i == len(msgs)-1 && m.Role == assistant.USER:
			prompt = m.Content
		case m.Role == assistant.ASSISTANT:
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(m.Content)}})
		default:
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(m.Content)}})
		}
	}
	return system, history, prompt
}

func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var out string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				out += string(txt)
			}
		}
	}
	return out
}
