package assistant

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/xpanvictor/xarvis-voice/internal/config"
)

type OpenAIStreamer struct {
	client openai.Client
	model  string
}

func NewOpenAIStreamer(cfg config.OpenAIConfig, opts ...option.RequestOption) *OpenAIStreamer {
	base := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}
	return &OpenAIStreamer{
		client: openai.NewClient(append(base, opts...)...),
		model:  model,
	}
}

// StreamDeltas implements DeltaStreamer.
func (o *OpenAIStreamer) StreamDeltas(ctx context.Context, msgs []Message, fn func(delta string) error) error {
	convertedMsgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		convertedMsgs = append(convertedMsgs, convertToOpenaiMsg(msg))
	}
	stream := o.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Messages: convertedMsgs,
		Model:    openai.ChatModel(o.model),
	})
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			if err := fn(delta); err != nil {
				return err
			}
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("openai stream: %w", err)
	}
	return nil
}

func convertToOpenaiMsg(msg Message) openai.ChatCompletionMessageParamUnion {
	switch msg.Role {
	case ASSISTANT:
		return openai.AssistantMessage(msg.Content)
	case USER:
		return openai.UserMessage(msg.Content)
	case SYSTEM:
		return openai.SystemMessage(msg.Content)
	}
	return openai.UserMessage(msg.Content)
}
