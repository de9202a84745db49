package ollama

import (
	"context"
	"fmt"

	"github.com/ollama/ollama/api"
	"github.com/presbrey/ollamafarm"
	"github.com/xpanvictor/xarvis-voice/internal/config"
	"github.com/xpanvictor/xarvis-voice/pkg/Logger"
	"github.com/xpanvictor/xarvis-voice/pkg/assistant"
)

// OllamaProvider streams chat completions from the first online server of a
// farm of ollama instances.
type OllamaProvider struct {
	ollamafarm *ollamafarm.Farm
	model      string
}

func New(cfg config.OllamaConfig, logger *Logger.Logger) *OllamaProvider {
	farm := ollamafarm.New()

	// register servers
	for _, u := range cfg.URLs {
		if err := farm.RegisterURL(u, nil); err != nil {
			logger.Warnf("ollama: failed to register %s: %v", u, err)
		}
	}

	return &OllamaProvider{
		ollamafarm: farm,
		model:      cfg.Model,
	}
}

func (o *OllamaProvider) Chat(
	ctx context.Context,
	req api.ChatRequest,
	fn api.ChatResponseFunc,
) error {
	// pick first available client
	ollama := o.ollamafarm.First(&ollamafarm.Where{Offline: false})
	if ollama != nil {
		return ollama.Client().Chat(ctx, &req, fn)
	}
	return fmt.Errorf("ollama: no server online for model %v", req.Model)
}

// StreamDeltas implements assistant.DeltaStreamer.
func (o *OllamaProvider) StreamDeltas(ctx context.Context, msgs []assistant.Message, fn func(delta string) error) error {
	req := api.ChatRequest{
		Model:    o.model,
		Messages: ConvertMsgs(msgs),
	}
	return o.Chat(ctx, req, func(cr api.ChatResponse) error {
		if cr.Message.Content == "" {
			return nil
		}
		return fn(cr.Message.Content)
	})
}

func ConvertMsgs(msgs []assistant.Message) []api.Message {
	converted := make([]api.Message, 0, len(msgs))
	for _, msg := range msgs {
		converted = append(converted, api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return converted
}
