package secrets

import (
	"context"
	"path"

	"github.com/xpanvictor/xarvis-voice/internal/config"
	"github.com/xpanvictor/xarvis-voice/pkg/Logger"
)

// ResolveAPIKeys fills provider keys left empty in settings from
// <prefix>/<name>. Keys already set are never overwritten; a missing
// parameter leaves the key empty and is only logged.
func ResolveAPIKeys(ctx context.Context, g Getter, prefix string, s *config.Settings, logger *Logger.Logger) {
	targets := []struct {
		name string
		dst  *string
	}{
		{"openai_api_key", &s.Brain.OpenAI.APIKey},
		{"gemini_api_key", &s.Brain.Gemini.APIKey},
		{"elevenlabs_api_key", &s.Voice.ElevenLabs.APIKey},
	}
	for _, t := range targets {
		if *t.dst != "" {
			continue
		}
		v, err := g.GetParameter(ctx, path.Join(prefix, t.name))
		if err != nil {
			logger.Debugf("secret %s not resolved: %v", t.name, err)
			continue
		}
		*t.dst = v
	}
}
