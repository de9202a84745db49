package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/option"
	"github.com/xpanvictor/xarvis-voice/internal/config"
	"github.com/xpanvictor/xarvis-voice/pkg/Logger"
	"github.com/xpanvictor/xarvis-voice/pkg/assistant"
	"github.com/xpanvictor/xarvis-voice/pkg/assistant/providers/gemini"
	"github.com/xpanvictor/xarvis-voice/pkg/assistant/providers/ollama"
	"github.com/xpanvictor/xarvis-voice/pkg/io/stt"
	openaistt "github.com/xpanvictor/xarvis-voice/pkg/io/stt/openai"
	"github.com/xpanvictor/xarvis-voice/pkg/io/stt/whisper"
	"github.com/xpanvictor/xarvis-voice/pkg/io/tts"
	"github.com/xpanvictor/xarvis-voice/pkg/io/tts/elevenlabs"
	"github.com/xpanvictor/xarvis-voice/pkg/io/tts/piper"
)

// NewTranscriber picks the speech-to-text backend named by voice.stt_provider.
func NewTranscriber(cfg *config.Settings, logger *Logger.Logger) (stt.Transcriber, error) {
	switch provider := strings.ToLower(cfg.Voice.STTProvider); provider {
	case "", "whisper":
		logger.Infof("STT: whisper at %s", cfg.Voice.WhisperURL)
		return whisper.NewWhisperClient(cfg.Voice.WhisperURL, cfg.Voice.Language, logger.Named("whisper")), nil
	case "openai":
		if cfg.Brain.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("stt provider openai needs brain.openai.api_key")
		}
		var opts []option.RequestOption
		if cfg.Brain.OpenAI.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.Brain.OpenAI.BaseURL))
		}
		logger.Info("STT: openai whisper-1")
		return openaistt.New(cfg.Brain.OpenAI.APIKey, cfg.Voice.Language, opts...), nil
	default:
		return nil, fmt.Errorf("unknown stt provider %q", provider)
	}
}

// NewSynthesizer picks the text-to-speech backend named by voice.tts_provider.
func NewSynthesizer(cfg *config.Settings, logger *Logger.Logger) (tts.Synthesizer, error) {
	switch provider := strings.ToLower(cfg.Voice.TTSProvider); provider {
	case "", "piper":
		p := piper.New(cfg.Voice.PiperURL)
		p.Voice = cfg.Voice.PiperVoice
		p.Timeout = cfg.Voice.TTSTimeout
		logger.Infof("TTS: piper at %s (voice %s)", cfg.Voice.PiperURL, cfg.Voice.PiperVoice)
		return p, nil
	case "elevenlabs":
		el := cfg.Voice.ElevenLabs
		c, err := elevenlabs.New(el.APIKey,
			elevenlabs.WithModel(el.Model),
			elevenlabs.WithDefaultVoice(el.VoiceID),
			elevenlabs.WithOutputFormat(el.OutputFormat),
			elevenlabs.WithWSBaseURL(el.WSBaseURL),
			elevenlabs.WithTimeout(cfg.Voice.TTSTimeout),
		)
		if err != nil {
			return nil, err
		}
		logger.Infof("TTS: elevenlabs model %s", el.Model)
		return c, nil
	default:
		return nil, fmt.Errorf("unknown tts provider %q", provider)
	}
}

// NewGenerator builds the sentence generator over the configured brain.
// The returned close func releases provider clients and is never nil.
func NewGenerator(ctx context.Context, cfg *config.Settings, logger *Logger.Logger) (assistant.Generator, func() error, error) {
	noop := func() error { return nil }
	var streamer assistant.DeltaStreamer

	switch provider := strings.ToLower(cfg.Brain.Provider); provider {
	case "", "openai":
		if cfg.Brain.OpenAI.APIKey == "" {
			return nil, noop, fmt.Errorf("brain provider openai needs brain.openai.api_key")
		}
		streamer = assistant.NewOpenAIStreamer(cfg.Brain.OpenAI)
		logger.Infof("Brain: openai %s", cfg.Brain.OpenAI.Model)
	case "ollama":
		streamer = ollama.New(cfg.Brain.Ollama, logger.Named("ollama"))
		logger.Infof("Brain: ollama %s on %v", cfg.Brain.Ollama.Model, cfg.Brain.Ollama.URLs)
	case "gemini":
		gp, err := gemini.New(ctx, cfg.Brain.Gemini)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create gemini client: %w", err)
		}
		streamer = gp
		logger.Infof("Brain: gemini %s", cfg.Brain.Gemini.Model)
		return assistant.NewSentenceGenerator(streamer, cfg.Brain.SystemPrompt), gp.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown brain provider %q", provider)
	}

	return assistant.NewSentenceGenerator(streamer, cfg.Brain.SystemPrompt), noop, nil
}
