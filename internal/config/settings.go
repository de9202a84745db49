package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	Pass string `mapstructure:"pass"`
	DB   int    `mapstructure:"db"`
}

type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	PoolSize int    `mapstructure:"pool_size"`
}

// DSN builds a go-sql-driver/mysql data source name.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Name)
}

type ElevenLabsConfig struct {
	APIKey       string `mapstructure:"api_key"`
	Model        string `mapstructure:"model"`
	VoiceID      string `mapstructure:"voice_id"`
	OutputFormat string `mapstructure:"output_format"`
	WSBaseURL    string `mapstructure:"ws_base_url"`
}

type VoiceConfig struct {
	STTProvider string           `mapstructure:"stt_provider"` // whisper | openai
	WhisperURL  string           `mapstructure:"whisper_url"`
	Language    string           `mapstructure:"language"`
	TTSProvider string           `mapstructure:"tts_provider"` // piper | elevenlabs
	PiperURL    string           `mapstructure:"piper_url"`
	PiperVoice  string           `mapstructure:"piper_voice"`
	TTSTimeout  time.Duration    `mapstructure:"tts_timeout"`
	ElevenLabs  ElevenLabsConfig `mapstructure:"elevenlabs"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OllamaConfig struct {
	URLs  []string `mapstructure:"urls"`
	Model string   `mapstructure:"model"`
}

type BrainConfig struct {
	Provider     string       `mapstructure:"provider"` // openai | ollama | gemini
	SystemPrompt string       `mapstructure:"system_prompt"`
	OpenAI       OpenAIConfig `mapstructure:"openai"`
	Gemini       GeminiConfig `mapstructure:"gemini"`
	Ollama       OllamaConfig `mapstructure:"ollama"`
}

type ConversationConfig struct {
	Store    string        `mapstructure:"store"` // memory | redis
	TTL      time.Duration `mapstructure:"ttl"`
	MaxPairs int           `mapstructure:"max_pairs"`
}

type SessionConfig struct {
	// SweepAfter > 0 reaps sessions older than this on a ticker.
	SweepAfter    time.Duration `mapstructure:"sweep_after"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type SecretsConfig struct {
	SSMPrefix string `mapstructure:"ssm_prefix"`
	Region    string `mapstructure:"region"`
}

type Settings struct {
	Env          string             `mapstructure:"env"`
	Debug        bool               `mapstructure:"debug"`
	Server       ServerConfig       `mapstructure:"server"`
	Redis        RedisConfig        `mapstructure:"redis"`
	DB           DBConfig           `mapstructure:"database"`
	Voice        VoiceConfig        `mapstructure:"voice"`
	Brain        BrainConfig        `mapstructure:"brain"`
	Conversation ConversationConfig `mapstructure:"conversation"`
	Session      SessionConfig      `mapstructure:"session"`
	Secrets      SecretsConfig      `mapstructure:"secrets"`
}

const DefaultSystemPrompt = "You are a friendly animated character having a spoken conversation. " +
	"Answer in short, natural sentences suitable for reading aloud. Do not use markdown, lists or emojis."

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("debug", false)

	v.SetDefault("server.port", 8088)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_upload_bytes", 25<<20)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pass", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "xarvis_voice")
	v.SetDefault("database.pool_size", 10)

	v.SetDefault("voice.stt_provider", "whisper")
	v.SetDefault("voice.whisper_url", "http://localhost:9000")
	v.SetDefault("voice.language", "en")
	v.SetDefault("voice.tts_provider", "piper")
	v.SetDefault("voice.piper_url", "http://localhost:5000")
	v.SetDefault("voice.piper_voice", "en_US-lessac-medium")
	v.SetDefault("voice.tts_timeout", 30*time.Second)
	v.SetDefault("voice.elevenlabs.api_key", "")
	v.SetDefault("voice.elevenlabs.model", "eleven_flash_v2_5")
	v.SetDefault("voice.elevenlabs.voice_id", "")
	v.SetDefault("voice.elevenlabs.output_format", "mp3_44100_128")
	v.SetDefault("voice.elevenlabs.ws_base_url", "")

	v.SetDefault("brain.provider", "openai")
	v.SetDefault("brain.system_prompt", DefaultSystemPrompt)
	v.SetDefault("brain.openai.api_key", "")
	v.SetDefault("brain.openai.model", "gpt-4o-mini")
	v.SetDefault("brain.openai.base_url", "")
	v.SetDefault("brain.gemini.api_key", "")
	v.SetDefault("brain.gemini.model", "gemini-2.5-flash-lite")
	v.SetDefault("brain.ollama.urls", []string{"http://localhost:11434"})
	v.SetDefault("brain.ollama.model", "llama3.2")

	v.SetDefault("conversation.store", "memory")
	v.SetDefault("conversation.ttl", 24*time.Hour)
	v.SetDefault("conversation.max_pairs", 10)

	v.SetDefault("session.sweep_after", time.Duration(0))
	v.SetDefault("session.sweep_interval", time.Minute)

	v.SetDefault("secrets.ssm_prefix", "")
	v.SetDefault("secrets.region", "")
}

func Load() (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load settings from a configuration file or environment variables
	v.SetConfigName("config_" + genEnv(v))
	v.AddConfigPath(".")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &settings, nil
}

func genEnv(v *viper.Viper) string {
	env := v.GetString("ENV")
	if env == "" {
		return "dev"
	}
	return env
}
