package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the text analysis service
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Topics    TopicsConfig    `yaml:"topics"`
	LLM       LLMConfig       `yaml:"llm"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	EnableCORS      bool          `yaml:"enable_cors"`
}

// SentimentConfig selects the sentiment scorer
type SentimentConfig struct {
	// Backend is "lexicon", "llm" (uses LLM.Provider), "ollama" or "openai".
	Backend string `yaml:"backend"`
}

// TopicsConfig holds topic model configuration
type TopicsConfig struct {
	TopWords             int `yaml:"top_words"`
	Processes            int `yaml:"processes"`
	TransformationPasses int `yaml:"transformation_passes"`
}

type LLMConfig struct {
	Provider string        `yaml:"provider"`
	BaseURL  string        `yaml:"base_url"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	Timeout  time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":3000",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    5 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    50 << 20,
			EnableCORS:      true,
		},
		Sentiment: SentimentConfig{Backend: "lexicon"},
		Topics: TopicsConfig{
			TopWords: 10,
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "qwen3:1.7b",
			Timeout:  60 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	cfg := Default()
	applyEnv(cfg)
	return cfg
}

// LoadFile reads a YAML file over the defaults, then applies environment
// overrides. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = GetStringEnv("SERVER_ADDR", cfg.Server.Addr)
	cfg.Server.ReadTimeout = GetDurationEnv("SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = GetDurationEnv("SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.ShutdownTimeout = GetDurationEnv("SERVER_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)
	cfg.Server.MaxBodyBytes = int64(GetIntEnv("SERVER_MAX_BODY_BYTES", int(cfg.Server.MaxBodyBytes)))
	cfg.Server.EnableCORS = GetBoolEnv("SERVER_ENABLE_CORS", cfg.Server.EnableCORS)

	cfg.Sentiment.Backend = GetStringEnv("SENTIMENT_BACKEND", cfg.Sentiment.Backend)

	cfg.Topics.TopWords = GetIntEnv("TOPICS_TOP_WORDS", cfg.Topics.TopWords)
	cfg.Topics.Processes = GetIntEnv("TOPICS_PROCESSES", cfg.Topics.Processes)
	cfg.Topics.TransformationPasses = GetIntEnv("TOPICS_TRANSFORMATION_PASSES", cfg.Topics.TransformationPasses)

	cfg.LLM.Provider = GetStringEnv("LLM_PROVIDER", cfg.LLM.Provider)
	cfg.LLM.BaseURL = GetStringEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.Model = GetStringEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.APIKey = GetStringEnv("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Timeout = GetDurationEnv("LLM_TIMEOUT", cfg.LLM.Timeout)

	cfg.Log.Level = GetStringEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = GetStringEnv("LOG_FORMAT", cfg.Log.Format)
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
