package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textinsight/backend/internal/config"
)

var envKeys = []string{
	"SERVER_ADDR", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
	"SERVER_MAX_BODY_BYTES", "SERVER_ENABLE_CORS", "SENTIMENT_BACKEND",
	"TOPICS_TOP_WORDS", "TOPICS_PROCESSES", "TOPICS_TRANSFORMATION_PASSES",
	"LLM_PROVIDER", "LLM_BASE_URL", "LLM_MODEL", "LLM_API_KEY", "LLM_TIMEOUT",
	"LOG_LEVEL", "LOG_FORMAT",
}

func clearEnvVars(t *testing.T) {
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	clearEnvVars(t)

	cfg := config.Load()

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, int64(50<<20), cfg.Server.MaxBodyBytes)
	assert.True(t, cfg.Server.EnableCORS)
	assert.Equal(t, "lexicon", cfg.Sentiment.Backend)
	assert.Equal(t, 10, cfg.Topics.TopWords)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("SERVER_ENABLE_CORS", "false")
	t.Setenv("SENTIMENT_BACKEND", "openai")
	t.Setenv("TOPICS_PROCESSES", "4")
	t.Setenv("LLM_API_KEY", "secret123")
	t.Setenv("LOG_FORMAT", "json")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Server.EnableCORS)
	assert.Equal(t, "openai", cfg.Sentiment.Backend)
	assert.Equal(t, 4, cfg.Topics.Processes)
	assert.Equal(t, "secret123", cfg.LLM.APIKey)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestInvalidEnvFallsBackToDefault(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("TOPICS_TOP_WORDS", "lots")
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("SERVER_ENABLE_CORS", "maybe")

	cfg := config.Load()

	assert.Equal(t, 10, cfg.Topics.TopWords)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.Server.EnableCORS)
}

func TestLoadFileOverlaysYAMLThenEnv(t *testing.T) {
	clearEnvVars(t)
	path := filepath.Join(t.TempDir(), "textinsight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":4000"
  write_timeout: 2m
sentiment:
  backend: ollama
llm:
  model: mistral
`), 0644))
	t.Setenv("LLM_MODEL", "phi3")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, "ollama", cfg.Sentiment.Backend)
	assert.Equal(t, "phi3", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
}

func TestLoadFileMissingIsDefault(t *testing.T) {
	clearEnvVars(t)

	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))

	_, err := config.LoadFile(path)
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnvVars(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })
	os.Unsetenv("LOG_LEVEL")

	config.LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "debug", config.Load().Log.Level)
}
