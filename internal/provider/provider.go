package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// LLMProvider defines the interface for AI model integration
type LLMProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	BaseURL  string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// New builds the provider named in cfg. Unknown names fall back to Ollama.
func New(cfg Config) LLMProvider {
	client := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Provider {
	case "openai":
		p := NewOpenAIProvider(cfg.BaseURL, cfg.Model, cfg.APIKey)
		p.Client = client
		return p
	default:
		p := NewOllamaProvider(cfg.BaseURL, cfg.Model)
		p.Client = client
		return p
	}
}

// statusError reads a short excerpt of a failed response body.
func statusError(name string, resp *http.Response) error {
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(excerpt))
	if msg == "" {
		return fmt.Errorf("%s returned status: %d", name, resp.StatusCode)
	}
	return fmt.Errorf("%s returned status: %d: %s", name, resp.StatusCode, msg)
}
