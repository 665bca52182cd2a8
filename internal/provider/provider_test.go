package provider_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textinsight/backend/internal/provider"
)

type MockTransport struct {
	Response *http.Response
	Err      error
}

func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Response, m.Err
}

func TestOllamaGenerate(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"response": "0.6"}`))
	}))
	defer srv.Close()

	p := provider.NewOllamaProvider(srv.URL, "llama2")

	ans, err := p.Generate(context.Background(), "Rate this")
	assert.NoError(t, err)
	assert.Equal(t, "0.6", ans)
	assert.Equal(t, "llama2", got["model"])
	assert.Equal(t, "Rate this", got["prompt"])
	assert.Equal(t, false, got["stream"])
}

func TestOpenAIGenerate(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{"choices": [{"message": {"content": "-0.4"}}]}`))
	}))
	defer srv.Close()

	p := provider.NewOpenAIProvider(srv.URL, "gpt-4o-mini", "sk-fake")

	ans, err := p.Generate(context.Background(), "Rate this")
	assert.NoError(t, err)
	assert.Equal(t, "-0.4", ans)
	assert.Equal(t, "Bearer sk-fake", auth)
}

func TestOpenAINoChoices(t *testing.T) {
	p := provider.NewOpenAIProvider("http://mock-openai/v1/chat/completions", "gpt-4o-mini", "")
	p.Client = &http.Client{Transport: &MockTransport{
		Response: &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(`{"choices": []}`)),
		},
	}}

	_, err := p.Generate(context.Background(), "Rate this")
	assert.EqualError(t, err, "no choices returned from openai")
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := provider.NewOllamaProvider(srv.URL, "missing").Generate(context.Background(), "x")
	assert.EqualError(t, err, "ollama returned status: 404: model not found")
}

func TestProviderFactory(t *testing.T) {
	p1 := provider.New(provider.Config{Provider: "ollama", Model: "llama2", Timeout: time.Second})
	assert.Equal(t, "ollama", p1.Name())
	assert.Equal(t, time.Second, p1.(*provider.OllamaProvider).Client.Timeout)

	p2 := provider.New(provider.Config{Provider: "openai", Model: "gpt-4", APIKey: "key"})
	assert.Equal(t, "openai", p2.Name())
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", p2.(*provider.OpenAIProvider).BaseURL)

	p3 := provider.New(provider.Config{Provider: "unknown"})
	assert.Equal(t, "ollama", p3.Name())
}
