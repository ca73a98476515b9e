package ai

import (
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434/v1"
	ollamaAPIKey         = "ollama" // Ollama ignores the key but the client requires one
	requestTimeout       = 60 * time.Second
)

// newClient builds an OpenAI-protocol client. Ollama serves the same API
// under /v1, so both providers share it.
func newClient(provider domain.AIProvider, apiKey, baseURL string) *openai.Client {
	if provider == domain.AIProviderOllama {
		if apiKey == "" {
			apiKey = ollamaAPIKey
		}
		if baseURL == "" {
			baseURL = defaultOllamaBaseURL
		}
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{Timeout: requestTimeout}
	return openai.NewClientWithConfig(config)
}
