package domain

import (
	"testing"
)

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	if !AIProviderOpenAI.RequiresAPIKey() {
		t.Error("expected OpenAI to require an API key")
	}
	if AIProviderOllama.RequiresAPIKey() {
		t.Error("expected Ollama not to require an API key")
	}
}

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		provider AIProvider
		valid    bool
	}{
		{AIProviderOpenAI, true},
		{AIProviderOllama, true},
		{"cohere", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.provider.IsValid(); got != tt.valid {
			t.Errorf("%q.IsValid() = %v, want %v", tt.provider, got, tt.valid)
		}
	}
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings EmbeddingSettings
		expected bool
	}{
		{"empty", EmbeddingSettings{}, false},
		{"openai without key", EmbeddingSettings{Provider: AIProviderOpenAI}, false},
		{"openai with key", EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"}, true},
		{"ollama without key", EmbeddingSettings{Provider: AIProviderOllama, BaseURL: "http://localhost:11434/v1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.IsConfigured(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestOracleSettings_IsConfigured(t *testing.T) {
	if (&OracleSettings{}).IsConfigured() {
		t.Error("expected empty settings to be unconfigured")
	}
	if (&OracleSettings{Provider: AIProviderOpenAI}).IsConfigured() {
		t.Error("expected OpenAI without key to be unconfigured")
	}
	if !(&OracleSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"}).IsConfigured() {
		t.Error("expected OpenAI with key to be configured")
	}
}
