package ai

import (
	"errors"
	"testing"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

func TestFactory_CreateEmbeddingService(t *testing.T) {
	f := NewFactory()

	svc, err := f.CreateEmbeddingService(nil)
	if err != nil || svc != nil {
		t.Errorf("expected nil service for nil settings, got %v, %v", svc, err)
	}

	svc, err = f.CreateEmbeddingService(&domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI})
	if err != nil || svc != nil {
		t.Errorf("expected nil service without API key, got %v, %v", svc, err)
	}

	_, err = f.CreateEmbeddingService(&domain.EmbeddingSettings{Provider: "cohere", APIKey: "k"})
	if !errors.Is(err, domain.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}

	svc, err = f.CreateEmbeddingService(&domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI, APIKey: "sk"})
	if err != nil || svc == nil {
		t.Fatalf("expected service, got %v", err)
	}
}

func TestFactory_CreateOracle(t *testing.T) {
	f := NewFactory()

	o, err := f.CreateOracle(&domain.OracleSettings{})
	if err != nil || o != nil {
		t.Errorf("expected nil oracle for empty settings, got %v, %v", o, err)
	}

	_, err = f.CreateOracle(&domain.OracleSettings{Provider: "anthropic", APIKey: "k"})
	if !errors.Is(err, domain.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}

	o, err = f.CreateOracle(&domain.OracleSettings{Provider: domain.AIProviderOllama, Model: "llama3"})
	if err != nil || o == nil {
		t.Fatalf("expected oracle, got %v", err)
	}
	if o.Model() != "llama3" {
		t.Errorf("expected llama3, got %s", o.Model())
	}
}
