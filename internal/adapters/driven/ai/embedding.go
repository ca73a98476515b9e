package ai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// Ensure Embedding implements EmbeddingService
var _ driven.EmbeddingService = (*Embedding)(nil)

// Embedding implements EmbeddingService over the OpenAI embeddings API
type Embedding struct {
	client     *openai.Client
	model      string
	dimensions int
}

// Default dimensions of known embedding models
var modelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
	"nomic-embed-text":       768,
	"mxbai-embed-large":      1024,
	"bge-m3":                 1024,
}

const defaultEmbeddingModel = "text-embedding-3-small"

// NewEmbedding creates an embedding service for the given provider settings.
func NewEmbedding(settings *domain.EmbeddingSettings) (*Embedding, error) {
	if settings.Provider.RequiresAPIKey() && settings.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", settings.Provider)
	}

	model := settings.Model
	if model == "" {
		model = defaultEmbeddingModel
	}
	dimensions, ok := modelDimensions[model]
	if !ok {
		dimensions = 1024
	}

	return &Embedding{
		client:     newClient(settings.Provider, settings.APIKey, settings.BaseURL),
		model:      model,
		dimensions: dimensions,
	}, nil
}

// EmbedQuery generates an embedding for a search query
func (e *Embedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{query},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}
	return resp.Data[0].Embedding, nil
}

// Dimensions returns the embedding dimension size
func (e *Embedding) Dimensions() int {
	return e.dimensions
}

// Model returns the model name being used
func (e *Embedding) Model() string {
	return e.model
}

// HealthCheck embeds a short string to verify connectivity
func (e *Embedding) HealthCheck(ctx context.Context) error {
	_, err := e.EmbedQuery(ctx, "health check")
	return err
}

// Close is a no-op; the client holds no resources beyond idle connections
func (e *Embedding) Close() error {
	return nil
}
