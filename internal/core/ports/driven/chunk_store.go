package driven

import (
	"context"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// ScoredChunk is a store row with the raw score of the query that returned it.
type ScoredChunk struct {
	Chunk *domain.ChunkRecord
	Score float64
}

// ChunkStore queries ingested pages (PostgreSQL with pgvector and full-text indexes).
// Rows are written by the ingestion pipeline; this port is read-only.
type ChunkStore interface {
	// SemanticSearch orders rows by cosine distance to the embedding, ascending.
	// Score is the distance.
	SemanticSearch(ctx context.Context, embedding []float32, filters domain.FacetFilters, limit int) ([]ScoredChunk, error)

	// KeywordSearch returns rows with a non-zero text rank for the query,
	// ordered by rank descending. Score is the rank.
	KeywordSearch(ctx context.Context, query string, filters domain.FacetFilters, limit int) ([]ScoredChunk, error)

	// Ping checks if the store is reachable
	Ping(ctx context.Context) error
}
