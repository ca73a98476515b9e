package driving

import (
	"context"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// SearchService runs the hybrid retrieval and ranking pipeline
type SearchService interface {
	// Search retrieves, scores, ranks, explains and highlights passages for a query
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error)

	// History returns the most recent searches of a user
	History(ctx context.Context, userID string, limit int) ([]*domain.SearchLog, error)

	// Capabilities reports which AI services are available right now
	Capabilities() domain.Capabilities
}
