package driven

import (
	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// AIServiceFactory creates AI services based on configuration
type AIServiceFactory interface {
	// CreateEmbeddingService creates an embedding service from settings
	// Returns nil, nil if settings are not configured
	CreateEmbeddingService(settings *domain.EmbeddingSettings) (EmbeddingService, error)

	// CreateOracle creates a relevance oracle from settings
	// Returns nil, nil if settings are not configured
	CreateOracle(settings *domain.OracleSettings) (RelevanceOracle, error)
}
