package driven

import (
	"context"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// SearchLogStore records completed searches (PostgreSQL)
type SearchLogStore interface {
	// Save records a search log entry
	Save(ctx context.Context, entry *domain.SearchLog) error

	// ListByUser returns the most recent entries for a user
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.SearchLog, error)
}

// AccountStore reads account preferences owned by the account service (PostgreSQL)
type AccountStore interface {
	// GetAccount retrieves the account for a user
	GetAccount(ctx context.Context, userID string) (*domain.Account, error)
}
