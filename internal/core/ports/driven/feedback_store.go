package driven

import (
	"context"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// FeedbackStore records result feedback (PostgreSQL)
type FeedbackStore interface {
	// Save records a feedback entry
	Save(ctx context.Context, feedback *domain.Feedback) error
}
