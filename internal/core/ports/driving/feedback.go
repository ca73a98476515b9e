package driving

import (
	"context"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// FeedbackService accepts likes and dislikes on search results
type FeedbackService interface {
	// Submit validates and records feedback from the authenticated user
	Submit(ctx context.Context, userID string, feedback *domain.Feedback) (*domain.Feedback, error)
}
