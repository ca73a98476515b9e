package postgres

import (
	"context"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore implements driven.FeedbackStore using PostgreSQL
type FeedbackStore struct {
	db *DB
}

// NewFeedbackStore creates a new FeedbackStore
func NewFeedbackStore(db *DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Save records a feedback entry
func (s *FeedbackStore) Save(ctx context.Context, feedback *domain.Feedback) error {
	query := `
		INSERT INTO feedback (id, user_id, feedback_type, comment, search_term, search_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		feedback.ID,
		feedback.UserID,
		string(feedback.Type),
		nullString(feedback.Comment),
		feedback.SearchTerm,
		nullString(feedback.SearchID),
		feedback.CreatedAt,
	)
	return err
}
