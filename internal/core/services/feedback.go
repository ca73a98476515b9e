package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
	"github.com/custodia-labs/survey-search/internal/core/ports/driving"
)

// Ensure feedbackService implements FeedbackService
var _ driving.FeedbackService = (*feedbackService)(nil)

// feedbackService implements the FeedbackService interface
type feedbackService struct {
	store  driven.FeedbackStore
	logger *slog.Logger
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(store driven.FeedbackStore, logger *slog.Logger) driving.FeedbackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &feedbackService{store: store, logger: logger}
}

// Submit records feedback for userID. ID and creation time are assigned here.
func (s *feedbackService) Submit(ctx context.Context, userID string, feedback *domain.Feedback) (*domain.Feedback, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if feedback == nil {
		return nil, fmt.Errorf("%w: feedback is required", domain.ErrInvalidInput)
	}

	entry := *feedback
	entry.Type = domain.FeedbackType(strings.TrimSpace(string(entry.Type)))
	entry.SearchTerm = strings.TrimSpace(entry.SearchTerm)
	entry.Comment = strings.TrimSpace(entry.Comment)
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if entry.SearchID != "" {
		if _, err := uuid.Parse(entry.SearchID); err != nil {
			return nil, fmt.Errorf("%w: search_id is not a valid id", domain.ErrInvalidInput)
		}
	}

	entry.ID = uuid.New().String()
	entry.UserID = userID
	entry.CreatedAt = time.Now()

	if err := s.store.Save(ctx, &entry); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}

	s.logger.Info("feedback submitted",
		"user_id", userID,
		"feedback_type", entry.Type,
		"search_term", entry.SearchTerm,
	)
	return &entry, nil
}
