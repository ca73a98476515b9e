package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven/mocks"
)

func TestFeedbackService_Submit(t *testing.T) {
	store := mocks.NewMockFeedbackStore()
	svc := NewFeedbackService(store, nil)

	saved, err := svc.Submit(context.Background(), "user-1", &domain.Feedback{
		Type:       " like ",
		SearchTerm: "  maternal health ",
		Comment:    " useful ",
		UserID:     "someone-else",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(saved.ID)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", saved.UserID)
	assert.Equal(t, domain.FeedbackLike, saved.Type)
	assert.Equal(t, "maternal health", saved.SearchTerm)
	assert.Equal(t, "useful", saved.Comment)
	assert.False(t, saved.CreatedAt.IsZero())

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, saved.ID, entries[0].ID)
}

func TestFeedbackService_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		feedback *domain.Feedback
		wantErr  error
	}{
		{"no user", "", &domain.Feedback{Type: domain.FeedbackLike, SearchTerm: "x"}, domain.ErrUnauthorized},
		{"nil feedback", "user-1", nil, domain.ErrInvalidInput},
		{"bad type", "user-1", &domain.Feedback{Type: "love", SearchTerm: "x"}, domain.ErrInvalidInput},
		{"no search term", "user-1", &domain.Feedback{Type: domain.FeedbackDislike}, domain.ErrInvalidInput},
		{"bad search id", "user-1", &domain.Feedback{Type: domain.FeedbackLike, SearchTerm: "x", SearchID: "nope"}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockFeedbackStore()
			_, err := NewFeedbackService(store, nil).Submit(context.Background(), tt.userID, tt.feedback)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.Entries())
		})
	}
}

func TestFeedbackService_StoreError(t *testing.T) {
	store := mocks.NewMockFeedbackStore()
	store.SaveErr = errors.New("connection refused")

	_, err := NewFeedbackService(store, nil).Submit(context.Background(), "user-1",
		&domain.Feedback{Type: domain.FeedbackDislike, SearchTerm: "water"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.SaveErr)
}
