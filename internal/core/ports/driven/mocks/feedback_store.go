package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// MockFeedbackStore is a mock implementation of FeedbackStore for testing
type MockFeedbackStore struct {
	mu      sync.RWMutex
	entries []*domain.Feedback

	SaveErr error
}

// NewMockFeedbackStore creates a new MockFeedbackStore
func NewMockFeedbackStore() *MockFeedbackStore {
	return &MockFeedbackStore{}
}

func (m *MockFeedbackStore) Save(ctx context.Context, feedback *domain.Feedback) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, feedback)
	return nil
}

// Entries returns every saved entry
func (m *MockFeedbackStore) Entries() []*domain.Feedback {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Feedback, len(m.entries))
	copy(out, m.entries)
	return out
}
