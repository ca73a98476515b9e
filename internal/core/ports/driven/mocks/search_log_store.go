package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// MockSearchLogStore is a mock implementation of SearchLogStore for testing
type MockSearchLogStore struct {
	mu      sync.RWMutex
	entries []*domain.SearchLog

	SaveErr error
}

// NewMockSearchLogStore creates a new MockSearchLogStore
func NewMockSearchLogStore() *MockSearchLogStore {
	return &MockSearchLogStore{}
}

func (m *MockSearchLogStore) Save(ctx context.Context, entry *domain.SearchLog) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockSearchLogStore) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.SearchLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.SearchLog
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Entries returns every saved entry
func (m *MockSearchLogStore) Entries() []*domain.SearchLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.SearchLog, len(m.entries))
	copy(out, m.entries)
	return out
}

// MockAccountStore is a mock implementation of AccountStore for testing
type MockAccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	Err error
}

// NewMockAccountStore creates a new MockAccountStore
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{accounts: make(map[string]*domain.Account)}
}

// Put stores an account
func (m *MockAccountStore) Put(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.UserID] = account
}

func (m *MockAccountStore) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// MockAPIKeyStore is a mock implementation of APIKeyStore for testing
type MockAPIKeyStore struct {
	mu   sync.RWMutex
	keys map[string]*domain.APIKey
}

// NewMockAPIKeyStore creates a new MockAPIKeyStore
func NewMockAPIKeyStore() *MockAPIKeyStore {
	return &MockAPIKeyStore{keys: make(map[string]*domain.APIKey)}
}

// Put stores a key
func (m *MockAPIKeyStore) Put(key *domain.APIKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key.ID] = key
}

func (m *MockAPIKeyStore) GetAPIKey(ctx context.Context, id string) (*domain.APIKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	k, ok := m.keys[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return k, nil
}

// MockAuthAdapter accepts tokens registered with AddToken and compares
// secrets to hashes in plain text
type MockAuthAdapter struct {
	mu     sync.RWMutex
	tokens map[string]*domain.TokenClaims
}

// NewMockAuthAdapter creates a new MockAuthAdapter
func NewMockAuthAdapter() *MockAuthAdapter {
	return &MockAuthAdapter{tokens: make(map[string]*domain.TokenClaims)}
}

// AddToken registers a valid token
func (m *MockAuthAdapter) AddToken(token string, claims *domain.TokenClaims) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = claims
}

func (m *MockAuthAdapter) ParseToken(token string) (*domain.TokenClaims, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	if c.ExpiresAt != 0 && c.ExpiresAt < time.Now().Unix() {
		return nil, domain.ErrTokenExpired
	}
	return c, nil
}

func (m *MockAuthAdapter) VerifySecret(secret, hash string) bool {
	return secret == hash
}
