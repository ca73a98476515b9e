package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.AccountStore = (*AccountStore)(nil)
	_ driven.APIKeyStore  = (*AccountStore)(nil)
)

// AccountStore reads the users and api_keys tables owned by the account service
type AccountStore struct {
	db *DB
}

// NewAccountStore creates a new AccountStore
func NewAccountStore(db *DB) *AccountStore {
	return &AccountStore{db: db}
}

// GetAccount retrieves the account for a user
func (s *AccountStore) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	query := `
		SELECT user_id, COALESCE(organization, ''), COALESCE(num_results_preference, 0)
		FROM users
		WHERE user_id = $1
	`

	var a domain.Account
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&a.UserID, &a.Organization, &a.NumResultsPreference)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAPIKey retrieves a key by its public ID
func (s *AccountStore) GetAPIKey(ctx context.Context, id string) (*domain.APIKey, error) {
	query := `
		SELECT id, user_id, secret_hash, revoked_at IS NOT NULL
		FROM api_keys
		WHERE id = $1
	`

	var k domain.APIKey
	err := s.db.QueryRowContext(ctx, query, id).Scan(&k.ID, &k.UserID, &k.SecretHash, &k.Revoked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}
