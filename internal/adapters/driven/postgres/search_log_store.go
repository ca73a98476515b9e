package postgres

import (
	"context"
	"database/sql"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SearchLogStore = (*SearchLogStore)(nil)

// SearchLogStore implements driven.SearchLogStore using PostgreSQL
type SearchLogStore struct {
	db *DB
}

// NewSearchLogStore creates a new SearchLogStore
func NewSearchLogStore(db *DB) *SearchLogStore {
	return &SearchLogStore{db: db}
}

// Save records a search log entry
func (s *SearchLogStore) Save(ctx context.Context, entry *domain.SearchLog) error {
	query := `
		INSERT INTO search_logs (id, user_id, query, search_response, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		nullString(entry.UserID),
		entry.Query,
		[]byte(entry.Response),
		entry.CreatedAt,
	)
	return err
}

// ListByUser returns the most recent entries for a user
func (s *SearchLogStore) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.SearchLog, error) {
	query := `
		SELECT id, user_id, query, search_response, created_at
		FROM search_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.SearchLog
	for rows.Next() {
		var e domain.SearchLog
		var user sql.NullString
		var response []byte
		if err := rows.Scan(&e.ID, &user, &e.Query, &response, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.UserID = user.String
		e.Response = response
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
