package domain

import (
	"encoding/json"
	"time"
)

// SearchLog records a completed search and the response that was returned.
type SearchLog struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Query     string          `json:"query"`
	Response  json.RawMessage `json:"response"`
	CreatedAt time.Time       `json:"created_at"`
}
