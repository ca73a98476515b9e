package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// FeedbackType is a user's verdict on a set of search results
type FeedbackType string

const (
	FeedbackLike    FeedbackType = "like"
	FeedbackDislike FeedbackType = "dislike"
)

// MaxFeedbackCommentLength bounds the free-text comment, in characters
const MaxFeedbackCommentLength = 2000

// IsValid returns true if this is a known feedback type
func (t FeedbackType) IsValid() bool {
	switch t {
	case FeedbackLike, FeedbackDislike:
		return true
	default:
		return false
	}
}

// Feedback records a like or dislike on the results of a search term.
// SearchID optionally links the entry to a search log.
type Feedback struct {
	ID         string       `json:"feedback_id"`
	UserID     string       `json:"user_id"`
	Type       FeedbackType `json:"feedback_type"`
	Comment    string       `json:"comment,omitempty"`
	SearchTerm string       `json:"search_term"`
	SearchID   string       `json:"search_id,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Validate checks the fields a caller supplies
func (f *Feedback) Validate() error {
	if !f.Type.IsValid() {
		return fmt.Errorf("%w: feedback type must be either 'like' or 'dislike'", ErrInvalidInput)
	}
	if strings.TrimSpace(f.SearchTerm) == "" {
		return fmt.Errorf("%w: search term is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(f.Comment) > MaxFeedbackCommentLength {
		return fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, MaxFeedbackCommentLength)
	}
	return nil
}
