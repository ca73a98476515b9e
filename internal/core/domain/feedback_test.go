package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestFeedbackType_IsValid(t *testing.T) {
	tests := []struct {
		t        FeedbackType
		expected bool
	}{
		{FeedbackLike, true},
		{FeedbackDislike, true},
		{"Like", false},
		{"meh", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.t.IsValid(); got != tt.expected {
			t.Errorf("%q: expected %v, got %v", tt.t, tt.expected, got)
		}
	}
}

func TestFeedback_Validate(t *testing.T) {
	tests := []struct {
		name     string
		feedback Feedback
		wantErr  bool
	}{
		{"like", Feedback{Type: FeedbackLike, SearchTerm: "maternal health"}, false},
		{"dislike with comment", Feedback{Type: FeedbackDislike, SearchTerm: "water", Comment: "off topic"}, false},
		{"unknown type", Feedback{Type: "love", SearchTerm: "water"}, true},
		{"missing type", Feedback{SearchTerm: "water"}, true},
		{"blank search term", Feedback{Type: FeedbackLike, SearchTerm: "  "}, true},
		{"comment too long", Feedback{Type: FeedbackLike, SearchTerm: "water", Comment: strings.Repeat("x", MaxFeedbackCommentLength+1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.feedback.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
