package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// MockOracle is a mock implementation of RelevanceOracle for testing.
// Without hooks it judges passages by lexical overlap with the query:
// the direct score is the share of query words found in the passage, scaled
// to 0-10, and keyphrases are the query words that occur verbatim.
type MockOracle struct {
	mu sync.Mutex

	ScoreFn     func(query, passage string) (domain.RelevanceJudgment, error)
	ExplainFn   func(query, passage string) (string, error)
	KeyphraseFn func(query, rawText, passageContext string) (string, error)

	scoreCalls     int
	explainCalls   int
	keyphraseCalls int
	passages       []string
}

// NewMockOracle creates a new MockOracle
func NewMockOracle() *MockOracle {
	return &MockOracle{}
}

func (m *MockOracle) Score(ctx context.Context, query, passage string) (domain.RelevanceJudgment, error) {
	m.mu.Lock()
	m.scoreCalls++
	m.passages = append(m.passages, passage)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.RelevanceJudgment{}, err
	}
	if m.ScoreFn != nil {
		return m.ScoreFn(query, passage)
	}

	direct := overlapScore(query, passage)
	return domain.RelevanceJudgment{ContextualScore: direct, DirectMatchScore: direct}, nil
}

func (m *MockOracle) Explain(ctx context.Context, query, passage string) (string, error) {
	m.mu.Lock()
	m.explainCalls++
	m.mu.Unlock()

	if m.ExplainFn != nil {
		return m.ExplainFn(query, passage)
	}
	if found := foundWords(query, passage); len(found) > 0 {
		return "Mentions " + strings.Join(found, " and ") + ".", nil
	}
	return "Discusses a related topic.", nil
}

func (m *MockOracle) ExtractKeyphrases(ctx context.Context, query, rawText, passageContext string) (string, error) {
	m.mu.Lock()
	m.keyphraseCalls++
	m.mu.Unlock()

	if m.KeyphraseFn != nil {
		return m.KeyphraseFn(query, rawText, passageContext)
	}

	var exact []string
	for _, w := range strings.Fields(query) {
		if strings.Contains(rawText, w) {
			exact = append(exact, w)
		}
	}
	if len(exact) == 0 {
		return driven.NoMatchSentinel, nil
	}
	return strings.Join(exact, ", "), nil
}

func (m *MockOracle) Model() string {
	return "mock-oracle"
}

func (m *MockOracle) Ping(ctx context.Context) error {
	return nil
}

func (m *MockOracle) Close() error {
	return nil
}

// Helper methods for testing

// Calls returns the number of score, explain and keyphrase calls
func (m *MockOracle) Calls() (score, explain, keyphrase int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoreCalls, m.explainCalls, m.keyphraseCalls
}

// ScoredPassages returns the passages sent for scoring, in call order
func (m *MockOracle) ScoredPassages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.passages))
	copy(out, m.passages)
	return out
}

func foundWords(query, passage string) []string {
	lower := strings.ToLower(passage)
	var found []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(lower, w) {
			found = append(found, w)
		}
	}
	return found
}

func overlapScore(query, passage string) int {
	words := strings.Fields(query)
	if len(words) == 0 {
		return 0
	}
	return len(foundWords(query, passage)) * domain.MaxScore / len(words)
}
