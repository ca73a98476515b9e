package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven/mocks"
)

func TestEnricher_Enrich(t *testing.T) {
	oracle := mocks.NewMockOracle()
	oracle.ExplainFn = func(query, passage string) (string, error) {
		return "Mentions antenatal care visits.", nil
	}
	oracle.KeyphraseFn = func(query, rawText, passageContext string) (string, error) {
		return "antenatal care, midwife", nil
	}

	m := match(1, 2, 7, 8)
	m.Candidate.Chunk.RawText = "Women reporting antenatal care in the last pregnancy."

	NewEnricher(EnricherConfig{}).Enrich(context.Background(), oracle, "antenatal", []*domain.ScoredMatch{m})

	assert.Equal(t, "Mentions antenatal care visits.", m.Explanation)
	assert.Equal(t, []string{"antenatal care"}, m.Keyphrases)
	assert.Equal(t, "antenatal care", m.HighlightTerm())
}

func TestEnricher_UsesRawTextSection(t *testing.T) {
	oracle := mocks.NewMockOracle()
	var gotRaw, gotContext string
	oracle.KeyphraseFn = func(query, rawText, passageContext string) (string, error) {
		gotRaw, gotContext = rawText, passageContext
		return driven.NoMatchSentinel, nil
	}

	m := match(1, 1, 5, 5)
	m.Candidate.Chunk.RawText = ""
	m.Candidate.Chunk.ContextualizedText = "CONTEXT: national survey\nRAW TEXT: Stunting prevalence by province."

	NewEnricher(EnricherConfig{}).Enrich(context.Background(), oracle, "stunting rates", []*domain.ScoredMatch{m})

	assert.Equal(t, "Stunting prevalence by province.", gotRaw)
	assert.Contains(t, gotContext, "CONTEXT:")
	assert.Equal(t, []string{"Stunting"}, m.Keyphrases)
}

func TestEnricher_OracleFailures(t *testing.T) {
	oracle := mocks.NewMockOracle()
	oracle.ExplainFn = func(string, string) (string, error) { return "", errors.New("503") }
	oracle.KeyphraseFn = func(string, string, string) (string, error) { return "", errors.New("503") }

	m := match(1, 1, 5, 5)
	m.Candidate.Chunk.RawText = "Access to clean water improved."

	NewEnricher(EnricherConfig{}).Enrich(context.Background(), oracle, "water access", []*domain.ScoredMatch{m})

	assert.Equal(t, fallbackExplanation, m.Explanation)
	assert.Equal(t, []string{"water", "Access"}, m.Keyphrases)
}

func TestEnricher_NilOracle(t *testing.T) {
	m := match(1, 1, 5, 5)
	m.Candidate.Chunk.RawText = "Literacy rates among adults rose."

	NewEnricher(EnricherConfig{}).Enrich(context.Background(), nil, "literacy", []*domain.ScoredMatch{m})

	assert.Equal(t, fallbackExplanation, m.Explanation)
	require.Len(t, m.Keyphrases, 1)
	assert.Equal(t, "Literacy", m.Keyphrases[0])
}

func TestEnricher_ManyMatches(t *testing.T) {
	oracle := mocks.NewMockOracle()
	var matches []*domain.ScoredMatch
	for i := 0; i < 30; i++ {
		m := match(int64(i), 1, 5, 5)
		m.Candidate.Chunk.RawText = strings.Repeat("immunization ", i%3+1)
		matches = append(matches, m)
	}

	NewEnricher(EnricherConfig{Concurrency: 5}).Enrich(context.Background(), oracle, "immunization", matches)

	_, explain, keyphrase := oracle.Calls()
	assert.Equal(t, 30, explain)
	assert.Equal(t, 30, keyphrase)
	for _, m := range matches {
		assert.Equal(t, []string{"immunization"}, m.Keyphrases)
		assert.NotEmpty(t, m.Explanation)
	}
}

func TestEnricher_ExplanationAndKeyphrasesOverlap(t *testing.T) {
	oracle := mocks.NewMockOracle()
	keyphraseStarted := make(chan struct{})
	oracle.KeyphraseFn = func(query, rawText, passageContext string) (string, error) {
		close(keyphraseStarted)
		return "antenatal", nil
	}
	oracle.ExplainFn = func(query, passage string) (string, error) {
		select {
		case <-keyphraseStarted:
			return "Mentions antenatal care visits.", nil
		case <-time.After(2 * time.Second):
			return "", errors.New("keyphrase request was not in flight")
		}
	}

	m := match(1, 1, 6, 6)
	m.Candidate.Chunk.RawText = "Women reporting antenatal care in the last pregnancy."

	NewEnricher(EnricherConfig{}).Enrich(context.Background(), oracle, "antenatal", []*domain.ScoredMatch{m})

	assert.Equal(t, "Mentions antenatal care visits.", m.Explanation)
	assert.Equal(t, []string{"antenatal"}, m.Keyphrases)
}
