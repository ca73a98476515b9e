package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

const (
	// MaxPassageRunes is the longest passage sent to the oracle.
	MaxPassageRunes = 1000

	// DefaultOracleTimeout bounds a single oracle call.
	DefaultOracleTimeout = 20 * time.Second
)

// Scorer asks the relevance oracle to judge every candidate.
type Scorer struct {
	concurrency int
	timeout     time.Duration
	logger      *slog.Logger
}

// ScorerConfig holds configuration for the scorer.
type ScorerConfig struct {
	Concurrency int           // Oracle calls in flight (default: 10)
	Timeout     time.Duration // Per-call deadline (default: 20s)
	Logger      *slog.Logger
}

// NewScorer creates a new scorer.
func NewScorer(cfg ScorerConfig) *Scorer {
	s := &Scorer{
		concurrency: cfg.Concurrency,
		timeout:     cfg.Timeout,
		logger:      cfg.Logger,
	}
	if s.concurrency <= 0 {
		s.concurrency = DefaultOracleConcurrency
	}
	if s.timeout <= 0 {
		s.timeout = DefaultOracleTimeout
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Score judges each candidate. The i-th match always belongs to the i-th
// candidate. Any oracle failure, or a nil oracle, yields neutral scores for
// that candidate only.
func (s *Scorer) Score(ctx context.Context, oracle driven.RelevanceOracle, query string, candidates []*domain.SearchCandidate) []*domain.ScoredMatch {
	matches := make([]*domain.ScoredMatch, len(candidates))

	if oracle == nil {
		for i, c := range candidates {
			matches[i] = neutralMatch(c)
		}
		return matches
	}

	err := fanOut(ctx, len(candidates), s.concurrency, func(ctx context.Context, i int) {
		c := candidates[i]
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		judgment, err := oracle.Score(callCtx, query, TruncateRunes(passageText(c.Chunk), MaxPassageRunes))
		if err != nil {
			s.logger.Warn("relevance scoring failed, using neutral scores",
				"query", query,
				"document_id", c.Chunk.DocumentID,
				"page", c.Chunk.PageNumber,
				"error", err,
			)
			matches[i] = neutralMatch(c)
			return
		}
		matches[i] = domain.NewScoredMatch(c, judgment)
	})
	if err != nil {
		s.logger.Error("scoring pool unavailable", "query", query, "error", err)
	}

	for i, m := range matches {
		if m == nil {
			matches[i] = neutralMatch(candidates[i])
		}
	}
	return matches
}

func neutralMatch(c *domain.SearchCandidate) *domain.ScoredMatch {
	m := domain.NewScoredMatch(c, domain.NeutralJudgment())
	m.Fallback = true
	return m
}

func passageText(c *domain.ChunkRecord) string {
	if c.ContextualizedText != "" {
		return c.ContextualizedText
	}
	return c.RawText
}

// TruncateRunes cuts s to at most n characters without splitting a rune.
func TruncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
