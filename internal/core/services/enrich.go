package services

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// Enricher adds an explanation and highlight keyphrases to ranked matches.
type Enricher struct {
	concurrency int
	timeout     time.Duration
	mode        KeyphraseMode
	logger      *slog.Logger
}

// EnricherConfig holds configuration for the enricher.
type EnricherConfig struct {
	Concurrency int           // Matches enriched in parallel (default: 10)
	Timeout     time.Duration // Per oracle call (default: 20s)
	Mode        KeyphraseMode
	Logger      *slog.Logger
}

// NewEnricher creates a new enricher.
func NewEnricher(cfg EnricherConfig) *Enricher {
	e := &Enricher{
		concurrency: cfg.Concurrency,
		timeout:     cfg.Timeout,
		mode:        cfg.Mode,
		logger:      cfg.Logger,
	}
	if e.concurrency <= 0 {
		e.concurrency = DefaultOracleConcurrency
	}
	if e.timeout <= 0 {
		e.timeout = DefaultOracleTimeout
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Enrich fills Explanation and Keyphrases on every match. It never fails:
// a nil oracle or an oracle error falls back deterministically.
func (e *Enricher) Enrich(ctx context.Context, oracle driven.RelevanceOracle, query string, matches []*domain.ScoredMatch) {
	err := fanOut(ctx, len(matches), e.concurrency, func(ctx context.Context, i int) {
		e.enrichOne(ctx, oracle, query, matches[i])
	})
	if err != nil {
		e.logger.Error("enrichment pool unavailable", "query", query, "error", err)
		for _, m := range matches {
			e.enrichOne(ctx, oracle, query, m)
		}
	}
}

func (e *Enricher) enrichOne(ctx context.Context, oracle driven.RelevanceOracle, query string, m *domain.ScoredMatch) {
	chunk := m.Candidate.Chunk
	rawText := chunk.HighlightText()

	if oracle == nil {
		m.Explanation = fallbackExplanation
		m.Keyphrases = SelectKeyphrases("", domain.ErrServiceUnavailable, query, rawText, e.mode)
		return
	}

	var g errgroup.Group
	g.Go(func() error {
		explainCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()
		explanation, err := oracle.Explain(explainCtx, query, TruncateRunes(passageText(chunk), MaxPassageRunes))
		if err != nil {
			e.logger.Warn("explanation failed",
				"query", query,
				"document_id", chunk.DocumentID,
				"page", chunk.PageNumber,
				"error", err,
			)
		}
		m.Explanation = CleanExplanation(explanation, query, err)
		return nil
	})
	g.Go(func() error {
		kwCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()
		answer, err := oracle.ExtractKeyphrases(kwCtx, query, rawText, chunk.ContextualizedText)
		if err != nil {
			e.logger.Warn("keyphrase extraction failed",
				"query", query,
				"document_id", chunk.DocumentID,
				"page", chunk.PageNumber,
				"error", err,
			)
		}
		m.Keyphrases = SelectKeyphrases(answer, err, query, rawText, e.mode)
		return nil
	})
	_ = g.Wait()
}
