package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// Retriever runs the semantic and keyword queries for a search.
type Retriever struct {
	store  driven.ChunkStore
	fanOut int
	logger *slog.Logger
}

// NewRetriever creates a retriever returning at most fanOut rows per method.
func NewRetriever(store driven.ChunkStore, fanOut int, logger *slog.Logger) *Retriever {
	if fanOut <= 0 {
		fanOut = domain.DefaultFanOut
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{store: store, fanOut: fanOut, logger: logger}
}

// Retrieve issues both queries concurrently and merges their results.
// Failure of either query fails the whole retrieval.
func (r *Retriever) Retrieve(ctx context.Context, query string, embedding []float32, filters domain.FacetFilters) ([]*domain.SearchCandidate, error) {
	var semantic, keyword []driven.ScoredChunk

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := r.store.SemanticSearch(gctx, embedding, filters, r.fanOut)
		if err != nil {
			return fmt.Errorf("semantic search: %w", err)
		}
		semantic = rows
		return nil
	})
	g.Go(func() error {
		rows, err := r.store.KeywordSearch(gctx, query, filters, r.fanOut)
		if err != nil {
			return fmt.Errorf("keyword search: %w", err)
		}
		keyword = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRetrieval, err)
	}

	merged := MergeCandidates(semantic, keyword)
	r.logger.Debug("candidates retrieved",
		"query", query,
		"semantic", len(semantic),
		"keyword", len(keyword),
		"merged", len(merged),
	)
	return merged, nil
}

// MergeCandidates unions the semantic list then the keyword list, keeping the
// first occurrence of each (document, page). A passage surfaced by both
// queries keeps its semantic position and records both scores.
func MergeCandidates(semantic, keyword []driven.ScoredChunk) []*domain.SearchCandidate {
	index := make(map[domain.PassageKey]int, len(semantic)+len(keyword))
	merged := make([]*domain.SearchCandidate, 0, len(semantic)+len(keyword))

	add := func(rows []driven.ScoredChunk, method domain.RetrievalMethod) {
		for _, row := range rows {
			if row.Chunk == nil {
				continue
			}
			key := row.Chunk.Key()
			if i, ok := index[key]; ok {
				if _, seen := merged[i].Scores[method]; !seen {
					merged[i].Scores[method] = row.Score
				}
				continue
			}
			c := domain.NewCandidate(row.Chunk, method, row.Score)
			c.MergeOrder = len(merged)
			index[key] = c.MergeOrder
			merged = append(merged, c)
		}
	}
	add(semantic, domain.RetrievalSemantic)
	add(keyword, domain.RetrievalKeyword)

	return merged
}
