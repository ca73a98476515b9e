package mocks

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
)

// MockChunkStore is an in-memory ChunkStore for testing.
// Semantic search ranks by cosine distance when both vectors are present and
// by insertion order otherwise; keyword search ranks by query term hits.
type MockChunkStore struct {
	mu     sync.RWMutex
	chunks []*domain.ChunkRecord

	SemanticErr error
	KeywordErr  error
	PingErr     error

	semanticCalls int
	keywordCalls  int
}

// NewMockChunkStore creates a new MockChunkStore
func NewMockChunkStore(chunks ...*domain.ChunkRecord) *MockChunkStore {
	return &MockChunkStore{chunks: chunks}
}

// Add stores more chunks
func (m *MockChunkStore) Add(chunks ...*domain.ChunkRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = append(m.chunks, chunks...)
}

func (m *MockChunkStore) SemanticSearch(ctx context.Context, embedding []float32, filters domain.FacetFilters, limit int) ([]driven.ScoredChunk, error) {
	m.mu.Lock()
	m.semanticCalls++
	m.mu.Unlock()

	if m.SemanticErr != nil {
		return nil, m.SemanticErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []driven.ScoredChunk
	for i, c := range m.chunks {
		if !filters.Matches(c) {
			continue
		}
		distance := float64(i) / float64(len(m.chunks)+1)
		if len(c.Embedding) > 0 && len(c.Embedding) == len(embedding) {
			distance = cosineDistance(embedding, c.Embedding)
		}
		results = append(results, driven.ScoredChunk{Chunk: c, Score: distance})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	return truncate(results, limit), nil
}

func (m *MockChunkStore) KeywordSearch(ctx context.Context, query string, filters domain.FacetFilters, limit int) ([]driven.ScoredChunk, error) {
	m.mu.Lock()
	m.keywordCalls++
	m.mu.Unlock()

	if m.KeywordErr != nil {
		return nil, m.KeywordErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(query))
	var results []driven.ScoredChunk
	for _, c := range m.chunks {
		if !filters.Matches(c) {
			continue
		}
		text := strings.ToLower(c.ContextualizedText + " " + c.RawText)
		var hits int
		for _, term := range terms {
			hits += strings.Count(text, term)
		}
		if hits == 0 {
			continue
		}
		results = append(results, driven.ScoredChunk{Chunk: c, Score: float64(hits) / 10})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return truncate(results, limit), nil
}

func (m *MockChunkStore) Ping(ctx context.Context) error {
	return m.PingErr
}

// Helper methods for testing

// Calls returns how many semantic and keyword queries were issued
func (m *MockChunkStore) Calls() (semantic, keyword int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.semanticCalls, m.keywordCalls
}

func truncate(results []driven.ScoredChunk, limit int) []driven.ScoredChunk {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

func cosineDistance(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
