package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
	"github.com/custodia-labs/survey-search/internal/core/ports/driving"
	"github.com/custodia-labs/survey-search/internal/runtime"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

const (
	noResultsMessage    = "No matching passages found."
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// searchService implements the SearchService interface
type searchService struct {
	services    *runtime.Services // Dynamic AI services
	retriever   *Retriever
	scorer      *Scorer
	enricher    *Enricher
	highlighter driving.HighlightService
	searchLogs  driven.SearchLogStore
	accounts    driven.AccountStore
	logger      *slog.Logger

	defaultMaxResults int
	concurrency       int
}

// SearchConfig holds configuration for the search service.
type SearchConfig struct {
	Store       driven.ChunkStore
	Services    *runtime.Services
	Highlighter driving.HighlightService // Optional: annotated copies per document
	SearchLogs  driven.SearchLogStore    // Optional: search history
	Accounts    driven.AccountStore      // Optional: per-user result size preference
	Logger      *slog.Logger

	FanOut        int           // Rows per retrieval method (default: 40)
	MaxResults    int           // Matches kept when neither request nor account sets it (default: 25)
	Concurrency   int           // Oracle calls in flight (default: 10)
	OracleTimeout time.Duration // Per oracle call (default: 20s)
	KeyphraseMode KeyphraseMode
}

// NewSearchService creates a new SearchService.
// AI services (embedding, oracle) are read from runtime.Services on every
// request so they can be swapped while running.
func NewSearchService(cfg SearchConfig) driving.SearchService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultOracleConcurrency
	}

	return &searchService{
		services:    cfg.Services,
		retriever:   NewRetriever(cfg.Store, cfg.FanOut, logger),
		scorer:      NewScorer(ScorerConfig{Concurrency: concurrency, Timeout: cfg.OracleTimeout, Logger: logger}),
		enricher:    NewEnricher(EnricherConfig{Concurrency: concurrency, Timeout: cfg.OracleTimeout, Mode: cfg.KeyphraseMode, Logger: logger}),
		highlighter: cfg.Highlighter,
		searchLogs:  cfg.SearchLogs,
		accounts:    cfg.Accounts,
		logger:      logger,

		defaultMaxResults: domain.NormalizeMaxResults(cfg.MaxResults, domain.DefaultMaxResults),
		concurrency:       concurrency,
	}
}

// Search runs the full pipeline for one query.
func (s *searchService) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error) {
	start := time.Now()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}

	embedder := s.services.EmbeddingService()
	if !s.services.Config().CanSearch() || embedder == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbedding, domain.ErrServiceUnavailable)
	}
	embedding, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
	}

	candidates, err := s.retriever.Retrieve(ctx, query, embedding, opts.Filters)
	if err != nil {
		s.logger.Error("retrieval failed", "query", query, "error", err)
		return nil, err
	}

	result := &domain.SearchResult{
		ID:        uuid.New().String(),
		Query:     query,
		Documents: []*domain.DocumentResult{},
	}

	if len(candidates) == 0 {
		result.Message = noResultsMessage
		result.Took = time.Since(start)
		s.saveLog(ctx, opts.UserID, result)
		return result, nil
	}

	oracle := s.services.Oracle()

	matches := s.scorer.Score(ctx, oracle, query, candidates)
	matches = TruncateMatches(RankMatches(matches), s.maxResults(ctx, opts))
	s.enricher.Enrich(ctx, oracle, query, matches)

	docs := OrderDocuments(GroupByDocument(matches))
	if opts.Highlight && s.highlighter != nil {
		s.highlight(ctx, docs)
	}

	result.Documents = docs
	result.MatchCount = len(matches)
	result.Took = time.Since(start)

	s.logger.Info("search completed",
		"query", query,
		"candidates", len(candidates),
		"matches", len(matches),
		"documents", len(docs),
		"duration", result.Took,
	)

	s.saveLog(ctx, opts.UserID, result)
	return result, nil
}

// History returns the most recent searches of a user.
func (s *searchService) History(ctx context.Context, userID string, limit int) ([]*domain.SearchLog, error) {
	if s.searchLogs == nil {
		return nil, domain.ErrServiceUnavailable
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.searchLogs.ListByUser(ctx, userID, limit)
}

// Capabilities reports the runtime capability flags.
func (s *searchService) Capabilities() domain.Capabilities {
	return s.services.Config().Capabilities()
}

// maxResults resolves the result size: request, then account preference,
// then the service default.
func (s *searchService) maxResults(ctx context.Context, opts domain.SearchOptions) int {
	if opts.MaxResults > 0 {
		return domain.NormalizeMaxResults(opts.MaxResults, s.defaultMaxResults)
	}
	if s.accounts != nil && opts.UserID != "" {
		account, err := s.accounts.GetAccount(ctx, opts.UserID)
		switch {
		case err == nil && account.NumResultsPreference > 0:
			return domain.NormalizeMaxResults(account.NumResultsPreference, s.defaultMaxResults)
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			s.logger.Warn("failed to load account preference", "user_id", opts.UserID, "error", err)
		}
	}
	return s.defaultMaxResults
}

// highlight renders an annotated copy for every document with a source URL.
// A failed render is recorded on its document only.
func (s *searchService) highlight(ctx context.Context, docs []*domain.DocumentResult) {
	err := fanOut(ctx, len(docs), s.concurrency, func(ctx context.Context, i int) {
		doc := docs[i]
		if doc.Metadata.SourceURL == "" {
			return
		}
		req := domain.HighlightRequest{
			SourceURL:    doc.Metadata.SourceURL,
			FallbackTerm: doc.Matches[0].HighlightTerm(),
			PageKeywords: doc.PageKeywords(),
		}
		url, err := s.highlighter.GetHighlighted(ctx, req)
		if err != nil {
			s.logger.Warn("highlight render failed",
				"document_id", doc.Metadata.DocumentID,
				"source_url", doc.Metadata.SourceURL,
				"error", err,
			)
			doc.HighlightError = err.Error()
			return
		}
		doc.HighlightedURL = url
	})
	if err != nil {
		s.logger.Error("highlight pool unavailable", "error", err)
	}
}

func (s *searchService) saveLog(ctx context.Context, userID string, result *domain.SearchResult) {
	if s.searchLogs == nil {
		return
	}
	response, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("failed to encode search log", "query", result.Query, "error", err)
		return
	}
	entry := &domain.SearchLog{
		ID:        result.ID,
		UserID:    userID,
		Query:     result.Query,
		Response:  response,
		CreatedAt: time.Now(),
	}
	if err := s.searchLogs.Save(ctx, entry); err != nil {
		s.logger.Warn("failed to save search log", "query", result.Query, "error", err)
	}
}
