package main

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/custodia-labs/survey-search/internal/adapters/driven/ai"
	"github.com/custodia-labs/survey-search/internal/adapters/driven/auth"
	"github.com/custodia-labs/survey-search/internal/adapters/driven/pdf"
	"github.com/custodia-labs/survey-search/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/survey-search/internal/adapters/driven/redis"
	"github.com/custodia-labs/survey-search/internal/adapters/driven/storage"
	"github.com/custodia-labs/survey-search/internal/config"
	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
	"github.com/custodia-labs/survey-search/internal/core/ports/driving"
	"github.com/custodia-labs/survey-search/internal/core/services"
	"github.com/custodia-labs/survey-search/internal/runtime"
)

// app holds the wired services and the resources they own
type app struct {
	db          *postgres.DB
	redisClient *goredis.Client
	lock        driven.DistributedLock
	runtime     *runtime.Services

	auth      driving.AuthService
	search    driving.SearchService
	highlight driving.HighlightService
	feedback  driving.FeedbackService
}

// newApp connects infrastructure and builds the service graph
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{}

	logger.Info("connecting to postgres")
	db, err := postgres.Connect(ctx, postgres.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	a.db = db
	if cfg.InitSchema {
		if err := db.InitSchema(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("init schema: %w", err)
		}
	}

	switch cfg.LockBackend() {
	case "redis":
		logger.Info("connecting to redis")
		client, err := redisadapter.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redisClient = client
		a.lock = redisadapter.NewLock(client)
	default:
		a.lock = postgres.NewAdvisoryLock(db)
	}

	// AI services
	a.runtime = runtime.NewServices(domain.NewRuntimeConfig(cfg.LockBackend()))
	if err := a.configureAI(ctx, cfg, logger); err != nil {
		a.Close()
		return nil, err
	}

	// Stores
	chunkStore := postgres.NewChunkStore(db)
	accountStore := postgres.NewAccountStore(db)
	searchLogStore := postgres.NewSearchLogStore(db)

	highlightStore, err := storage.NewFileStore(cfg.HighlightDir, cfg.HighlightURLPrefix)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.highlight = services.NewHighlightService(services.HighlightConfig{
		Fetcher: storage.NewHTTPFetcher(storage.FetcherConfig{
			Timeout:              cfg.FetchTimeout,
			MaxBytes:             cfg.HighlightMaxBytes,
			AllowedHosts:         cfg.SourceHosts,
			AllowPrivateNetworks: cfg.AllowPrivateSources,
		}),
		Annotator: pdf.NewAnnotator(logger),
		Store:     highlightStore,
		Lock:      a.lock,
		Logger:    logger,
		LockTTL:   cfg.LockTTL,
		LockWait:  cfg.LockWait,
	})

	a.search = services.NewSearchService(services.SearchConfig{
		Store:         chunkStore,
		Services:      a.runtime,
		Highlighter:   a.highlight,
		SearchLogs:    searchLogStore,
		Accounts:      accountStore,
		Logger:        logger,
		FanOut:        cfg.FanOut,
		MaxResults:    cfg.MaxResults,
		Concurrency:   cfg.OracleConcurrency,
		OracleTimeout: cfg.OracleTimeout,
		KeyphraseMode: services.ParseKeyphraseMode(cfg.KeyphraseMode),
	})

	a.feedback = services.NewFeedbackService(postgres.NewFeedbackStore(db), logger)
	a.auth = services.NewAuthService(auth.NewAdapter(cfg.JWTSecret), accountStore)

	caps := a.search.Capabilities()
	logger.Info("runtime capabilities",
		"search", caps.Search,
		"oracle", caps.Oracle,
		"lock_backend", caps.LockBackend,
	)
	return a, nil
}

// configureAI creates the embedding service and oracle. A missing oracle
// only degrades scoring; a missing embedder makes search unavailable.
func (a *app) configureAI(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	factory := ai.NewFactory()
	provider := domain.AIProvider(cfg.AIProvider)

	embedder, err := factory.CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: provider,
		Model:    cfg.EmbeddingModel,
		APIKey:   cfg.OpenAIAPIKey,
		BaseURL:  cfg.OpenAIBaseURL,
	})
	if err != nil {
		return fmt.Errorf("embedding service: %w", err)
	}
	if err := a.runtime.ValidateAndSetEmbedding(ctx, embedder); err != nil {
		logger.Warn("embedding service health check failed, search unavailable", "error", err)
	} else if embedder == nil {
		logger.Warn("embedding service not configured, search unavailable")
	}

	oracle, err := factory.CreateOracle(&domain.OracleSettings{
		Provider:          provider,
		Model:             cfg.OracleModel,
		APIKey:            cfg.OpenAIAPIKey,
		BaseURL:           cfg.OpenAIBaseURL,
		RequestsPerSecond: cfg.OracleRPS,
		Timeout:           cfg.OracleTimeout,
	})
	if err != nil {
		return fmt.Errorf("relevance oracle: %w", err)
	}
	if oracle == nil {
		logger.Warn("relevance oracle not configured, matches get neutral scores")
		return nil
	}
	a.runtime.SetOracle(oracle)
	return nil
}

// Close releases everything newApp opened
func (a *app) Close() {
	if a.runtime != nil {
		_ = a.runtime.Close()
	}
	if a.redisClient != nil {
		_ = a.redisClient.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
