package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/custodia-labs/survey-search/internal/core/domain"
	"github.com/custodia-labs/survey-search/internal/core/ports/driven"
	"github.com/custodia-labs/survey-search/internal/core/ports/driving"
)

// Ensure highlightService implements HighlightService
var _ driving.HighlightService = (*highlightService)(nil)

const highlightLockPrefix = "highlight:"

// highlightService implements the HighlightService interface
type highlightService struct {
	fetcher   driven.DocumentFetcher
	annotator driven.Annotator
	store     driven.HighlightStore
	lock      driven.DistributedLock
	registry  *RenderRegistry
	logger    *slog.Logger

	lockTTL      time.Duration
	lockWait     time.Duration
	pollInterval time.Duration
}

// HighlightConfig holds configuration for the highlight service.
type HighlightConfig struct {
	Fetcher   driven.DocumentFetcher
	Annotator driven.Annotator
	Store     driven.HighlightStore
	Lock      driven.DistributedLock // Optional: coordinates renders across instances
	Logger    *slog.Logger

	LockTTL      time.Duration // Lifetime of the cross-instance render lock (default: 2m)
	LockWait     time.Duration // How long to wait for another instance's render (default: 30s)
	PollInterval time.Duration // How often to re-check while waiting (default: 250ms)
}

// NewHighlightService creates a new HighlightService
func NewHighlightService(cfg HighlightConfig) driving.HighlightService {
	s := &highlightService{
		fetcher:      cfg.Fetcher,
		annotator:    cfg.Annotator,
		store:        cfg.Store,
		lock:         cfg.Lock,
		registry:     NewRenderRegistry(),
		logger:       cfg.Logger,
		lockTTL:      cfg.LockTTL,
		lockWait:     cfg.LockWait,
		pollInterval: cfg.PollInterval,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.lockTTL <= 0 {
		s.lockTTL = 2 * time.Minute
	}
	if s.lockWait <= 0 {
		s.lockWait = 30 * time.Second
	}
	if s.pollInterval <= 0 {
		s.pollInterval = 250 * time.Millisecond
	}
	return s
}

// GetHighlighted returns the URL of the annotated copy for req.
func (s *highlightService) GetHighlighted(ctx context.Context, req domain.HighlightRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	key := req.CacheKey()

	if ok, err := s.store.Exists(ctx, key); err != nil {
		s.logger.Warn("highlight cache lookup failed", "key", key, "error", err)
	} else if ok {
		return s.store.URL(key), nil
	}

	render := func() (string, error) {
		return s.render(ctx, key, req)
	}

	url, started, err := s.registry.GetOrStart(key, render)
	if err != nil && !started {
		// The render this call waited on failed; try once on our own.
		s.logger.Debug("joined render failed, retrying", "key", key, "error", err)
		url, _, err = s.registry.GetOrStart(key, render)
	}
	return url, err
}

// Open returns a stored annotated copy by file name.
func (s *highlightService) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == "" || name != path.Base(name) || strings.Contains(name, "..") || !strings.HasSuffix(name, ".pdf") {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Open(ctx, name)
}

func (s *highlightService) render(ctx context.Context, key string, req domain.HighlightRequest) (string, error) {
	if s.lock != nil {
		done, release, err := s.acquire(ctx, key)
		if err != nil {
			return "", err
		}
		defer release()
		if done {
			return s.store.URL(key), nil
		}
	}

	// A previous flight may have finished between the lookup and now.
	if ok, err := s.store.Exists(ctx, key); err == nil && ok {
		return s.store.URL(key), nil
	}

	start := time.Now()
	src, err := s.fetcher.Fetch(ctx, req.SourceURL)
	if err != nil {
		return "", fmt.Errorf("%w: download %s: %w", domain.ErrRenderFailed, req.SourceURL, err)
	}

	var result domain.AnnotationResult
	err = s.store.Save(ctx, key, func(w io.Writer) error {
		var annotateErr error
		result, annotateErr = s.annotator.Annotate(src, w, req.Plan())
		return annotateErr
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRenderFailed, err)
	}

	s.logger.Info("highlighted document rendered",
		"source_url", req.SourceURL,
		"key", key,
		"highlights", result.Highlights,
		"pages", result.PagesTouched,
		"duration", time.Since(start),
	)
	return s.store.URL(key), nil
}

// acquire takes the cross-instance lock for key. If another instance holds
// it, acquire waits until that instance has stored the copy (done=true) or
// the lock frees up.
func (s *highlightService) acquire(ctx context.Context, key string) (done bool, release func(), err error) {
	name := highlightLockPrefix + key
	noop := func() {}
	deadline := time.Now().Add(s.lockWait)

	for {
		acquired, err := s.lock.Acquire(ctx, name, s.lockTTL)
		if err != nil {
			// Lock backend trouble degrades to per-instance coalescing only.
			s.logger.Warn("render lock unavailable", "key", key, "error", err)
			return false, noop, nil
		}
		if acquired {
			return false, func() {
				if err := s.lock.Release(context.WithoutCancel(ctx), name); err != nil {
					s.logger.Warn("failed to release render lock", "key", key, "error", err)
				}
			}, nil
		}

		if ok, err := s.store.Exists(ctx, key); err == nil && ok {
			return true, noop, nil
		}
		if time.Now().After(deadline) {
			return false, noop, fmt.Errorf("%w: timed out waiting for render lock", domain.ErrRenderFailed)
		}

		select {
		case <-ctx.Done():
			return false, noop, ctx.Err()
		case <-time.After(s.pollInterval):
		}
	}
}
