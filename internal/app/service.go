// Package service provides the core business service implementing the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/nlsvndrp/aperowo-nils/internal/adapters/repository"
	"github.com/nlsvndrp/aperowo-nils/internal/domain/dayindex"
	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
	"github.com/nlsvndrp/aperowo-nils/internal/domain/normalize"
	"github.com/nlsvndrp/aperowo-nils/internal/feed"
	"github.com/nlsvndrp/aperowo-nils/pkg/logger"
	"github.com/nlsvndrp/aperowo-nils/pkg/metrics"
)

// Service owns the load pipeline and the event snapshot.
type Service struct {
	mu sync.RWMutex

	store   repository.Store
	loader  *feed.Loader
	sources []string
	baseURL string

	refreshEvery time.Duration

	started bool
	stopCh  chan struct{}

	// Stats of the last completed load.
	lastSkipped int
	lastSources int
	lastError   string

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithStore replaces the event store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLoader replaces the feed loader.
func WithLoader(loader *feed.Loader) Option {
	return func(s *Service) {
		if loader != nil {
			s.loader = loader
		}
	}
}

// WithSources sets the feed sources (file paths or URLs).
func WithSources(sources []string) Option {
	return func(s *Service) {
		s.sources = sources
	}
}

// WithBaseURL sets the host relative event URLs are resolved against.
func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.baseURL = baseURL
	}
}

// WithRefreshInterval enables periodic feed reloads. Zero disables them.
func WithRefreshInterval(every time.Duration) Option {
	return func(s *Service) {
		s.refreshEvery = every
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:  repository.NewSnapshotStore(),
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start performs the initial feed load and, when configured, starts the
// periodic refresh loop. A failed initial load is fatal: no partial
// calendar is ever served.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.loader == nil {
		s.loader = feed.New(
			feed.WithSources(s.sources),
			feed.WithLogger(s.logger.Named("feed")),
		)
	}
	s.started = true
	s.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		return err
	}

	if s.refreshEvery > 0 {
		go s.refreshLoop(ctx)
	}

	s.logger.Info(ctx, "calendar service started",
		logger.Int("events", s.store.Count(ctx)),
		logger.Int("sources", len(s.sources)))
	return nil
}

// Stop terminates the refresh loop.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	close(s.stopCh)
	s.started = false
}

func (s *Service) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(s.refreshEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Error(ctx, "periodic refresh failed", logger.Error(err))
			}
		}
	}
}

// Refresh loads all sources, normalizes the records, and swaps the
// snapshot. On failure the previous snapshot stays in place.
func (s *Service) Refresh(ctx context.Context) error {
	start := time.Now()

	result, err := s.loader.Load(ctx)
	if err != nil {
		metrics.RecordFeedLoadError()
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		return err
	}

	norm := normalize.New(s.logger.Named("normalize"))
	var events []model.Event
	skipped := 0
	for _, src := range result.Sources {
		evs, n := norm.Batch(ctx, src.Records, src.Source)
		events = append(events, evs...)
		skipped += n
	}

	s.store.Replace(ctx, events)

	s.mu.Lock()
	s.lastSkipped = skipped
	s.lastSources = len(result.Sources)
	s.lastError = ""
	s.mu.Unlock()

	metrics.RecordFeedLoad(float64(time.Since(start).Milliseconds()))
	metrics.UpdateSourcesLoaded(len(result.Sources))

	s.logger.Info(ctx, "feed loaded",
		logger.Int("events", len(events)),
		logger.Int("skipped", skipped),
		logger.Int("sources", len(result.Sources)))
	return nil
}

// Day returns the ordered events of one ISO day.
func (s *Service) Day(ctx context.Context, iso string) []model.Event {
	return s.store.Day(ctx, iso)
}

// Index returns the current day index snapshot.
func (s *Service) Index(ctx context.Context) dayindex.Index {
	return s.store.Index(ctx)
}

// Events returns all loaded events.
func (s *Service) Events(ctx context.Context) []model.Event {
	return s.store.Events(ctx)
}

// BaseURL returns the host relative event URLs resolve against.
func (s *Service) BaseURL() string {
	return s.baseURL
}

// GetStats returns service statistics for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"events":        s.store.Count(ctx),
		"days":          len(s.store.Index(ctx)),
		"sources":       s.lastSources,
		"skipped":       s.lastSkipped,
		"base_url":      s.baseURL,
		"refresh_every": s.refreshEvery.String(),
	}
	if t := s.store.LastLoad(ctx); !t.IsZero() {
		stats["last_load"] = t.UTC().Format(time.RFC3339)
	}
	if s.lastError != "" {
		stats["last_error"] = s.lastError
	}
	return stats
}
