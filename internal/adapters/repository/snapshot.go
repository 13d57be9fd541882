package repository

import (
	"context"
	"sync"
	"time"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/dayindex"
	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
	"github.com/nlsvndrp/aperowo-nils/pkg/metrics"
)

// SnapshotStore implements Store with a mutex-guarded immutable snapshot.
// Readers see either the old or the new snapshot, never a mix.
type SnapshotStore struct {
	mu       sync.RWMutex
	events   []model.Event
	index    dayindex.Index
	loadedAt time.Time

	now func() time.Time
}

// Option applies a configuration option to the SnapshotStore.
type Option func(*SnapshotStore)

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *SnapshotStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{
		index: dayindex.Index{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replace rebuilds the day index from events and swaps the snapshot.
func (s *SnapshotStore) Replace(_ context.Context, events []model.Event) {
	start := time.Now()
	index := dayindex.Build(events)

	s.mu.Lock()
	s.events = events
	s.index = index
	s.loadedAt = s.now()
	s.mu.Unlock()

	metrics.RecordSnapshotRebuild(float64(time.Since(start).Milliseconds()))
	metrics.UpdateEventsLoaded(len(events))
	metrics.UpdateDaysIndexed(len(index))
}

// Day returns the ordered events of one ISO day.
func (s *SnapshotStore) Day(_ context.Context, iso string) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Events(iso)
}

// Index returns the current day index.
func (s *SnapshotStore) Index(_ context.Context) dayindex.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Events returns all events of the current snapshot.
func (s *SnapshotStore) Events(_ context.Context) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events
}

// Count returns the number of events in the snapshot.
func (s *SnapshotStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// LastLoad returns the time of the last snapshot swap.
func (s *SnapshotStore) LastLoad(_ context.Context) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
