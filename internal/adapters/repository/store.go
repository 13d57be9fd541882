// Package repository holds the in-memory event snapshot behind the API.
package repository

import (
	"context"
	"time"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/dayindex"
	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
)

// Store provides read access to the current event snapshot and a wholesale
// replace used after each feed load. Snapshots are never mutated in place.
type Store interface {
	// Replace swaps in a new snapshot built from events.
	Replace(ctx context.Context, events []model.Event)

	// Day returns the ordered events of one ISO day, nil when empty.
	Day(ctx context.Context, iso string) []model.Event

	// Index returns the current day index. Callers must not modify it.
	Index(ctx context.Context) dayindex.Index

	// Events returns all events of the snapshot.
	Events(ctx context.Context) []model.Event

	// Count returns the number of events in the snapshot.
	Count(ctx context.Context) int

	// LastLoad returns when the snapshot was last replaced, zero before the
	// first load.
	LastLoad(ctx context.Context) time.Time
}
