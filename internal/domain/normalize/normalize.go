// Package normalize converts raw feed records into uniform events.
package normalize

import (
	"context"
	"strconv"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
	"github.com/nlsvndrp/aperowo-nils/pkg/logger"
	"github.com/nlsvndrp/aperowo-nils/pkg/metrics"
)

// DefaultTitle is used for records that come without one.
const DefaultTitle = "Apero"

const isoDayLen = 10

// Normalizer turns raw entries into events. One instance spans one feed
// load so event IDs stay unique across all sources of that load.
type Normalizer struct {
	seen map[string]int
	log  logger.Logger
}

// New creates a Normalizer for a single load.
func New(log logger.Logger) *Normalizer {
	if log == nil {
		log = logger.Get().Named("normalize")
	}
	return &Normalizer{
		seen: make(map[string]int),
		log:  log,
	}
}

// Entry normalizes one raw record tagged with its source.
// It fails with ErrMissingDate when the record carries no date; every other
// field is optional and defaulted.
func (n *Normalizer) Entry(raw model.RawEntry, source string) (model.Event, error) {
	if raw.Date == "" {
		return model.Event{}, ErrMissingDate
	}

	date := raw.Date
	if len(date) > isoDayLen {
		date = date[:isoDayLen]
	}

	title := raw.Title
	if title == "" {
		title = DefaultTitle
	}

	ev := model.Event{
		ID:                 n.identify(raw, source, title, date),
		Title:              title,
		Date:               date,
		StartTime:          raw.StartTime,
		EndTime:            raw.EndTime,
		Location:           raw.Location,
		URL:                raw.URL,
		Source:             source,
		Refreshments:       raw.Refreshments,
		RefreshmentDetails: raw.RefreshmentDetails,
		EaseOfEntry:        raw.EaseOfEntry,
		Extra:              raw.Extra,
	}
	return ev, nil
}

// Batch normalizes a list of raw records. Records without a date are
// skipped and counted; one bad record never blocks the rest.
func (n *Normalizer) Batch(ctx context.Context, raws []model.RawEntry, source string) ([]model.Event, int) {
	events := make([]model.Event, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		ev, err := n.Entry(raw, source)
		if err != nil {
			skipped++
			continue
		}
		events = append(events, ev)
	}
	if skipped > 0 {
		n.log.Warn(ctx, "skipped records without a date",
			logger.String("source", source),
			logger.Int("skipped", skipped),
			logger.Int("kept", len(events)))
		metrics.RecordRecordsSkipped(skipped)
	}
	return events, skipped
}

// identify derives a load-unique event ID. Records with a source-side id
// keep it; the rest fall back to title and day. Collisions get a counter
// suffix so the uniqueness invariant holds even for identical records.
func (n *Normalizer) identify(raw model.RawEntry, source, title, date string) string {
	base := source + ":" + raw.ID
	if raw.ID == "" {
		base = source + ":" + title + "@" + date
	}
	count := n.seen[base]
	n.seen[base] = count + 1
	if count == 0 {
		return base
	}
	return base + "#" + strconv.Itoa(count)
}
