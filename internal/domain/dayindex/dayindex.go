// Package dayindex groups events by calendar day.
package dayindex

import (
	"fmt"
	"sort"
	"time"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/model"
)

const isoDayLen = 10

// Index maps a 10-char ISO day string to the ordered events of that day.
// An Index is rebuilt wholesale on every load and never mutated afterwards.
type Index map[string][]model.Event

// Key derives the index key from an event date string, tolerating dates
// that still carry a time component.
func Key(date string) string {
	if len(date) > isoDayLen {
		return date[:isoDayLen]
	}
	return date
}

// Build groups events by day and sorts each day's list.
//
// Order inside a day: events that both carry a start time compare lexically
// by that time; an event with a start time sorts before one without; when
// neither has a time, titles compare lexically. The sort is stable, so equal
// keys keep their input order.
func Build(events []model.Event) Index {
	ix := make(Index)
	for _, ev := range events {
		day := Key(ev.Date)
		ix[day] = append(ix[day], ev)
	}
	for day := range ix {
		list := ix[day]
		sort.SliceStable(list, func(i, j int) bool {
			return less(list[i], list[j])
		})
	}
	return ix
}

func less(a, b model.Event) bool {
	switch {
	case a.StartTime != "" && b.StartTime != "":
		return a.StartTime < b.StartTime
	case a.StartTime != "":
		return true
	case b.StartTime != "":
		return false
	default:
		return a.Title < b.Title
	}
}

// Days returns all indexed days in ascending order.
func (ix Index) Days() []string {
	days := make([]string, 0, len(ix))
	for day := range ix {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// FirstDayIn returns the earliest indexed day falling in the given month,
// or false when that month has no events.
func (ix Index) FirstDayIn(year int, month time.Month) (string, bool) {
	prefix := fmt.Sprintf("%04d-%02d", year, int(month))
	for _, day := range ix.Days() {
		if len(day) >= len(prefix) && day[:len(prefix)] == prefix {
			return day, true
		}
	}
	return "", false
}

// Events returns the ordered list for a day, nil when the day is empty.
func (ix Index) Events(day string) []model.Event {
	return ix[Key(day)]
}
