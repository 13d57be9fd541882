// Package navigate holds the month navigation state machine.
//
// A View is an explicit value; transitions are pure functions that take the
// current view plus the day index and return the next view. No I/O happens
// here, callers own rendering and data loading.
package navigate

import (
	"time"

	"github.com/nlsvndrp/aperowo-nils/internal/domain/calendar"
	"github.com/nlsvndrp/aperowo-nils/internal/domain/dayindex"
)

// View is the navigation state: the displayed month and, optionally, one
// active day. An empty ActiveDay means no day is selected.
type View struct {
	Year      int        `json:"year"`
	Month     time.Month `json:"month"`
	ActiveDay string     `json:"active_day,omitempty"`
}

// NewView builds the initial view for a point in time, preselecting the
// first indexed day of that month when there is one.
func NewView(now time.Time, ix dayindex.Index) View {
	v := View{Year: now.Year(), Month: now.Month()}
	if day, ok := ix.FirstDayIn(v.Year, v.Month); ok {
		v.ActiveDay = day
	}
	return v
}

// Goto shifts the view by delta months, normalizing year overflow and
// underflow. The active day becomes the first indexed day of the target
// month, or unset when the month has no events.
func Goto(v View, delta int, ix dayindex.Index) View {
	v.Year, v.Month = calendar.AddMonths(v.Year, v.Month, delta)
	v.ActiveDay = ""
	if day, ok := ix.FirstDayIn(v.Year, v.Month); ok {
		v.ActiveDay = day
	}
	return v
}

// Select makes iso the active day. When iso falls outside the displayed
// month the view first moves to that month, then selects; this is how
// clicking an adjacent-month padding cell behaves. Selection does not
// consult the day index: any valid day can be active, events or not.
func Select(v View, iso string) (View, error) {
	t, err := calendar.ParseDay(iso)
	if err != nil {
		return v, ErrBadDay
	}
	if t.Year() != v.Year || t.Month() != v.Month {
		v.Year, v.Month = t.Year(), t.Month()
	}
	v.ActiveDay = t.Format(calendar.ISODay)
	return v, nil
}
