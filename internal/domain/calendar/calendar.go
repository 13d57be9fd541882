// Package calendar builds month grids of day cells.
package calendar

import (
	"time"
)

// ISODay is the layout of a 10-char calendar day string.
const ISODay = "2006-01-02"

const daysPerWeek = 7

// Cell is one day slot in a month grid. InMonth marks whether the date
// belongs to the displayed month or is padding from an adjacent one.
type Cell struct {
	Date    time.Time `json:"-"`
	ISO     string    `json:"date"`
	Day     int       `json:"day"`
	InMonth bool      `json:"in_month"`
}

// Matrix returns the grid for a month as complete Monday-to-Sunday weeks.
//
// The grid is variable-length: it runs exactly from the Monday of the week
// containing the 1st to the Sunday of the week containing the last day, so a
// month spans four to six rows. Padding cells carry adjacent-month dates
// with InMonth unset.
func Matrix(year int, month time.Month) [][]Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -weekdayIndex(first))
	end := last.AddDate(0, 0, daysPerWeek-1-weekdayIndex(last))

	var weeks [][]Cell
	for cur := start; !cur.After(end); {
		week := make([]Cell, 0, daysPerWeek)
		for i := 0; i < daysPerWeek; i++ {
			week = append(week, Cell{
				Date:    cur,
				ISO:     cur.Format(ISODay),
				Day:     cur.Day(),
				InMonth: cur.Month() == month && cur.Year() == year,
			})
			cur = cur.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// weekdayIndex maps a date to its Monday-first weekday index (Mon=0..Sun=6).
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + daysPerWeek - 1) % daysPerWeek
}

// AddMonths shifts a (year, month) pair by delta months, normalizing year
// overflow and underflow in either direction.
func AddMonths(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}

// ParseDay parses a 10-char ISO day string, tolerating a trailing time
// component on longer inputs.
func ParseDay(iso string) (time.Time, error) {
	if len(iso) > len(ISODay) {
		iso = iso[:len(ISODay)]
	}
	return time.Parse(ISODay, iso)
}
