// Package model contains domain models passed between layers.
package model

import "encoding/json"

// isoDayLen is the length of a calendar-day string (YYYY-MM-DD).
const isoDayLen = 10

// RawEntry is one record as delivered by a feed source. Field names differ
// between sources (start_time vs startTime), so decoding goes through a
// custom UnmarshalJSON that folds the aliases and keeps anything it does not
// recognize in Extra, untouched.
type RawEntry struct {
	Date               string
	ID                 string
	Title              string
	StartTime          string
	EndTime            string
	Location           string
	URL                string
	Refreshments       string
	RefreshmentDetails string
	EaseOfEntry        *float64

	// Extra holds unrecognized fields verbatim.
	Extra map[string]json.RawMessage
}

// UnmarshalJSON decodes a raw record, accepting both snake_case and
// camelCase time field names.
func (r *RawEntry) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	take := func(keys ...string) (json.RawMessage, bool) {
		for _, k := range keys {
			if v, ok := fields[k]; ok {
				delete(fields, k)
				return v, true
			}
		}
		return nil, false
	}
	takeString := func(dst *string, keys ...string) {
		if v, ok := take(keys...); ok {
			var s string
			if json.Unmarshal(v, &s) == nil {
				*dst = s
			}
		}
	}

	takeString(&r.Date, "date")
	takeString(&r.ID, "id")
	takeString(&r.Title, "title")
	takeString(&r.StartTime, "start_time", "startTime")
	takeString(&r.EndTime, "end_time", "endTime")
	takeString(&r.Location, "location")
	takeString(&r.URL, "url")
	takeString(&r.Refreshments, "refreshments")
	takeString(&r.RefreshmentDetails, "refreshment_details")

	if v, ok := take("easeOfEntry", "ease_of_entry"); ok {
		var f float64
		if json.Unmarshal(v, &f) == nil {
			r.EaseOfEntry = &f
		}
	}

	if len(fields) > 0 {
		r.Extra = fields
	}
	return nil
}

// Event is the normalized representation every downstream component works
// with. Date is always present and always a 10-char calendar day; ID is
// unique within one load.
type Event struct {
	ID                 string                     `json:"id"`
	Title              string                     `json:"title"`
	Date               string                     `json:"date"`
	StartTime          string                     `json:"start_time,omitempty"`
	EndTime            string                     `json:"end_time,omitempty"`
	Location           string                     `json:"location,omitempty"`
	URL                string                     `json:"url,omitempty"`
	Source             string                     `json:"source"`
	Refreshments       string                     `json:"refreshments,omitempty"`
	RefreshmentDetails string                     `json:"refreshment_details,omitempty"`
	EaseOfEntry        *float64                   `json:"ease_of_entry,omitempty"`
	Extra              map[string]json.RawMessage `json:"extra,omitempty"`
}

// Day returns the calendar day of the event as a 10-char ISO string,
// tolerating dates that carry a time component.
func (e Event) Day() string {
	if len(e.Date) > isoDayLen {
		return e.Date[:isoDayLen]
	}
	return e.Date
}
