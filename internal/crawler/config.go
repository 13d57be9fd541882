// Package crawler collects apero events from upstream sources and writes
// the JSON feed files the server loads.
package crawler

import (
	"time"
)

// Config drives one crawler run.
type Config struct {
	// Endpoint is the upstream events API.
	Endpoint string

	// Keywords select events; matching is case- and diacritic-insensitive.
	Keywords []string

	// OutputFile is the feed file to write.
	OutputFile string

	// Sites lists websites to scrape for apero pages in addition to the
	// API. Empty disables scraping.
	Sites []string

	// WebOutputFile is the feed file for scraped events.
	WebOutputFile string

	// VisitedFile persists scraped URLs between runs.
	VisitedFile string

	// Sample, when positive, generates that many synthetic events instead
	// of fetching. Useful for local development without network access.
	Sample int

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Verbose enables debug logging.
	Verbose bool
}
