package crawler

import (
	"fmt"
	"os"
)

// ShowHelp prints tool usage.
func ShowHelp() {
	fmt.Fprint(os.Stdout, `fetch-events - collect apero events into JSON feed files

The tool queries the configured events API for records matching the
keywords, extracts the feed fields (title, date, times, location, url), and
writes them as a JSON array the calendar server can load. Keywords and the
API endpoint default from the service configuration (APEROWO_* env, optional
config file); flags override.

With -sites it additionally scrapes the given websites for pages mentioning
the keywords and writes those as a second feed file. Visited URLs persist in
a state file so repeated runs only fetch new pages.

Usage:
  fetch-events [flags]

Examples:
  # Fetch apero events from the default API into data/
  fetch-events -output data/apero_results_amiv.json

  # Also scrape a website for apero pages
  fetch-events -sites https://vseth.ethz.ch/events/ -web-output data/apero_results.json

  # Generate a synthetic feed for local development
  fetch-events -sample 40 -output data/apero_results_sample.json
`)
}
