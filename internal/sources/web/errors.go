package web

import (
	"errors"
)

// Sentinel kinds for scraper errors.
var (
	ErrBadSite = errors.New("invalid site URL")
)
