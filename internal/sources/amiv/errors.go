package amiv

import (
	"errors"
)

// Sentinel kinds for API client errors.
var (
	ErrFetch  = errors.New("events fetch failed")
	ErrDecode = errors.New("events decode failed")
)
