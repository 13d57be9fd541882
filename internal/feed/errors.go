package feed

import (
	"errors"
)

// Sentinel kinds for feed loading errors.
var (
	ErrNoSources = errors.New("no feed sources configured")
	ErrLoad      = errors.New("feed load failed")
	ErrDecode    = errors.New("feed decode failed")
)
