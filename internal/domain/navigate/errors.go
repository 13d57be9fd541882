package navigate

import (
	"errors"
)

// Sentinel kinds for navigation errors.
var (
	ErrBadDay = errors.New("invalid day string")
)
