package normalize

import (
	"errors"
)

// Sentinel kinds for normalization errors.
var (
	ErrMissingDate = errors.New("record has no date")
)
