package horizon

import "errors"

var (
	// ErrInvalidConfig indicates malformed detection settings. Specific
	// validation failures wrap this sentinel, so callers can match the whole
	// class with errors.Is(err, ErrInvalidConfig).
	ErrInvalidConfig = errors.New("horizon: invalid detection settings")

	// ErrRaggedRows indicates a caller-supplied edge grid whose rows have
	// differing lengths.
	ErrRaggedRows = errors.New("horizon: all edge map rows must have the same length")
)
