package exception

import "errors"

// Loader errors
var (
	// ErrMissingColumn is returned when a required CSV header is absent.
	ErrMissingColumn = errors.New("loader: missing column")

	// ErrMalformedRecord is returned when a row cannot be parsed into an order.
	ErrMalformedRecord = errors.New("loader: malformed record")
)
