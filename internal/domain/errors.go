package domain

import "errors"

var (
	// ErrFeedUnavailable indicates an upstream marketplace endpoint could
	// not be reached or answered with a non-2xx status. Callers treat it
	// as an empty result and try again next cycle.
	ErrFeedUnavailable = errors.New("marketplace feed unavailable")

	// ErrMalformedEntry indicates an upstream record was missing required
	// fields. The record is skipped, never the cycle.
	ErrMalformedEntry = errors.New("malformed upstream entry")
)
