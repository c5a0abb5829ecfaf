package providers

import "errors"

// Failure taxonomy shared by all provider clients. Callers classify with
// errors.Is; the valuation layer maps any of these onto the per-class
// fallback policy.
var (
	// ErrUnavailable means the provider could not be reached or answered
	// with a non-2xx status.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrMalformed means the provider answered but the payload was not
	// parseable or lacked expected fields.
	ErrMalformed = errors.New("malformed provider response")

	// ErrNotFound means the provider had no data for the requested
	// symbol or scheme.
	ErrNotFound = errors.New("not found")
)
