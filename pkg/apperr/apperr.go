package apperr

import "errors"

// Sentinel errors for the four failure classes the API surfaces.
// Handlers translate these to HTTP statuses at the boundary.
var (
	// ErrUpstreamUnavailable indicates a network failure or non-2xx
	// response from the sports provider or a third-party integration.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNotFound indicates no matching game, player, or team exists.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a missing or malformed request field.
	ErrValidation = errors.New("validation failed")

	// ErrNotConfigured indicates a required credential or environment
	// variable is absent and the feature is disabled.
	ErrNotConfigured = errors.New("not configured")
)
