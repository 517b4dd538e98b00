package auth

import "errors"

// Failure classes kept deliberately coarse: callers learn "no credentials
// to evaluate" vs "credentials evaluated and rejected", never which check
// failed.
var (
	ErrMissingCredentials = errors.New("all fields are required")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// ErrDirectoryUnavailable wraps collaborator failures; surfaced as an
	// opaque 5xx and never retried here.
	ErrDirectoryUnavailable = errors.New("user directory unavailable")
)
