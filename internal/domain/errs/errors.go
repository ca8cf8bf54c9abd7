// Package errs defines the typed error taxonomy shared across the workflow
// core. Every expected failure is one of these sentinels (usually wrapped with
// context via fmt.Errorf and %w); the HTTP layer maps them to status codes
// with errors.Is.
package errs

import "errors"

var (
	// ErrUnauthenticated is returned when no principal could be resolved
	// for the request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned when an authenticated principal lacks the
	// role or ownership required for an action.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when an entity id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when an entity is not in the state
	// an action requires, including lost races caught by the
	// compare-and-swap update.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrValidation is returned for malformed input, such as missing
	// rejection notes or a non-positive amount.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable is returned when the record store cannot be reached.
	// Distinct from ErrNotFound so callers can show a retry affordance.
	ErrUnavailable = errors.New("store unavailable")
)
