package entities

import "errors"

// Sentinel errors shared across services. Callers branch with errors.Is
// and decide whether to prompt, retry, or ignore; the core never retries.
var (
	// ErrNotFound is returned when a cafe, review or user id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrAuthRequired is returned when an operation needs a signed-in user.
	ErrAuthRequired = errors.New("authentication required")
	// ErrInvalidInput is returned when validation rejects a write.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAuthFailed is returned when credentials do not match.
	ErrAuthFailed = errors.New("authentication failed")
)
