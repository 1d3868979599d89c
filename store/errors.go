package store

import "errors"

var (
	// ErrNotFound means the referenced booking, contractor, or key does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a state-transition precondition no longer holds, e.g.
	// the booking was already claimed or cancelled. Safe for the caller to
	// retry after a fresh read of the pending list.
	ErrConflict = errors.New("booking is no longer available")

	// ErrInvalidKey means a presented API key is unknown or inactive. An
	// absent key is not an error; it is anonymous access.
	ErrInvalidKey = errors.New("invalid or inactive API key")
)
