package repositories

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)
