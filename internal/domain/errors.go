package domain

import "errors"

var (
	// ErrValidation indicates malformed or missing required input. The
	// operation that returned it made no change.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an operation referenced an id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrReferentialIntegrity indicates a delete was blocked by a dependent record.
	ErrReferentialIntegrity = errors.New("referential integrity violation")

	// ErrPersistence indicates a durable read or write failed. When returned
	// from a mutation, the in-memory state has still advanced.
	ErrPersistence = errors.New("persistence failed")
)
