package backfill

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrSourceRequired is returned when a source repository is not provided.
	ErrSourceRequired = errors.New("source repository required")

	// ErrWriterRequired is returned when a destination writer is not provided.
	ErrWriterRequired = errors.New("destination writer required")
)
