package ingestion

import "errors"

var (
	// ErrWriterRequired is returned when an announcement writer is not provided.
	ErrWriterRequired = errors.New("announcement writer required")

	// ErrEmptyImport is returned when an import source holds no announcements.
	ErrEmptyImport = errors.New("no announcements to import")
)
