package storage

import (
	"context"

	"github.com/poiesic/schoolbridge/core"
)

// AnnouncementRepository provides read access to the school's announcement
// feed. Implementations must be safe for concurrent use.
//
// Both list operations return announcements sorted most-recent-first by send
// timestamp. Transport-level failures surface as errors; callers in the
// retrieval engine translate them into empty result sets.
type AnnouncementRepository interface {
	// ListAll retrieves every current announcement.
	ListAll(ctx context.Context) ([]*core.Announcement, error)

	// ListByDateRange retrieves announcements whose send timestamp falls
	// within [start 00:00:00, end 23:59:59] inclusive. Bounds are calendar
	// dates in YYYY-MM-DD form.
	ListByDateRange(ctx context.Context, start, end string) ([]*core.Announcement, error)

	// Close releases resources held by the repository.
	Close() error
}

// AnnouncementWriter is implemented by backends that accept local writes
// (the badger store). The Airtable client is read-only.
type AnnouncementWriter interface {
	// PutAnnouncements stores announcements, generating content-based IDs
	// for records with ID 0. Returns the records with IDs populated.
	PutAnnouncements(ctx context.Context, announcements ...*core.Announcement) ([]*core.Announcement, error)
}
