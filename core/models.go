package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// DateLayout is the canonical calendar-date form used throughout the engine.
const DateLayout = "2006-01-02"

// ID is a unique identifier for locally stored announcements.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Attachment is an opaque file reference carried on an announcement.
// The engine never inspects attachment contents.
type Attachment struct {
	Filename string `json:"filename,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Announcement represents a single school-issued notice.
// All fields are optional at the record-store boundary; missing fields
// default to empty values and never cause a record to be dropped.
type Announcement struct {
	Id          ID           `json:"id,omitempty"`
	Title       string       `json:"title"`
	Sender      string       `json:"sender"`
	SentAt      string       `json:"sent_at"` // ISO 8601 timestamp as delivered by the record store
	Description string       `json:"description"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// SentAtTime parses the announcement's send timestamp.
// Returns false when the timestamp is absent or not parseable.
func (a *Announcement) SentAtTime() (time.Time, bool) {
	if a == nil || a.SentAt == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", DateLayout} {
		if t, err := time.Parse(layout, a.SentAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateRange is an inclusive calendar-date range with no time-of-day component.
// Start is never after End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// StartDate returns the range start in YYYY-MM-DD form.
func (r DateRange) StartDate() string {
	return r.Start.Format(DateLayout)
}

// EndDate returns the range end in YYYY-MM-DD form.
func (r DateRange) EndDate() string {
	return r.End.Format(DateLayout)
}

func (r DateRange) String() string {
	return r.StartDate() + " to " + r.EndDate()
}

// SearchQuery describes one combined-filter invocation.
// Query, Sender, and DateExpr are each optional; empty means "not applied".
type SearchQuery struct {
	Query    string // free-text relevance query
	Sender   string // case-insensitive sender substring filter
	DateExpr string // natural-language date expression
	Limit    int    // result cap, pre-clamped by the caller
}

// ScoredAnnouncement pairs an announcement with its relevance score during
// ranking. It exists only for the duration of one pipeline invocation.
type ScoredAnnouncement struct {
	Announcement *Announcement
	Score        int
}
