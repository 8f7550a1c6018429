package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAnnouncement(t *testing.T) {
	t.Run("nil announcement", func(t *testing.T) {
		assert.ErrorIs(t, ValidateAnnouncement(nil), ErrInvalidAnnouncement)
	})

	t.Run("empty fields are allowed", func(t *testing.T) {
		assert.NoError(t, ValidateAnnouncement(&Announcement{}))
	})

	t.Run("fully populated", func(t *testing.T) {
		a := &Announcement{
			Title:       "Annual Lemonade Sale",
			Sender:      "Jessica Arciniega",
			SentAt:      "2025-05-12T08:30:00Z",
			Description: "Bring your quarters",
			Attachments: []Attachment{{Filename: "flyer.pdf", URL: "https://example.com/flyer.pdf"}},
		}
		assert.NoError(t, ValidateAnnouncement(a))
	})
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero falls back to default", 0, 15},
		{"negative falls back to default", -3, 15},
		{"within bounds unchanged", 10, 10},
		{"at max unchanged", 50, 50},
		{"over max clamps", 500, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampLimit(tt.limit, 15, 50))
		})
	}

	t.Run("degenerate default still yields at least one", func(t *testing.T) {
		assert.Equal(t, 1, ClampLimit(0, 0, 50))
	})
}
