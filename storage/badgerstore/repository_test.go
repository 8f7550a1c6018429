package badgerstore

import (
	"context"
	"testing"

	"github.com/poiesic/schoolbridge/core"
	"github.com/poiesic/schoolbridge/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func TestPutAnnouncements(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	t.Run("generates content ids", func(t *testing.T) {
		records, err := repo.PutAnnouncements(ctx, &core.Announcement{
			Title:  "Bake Sale",
			Sender: "PTA Board",
			SentAt: "2025-06-17T09:00:00Z",
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.NotZero(t, records[0].Id)
	})

	t.Run("identical content maps to the same record", func(t *testing.T) {
		a := &core.Announcement{Title: "Dup", Sender: "Office", SentAt: "2025-06-16T09:00:00Z"}
		b := &core.Announcement{Title: "Dup", Sender: "Office", SentAt: "2025-06-16T09:00:00Z"}

		_, err := repo.PutAnnouncements(ctx, a)
		require.NoError(t, err)
		_, err = repo.PutAnnouncements(ctx, b)
		require.NoError(t, err)

		assert.Equal(t, a.Id, b.Id)
	})

	t.Run("nil record rejected", func(t *testing.T) {
		_, err := repo.PutAnnouncements(ctx, nil)
		assert.ErrorIs(t, err, core.ErrInvalidAnnouncement)
	})
}

func TestListAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.PutAnnouncements(ctx,
		&core.Announcement{Title: "Older", SentAt: "2025-06-10T08:00:00Z"},
		&core.Announcement{Title: "Newer", SentAt: "2025-06-17T09:00:00Z"},
		&core.Announcement{Title: "No timestamp"},
	)
	require.NoError(t, err)

	results, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Newer", results[0].Title)
	assert.Equal(t, "Older", results[1].Title)
	assert.Equal(t, "No timestamp", results[2].Title)
}

func TestListByDateRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.PutAnnouncements(ctx,
		&core.Announcement{Title: "Before", SentAt: "2025-06-10T08:00:00Z"},
		&core.Announcement{Title: "Start of range", SentAt: "2025-06-16T00:00:00Z"},
		&core.Announcement{Title: "End of range", SentAt: "2025-06-22T23:59:00Z"},
		&core.Announcement{Title: "After", SentAt: "2025-06-23T08:00:00Z"},
		&core.Announcement{Title: "No timestamp"},
	)
	require.NoError(t, err)

	t.Run("inclusive bounds", func(t *testing.T) {
		results, err := repo.ListByDateRange(ctx, "2025-06-16", "2025-06-22")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "End of range", results[0].Title)
		assert.Equal(t, "Start of range", results[1].Title)
	})

	t.Run("single day", func(t *testing.T) {
		results, err := repo.ListByDateRange(ctx, "2025-06-10", "2025-06-10")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Before", results[0].Title)
	})

	t.Run("empty range", func(t *testing.T) {
		results, err := repo.ListByDateRange(ctx, "2024-01-01", "2024-01-31")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("invalid bounds", func(t *testing.T) {
		_, err := repo.ListByDateRange(ctx, "June 16", "2025-06-22")
		assert.ErrorIs(t, err, storage.ErrInvalidDateBound)
	})
}
