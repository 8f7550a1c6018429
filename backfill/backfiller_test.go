package backfill

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/schoolbridge/core"
	"github.com/poiesic/schoolbridge/storage/badgerstore"
	"github.com/poiesic/schoolbridge/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		BatchSize:      10,
		ReportInterval: 10,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}
}

func newDestination(t *testing.T) *badgerstore.Repository {
	t.Helper()

	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return repo
}

func TestNewBackfiller(t *testing.T) {
	dest := newDestination(t)

	t.Run("requires a source", func(t *testing.T) {
		b, err := NewBackfiller(nil, dest, nil, &bytes.Buffer{})
		assert.Nil(t, b)
		assert.ErrorIs(t, err, ErrSourceRequired)
	})

	t.Run("requires a destination", func(t *testing.T) {
		b, err := NewBackfiller(memory.NewRepository(), nil, nil, &bytes.Buffer{})
		assert.Nil(t, b)
		assert.ErrorIs(t, err, ErrWriterRequired)
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		b, err := NewBackfiller(memory.NewRepository(), dest, nil, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().BatchSize, b.config.BatchSize)
	})
}

func TestBackfillerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("copies everything in batches", func(t *testing.T) {
		var records []*core.Announcement
		for i := 0; i < 35; i++ {
			records = append(records, &core.Announcement{
				Title:  fmt.Sprintf("Announcement %d", i),
				Sender: "Front Office",
				SentAt: "2025-06-10T08:00:00Z",
			})
		}
		source := memory.NewRepository(records...)
		dest := newDestination(t)

		var progress bytes.Buffer
		b, err := NewBackfiller(source, dest, testConfig(), &progress)
		require.NoError(t, err)

		written, err := b.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 35, written)

		stored, err := dest.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, stored, 35)

		assert.Contains(t, progress.String(), "Starting backfill of 35 announcements")
		assert.Contains(t, progress.String(), "Backfill complete.")
	})

	t.Run("empty source", func(t *testing.T) {
		var progress bytes.Buffer
		b, err := NewBackfiller(memory.NewRepository(), newDestination(t), testConfig(), &progress)
		require.NoError(t, err)

		written, err := b.Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, written)
		assert.Contains(t, progress.String(), "No announcements found at source")
	})

	t.Run("source failure surfaces after retries", func(t *testing.T) {
		source := memory.NewRepository()
		source.Err = assert.AnError

		b, err := NewBackfiller(source, newDestination(t), testConfig(), &bytes.Buffer{})
		require.NoError(t, err)

		written, err := b.Run(ctx)
		assert.Zero(t, written)
		assert.ErrorContains(t, err, "fetching announcements from source")
		assert.Equal(t, 2, source.ListCalls(), "should retry the fetch")
	})
}
