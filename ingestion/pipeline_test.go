package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/schoolbridge/core"
	"github.com/poiesic/schoolbridge/storage/badgerstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, *badgerstore.Repository) {
	t.Helper()

	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	pipeline, err := NewPipeline(repo, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, repo
}

func TestNewPipeline(t *testing.T) {
	t.Run("requires a writer", func(t *testing.T) {
		pipeline, err := NewPipeline(nil)
		assert.Nil(t, pipeline)
		assert.ErrorIs(t, err, ErrWriterRequired)
	})
}

func TestIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("writes all records", func(t *testing.T) {
		pipeline, repo := newTestPipeline(t)

		var announcements []*core.Announcement
		for i := 0; i < 120; i++ {
			announcements = append(announcements, &core.Announcement{
				Title:  fmt.Sprintf("Announcement %d", i),
				Sender: "Front Office",
				SentAt: "2025-06-10T08:00:00Z",
			})
		}

		written, err := pipeline.Ingest(ctx, announcements...)
		require.NoError(t, err)
		assert.Equal(t, 120, written)

		stored, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, stored, 120)
	})

	t.Run("skips nil records", func(t *testing.T) {
		pipeline, repo := newTestPipeline(t)

		written, err := pipeline.Ingest(ctx,
			&core.Announcement{Title: "Keep", SentAt: "2025-06-10T08:00:00Z"},
			nil,
			&core.Announcement{Title: "Also Keep", SentAt: "2025-06-11T08:00:00Z"})
		require.NoError(t, err)
		assert.Equal(t, 2, written)

		stored, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})

	t.Run("empty import", func(t *testing.T) {
		pipeline, _ := newTestPipeline(t)

		written, err := pipeline.Ingest(ctx)
		assert.Zero(t, written)
		assert.ErrorIs(t, err, ErrEmptyImport)
	})
}

func TestImportFile(t *testing.T) {
	ctx := context.Background()

	t.Run("reads a JSON array", func(t *testing.T) {
		pipeline, repo := newTestPipeline(t, WithBatchSize(2))

		announcements := []*core.Announcement{
			{Title: "Annual Lemonade Sale", Sender: "Jessica Martin", SentAt: "2025-06-17T09:30:00Z"},
			{Title: "Field Trip Permission Slips", Sender: "Jessica Martin", SentAt: "2025-06-16T08:00:00Z"},
			{Title: "Library Renovation Update", Sender: "Front Office", SentAt: "2025-06-10T12:00:00Z"},
		}
		data, err := json.Marshal(announcements)
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "announcements.json")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		written, err := pipeline.ImportFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 3, written)

		stored, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, stored, 3)
	})

	t.Run("missing file", func(t *testing.T) {
		pipeline, _ := newTestPipeline(t)

		_, err := pipeline.ImportFile(ctx, filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		pipeline, _ := newTestPipeline(t)

		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := pipeline.ImportFile(ctx, path)
		assert.ErrorContains(t, err, "parsing import file")
	})
}
