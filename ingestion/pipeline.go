package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/schoolbridge/core"
	"github.com/poiesic/schoolbridge/storage"
)

const defaultBatchSize = 50

// Pipeline writes announcements into a store in concurrent batches.
type Pipeline struct {
	writer    storage.AnnouncementWriter
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many announcements each worker writes at once.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size > 0 {
			p.batchSize = size
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "ingestion")
		return nil
	}
}

// NewPipeline creates a new import pipeline.
func NewPipeline(writer storage.AnnouncementWriter, opts ...Option) (*Pipeline, error) {
	if writer == nil {
		return nil, ErrWriterRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		writer:    writer,
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default().With("component", "ingestion"),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest validates the announcements and writes them in concurrent batches.
// Invalid records are skipped with a warning. The returned count is the
// number of records handed to the store.
func (p *Pipeline) Ingest(ctx context.Context, announcements ...*core.Announcement) (int, error) {
	valid := make([]*core.Announcement, 0, len(announcements))
	for _, a := range announcements {
		if err := core.ValidateAnnouncement(a); err != nil {
			p.logger.Warn("skipping invalid announcement", "err", err)
			continue
		}
		valid = append(valid, a)
	}
	if len(valid) == 0 {
		return 0, ErrEmptyImport
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		written  int
	)

	for start := 0; start < len(valid); start += p.batchSize {
		end := min(start+p.batchSize, len(valid))
		batch := valid[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			stored, err := p.writer.PutAnnouncements(ctx, batch...)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				p.logger.Error("error writing announcement batch", "size", len(batch), "err", err)
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			written += len(stored)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
		}
	}

	wg.Wait()
	return written, firstErr
}

// ImportFile reads a JSON array of announcements from a file and ingests
// them. Returns the number of records written.
func (p *Pipeline) ImportFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading import file: %w", err)
	}

	var announcements []*core.Announcement
	if err := json.Unmarshal(data, &announcements); err != nil {
		return 0, fmt.Errorf("parsing import file: %w", err)
	}

	return p.Ingest(ctx, announcements...)
}

// Release releases the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
