package ai

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// ErrAnalyzerRequired is returned when constructing a Batch without an analyzer.
var ErrAnalyzerRequired = errors.New("analyzer is required")

// Batch fans analysis requests out over a bounded worker pool. Results come
// back in input order; a failed document carries its error in place without
// aborting the rest of the batch.
type Batch struct {
	analyzer Analyzer
	pool     *ants.Pool
	logger   *slog.Logger
}

// BatchResult pairs one document's analysis output with its input position.
type BatchResult[T any] struct {
	Index  int
	Output T
	Err    error
}

// NewBatch creates a batch runner over the given analyzer.
// If workers is not positive, a default based on CPU count is used.
func NewBatch(analyzer Analyzer, workers int) (*Batch, error) {
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}

	if workers <= 0 {
		workers = runtime.NumCPU() / 2
		if workers < 1 {
			workers = 1
		}
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}

	return &Batch{
		analyzer: analyzer,
		pool:     pool,
		logger:   slog.Default(),
	}, nil
}

// Release releases the worker pool.
// The batch should not be used after calling Release.
func (b *Batch) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}

// SummarizeAll summarizes each text concurrently.
func (b *Batch) SummarizeAll(ctx context.Context, texts []string) []BatchResult[*Summary] {
	return runBatch(b, ctx, texts, b.analyzer.Summarize)
}

// ExtractEventsAll extracts events from each text concurrently.
func (b *Batch) ExtractEventsAll(ctx context.Context, texts []string) []BatchResult[*EventReport] {
	return runBatch(b, ctx, texts, b.analyzer.ExtractEvents)
}

// ExtractActionItemsAll extracts action items from each text concurrently.
func (b *Batch) ExtractActionItemsAll(ctx context.Context, texts []string) []BatchResult[*ActionItemReport] {
	return runBatch(b, ctx, texts, b.analyzer.ExtractActionItems)
}

func runBatch[T any](b *Batch, ctx context.Context, texts []string, fn func(context.Context, string) (T, error)) []BatchResult[T] {
	results := make([]BatchResult[T], len(texts))

	var wg sync.WaitGroup
	for i, text := range texts {
		results[i].Index = i

		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			out, err := fn(ctx, text)
			results[i].Output = out
			results[i].Err = err
			if err != nil {
				b.logger.Error("error analyzing document", "index", i, "err", err)
			}
		})
		if err != nil {
			wg.Done()
			results[i].Err = err
		}
	}
	wg.Wait()

	return results
}
