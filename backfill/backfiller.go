// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backfill

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/schoolbridge/core"
	"github.com/poiesic/schoolbridge/storage"
)

// Config holds configuration for a backfill run.
type Config struct {
	// BatchSize is the number of announcements written per store call
	BatchSize int

	// ReportInterval is how often to report progress (number of announcements)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Backfiller copies every announcement from a source repository into a
// destination writer.
type Backfiller struct {
	source   storage.AnnouncementRepository
	dest     storage.AnnouncementWriter
	config   *Config
	progress io.Writer
}

// NewBackfiller creates a backfiller.
// progress: where to write progress output (typically os.Stderr)
func NewBackfiller(source storage.AnnouncementRepository, dest storage.AnnouncementWriter, config *Config, progress io.Writer) (*Backfiller, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if dest == nil {
		return nil, ErrWriterRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}

	return &Backfiller{
		source:   source,
		dest:     dest,
		config:   config,
		progress: progress,
	}, nil
}

// Run fetches every announcement from the source and writes it to the
// destination in batches. The remote fetch and each batch write are retried
// with exponential backoff. Returns the number of announcements written.
func (b *Backfiller) Run(ctx context.Context) (int, error) {
	var announcements []*core.Announcement
	err := RetryWithBackoff(ctx, func() error {
		var fetchErr error
		announcements, fetchErr = b.source.ListAll(ctx)
		return fetchErr
	}, b.config.MaxRetries, b.config.RetryDelay)
	if err != nil {
		return 0, fmt.Errorf("fetching announcements from source: %w", err)
	}

	total := len(announcements)
	if total == 0 {
		fmt.Fprintf(b.progress, "No announcements found at source (0 records)\n")
		return 0, nil
	}

	fmt.Fprintf(b.progress, "Starting backfill of %d announcements (batch size: %d)\n",
		total, b.config.BatchSize)

	tracker := NewProgressTracker(b.progress, total, b.config.ReportInterval)
	tracker.Start()

	written := 0
	for start := 0; start < total; start += b.config.BatchSize {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		end := min(start+b.config.BatchSize, total)
		batch := announcements[start:end]

		err := RetryWithBackoff(ctx, func() error {
			_, putErr := b.dest.PutAnnouncements(ctx, batch...)
			return putErr
		}, b.config.MaxRetries, b.config.RetryDelay)
		if err != nil {
			return written, fmt.Errorf("writing batch after %d attempts: %w", b.config.MaxRetries, err)
		}

		written += len(batch)
		tracker.Increment(len(batch))
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(b.progress, "Backfill complete. Wrote %d announcements in %v (%.1f announcements/sec)\n",
		written, elapsed.Round(time.Second), float64(written)/elapsed.Seconds())

	return written, nil
}
