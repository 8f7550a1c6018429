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


// Package memory provides a slice-backed announcement repository for tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/poiesic/schoolbridge/core"
)

// Repository is an in-memory storage.AnnouncementRepository.
//
// Records are returned most-recent-first, like the production backends.
// Set Err to make every list call fail; tests use this to exercise the
// engine's degrade-to-empty behavior.
type Repository struct {
	mu        sync.RWMutex
	records   []*core.Announcement
	Err       error
	listCalls int
	closed    bool
}

// NewRepository creates an in-memory repository seeded with records.
func NewRepository(records ...*core.Announcement) *Repository {
	return &Repository{records: records}
}

// Put appends records to the repository.
func (r *Repository) Put(records ...*core.Announcement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)
}

// ListAll returns every stored announcement, most recent first.
func (r *Repository) ListAll(ctx context.Context) ([]*core.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*core.Announcement, len(r.records))
	copy(out, r.records)
	sortRecent(out)
	return out, nil
}

// ListByDateRange returns announcements inside [start 00:00:00, end 23:59:59].
// Records with unparseable timestamps are excluded from date-bounded queries.
func (r *Repository) ListByDateRange(ctx context.Context, start, end string) ([]*core.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.Err != nil {
		return nil, r.Err
	}

	startT, err := time.Parse(core.DateLayout, start)
	if err != nil {
		return nil, err
	}
	endT, err := time.Parse(core.DateLayout, end)
	if err != nil {
		return nil, err
	}
	endT = endT.AddDate(0, 0, 1) // end of day, exclusive upper bound

	out := make([]*core.Announcement, 0, len(r.records))
	for _, a := range r.records {
		ts, ok := a.SentAtTime()
		if !ok {
			continue
		}
		if !ts.Before(startT) && ts.Before(endT) {
			out = append(out, a)
		}
	}
	sortRecent(out)
	return out, nil
}

// ListCalls returns how many list operations were issued.
func (r *Repository) ListCalls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listCalls
}

// Close marks the repository closed.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func sortRecent(records []*core.Announcement) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SentAt > records[j].SentAt
	})
}
