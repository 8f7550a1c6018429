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

// Package badgerstore implements a local, writable announcement store on
// BadgerDB. It serves offline work and seeded test fixtures; the canonical
// feed lives in the airtable package.
package badgerstore

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/schoolbridge/core"
	"github.com/poiesic/schoolbridge/storage"
)

// Repository implements storage.AnnouncementRepository and
// storage.AnnouncementWriter for BadgerDB.
type Repository struct {
	backend *Backend
}

var (
	_ storage.AnnouncementRepository = (*Repository)(nil)
	_ storage.AnnouncementWriter     = (*Repository)(nil)
)

// NewRepository creates a new Repository over an open backend.
func NewRepository(backend *Backend) *Repository {
	return &Repository{backend: backend}
}

// Close releases repository resources. The backend is closed separately by
// its owner.
func (r *Repository) Close() error {
	return nil
}

// PutAnnouncements stores announcements, generating content-based IDs for
// records with ID 0. Re-putting identical content overwrites in place.
func (r *Repository) PutAnnouncements(ctx context.Context, announcements ...*core.Announcement) ([]*core.Announcement, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, a := range announcements {
			if err := core.ValidateAnnouncement(a); err != nil {
				return err
			}
			if a.Id == 0 {
				a.Id = contentID(a)
			}

			value, err := storage.MarshalAnnouncement(a)
			if err != nil {
				return err
			}
			if err := tx.Set(makeAnnouncementKey(a.Id), value); err != nil {
				return err
			}

			// Records without a parseable send time are stored but stay
			// invisible to date-range queries.
			if ts, ok := a.SentAtTime(); ok {
				if err := tx.Set(makeDateKey(ts, a.Id), marshalID(a.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return announcements, err
}

// ListAll retrieves every stored announcement, most recent first.
func (r *Repository) ListAll(ctx context.Context) ([]*core.Announcement, error) {
	var results []*core.Announcement
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(announcementPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.Announcement
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalAnnouncement(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// ISO 8601 timestamps sort correctly as strings.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SentAt > results[j].SentAt
	})
	return results, nil
}

// ListByDateRange retrieves announcements whose send timestamp falls within
// the inclusive [start, end] calendar-date range, most recent first.
func (r *Repository) ListByDateRange(ctx context.Context, start, end string) ([]*core.Announcement, error) {
	startTime, err := time.Parse(core.DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidDateBound, start)
	}
	endTime, err := time.Parse(core.DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidDateBound, end)
	}
	// End of the last day, microsecond resolution matching the index keys.
	endTime = endTime.Add(24*time.Hour - time.Microsecond)

	var results []*core.Announcement
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialDateKey(startTime)
		endKey := makePartialDateKey(endTime)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !strings.HasPrefix(string(key), announcementDatePrefix+":") {
				break
			}
			if slices.Compare(key[:len(endKey)], endKey) > 0 {
				break
			}

			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = unmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readAnnouncement(tx, recordID)
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// The index yields oldest first; callers expect most recent first.
	slices.Reverse(results)
	return results, nil
}

func (r *Repository) readAnnouncement(tx *badger.Txn, id core.ID) (*core.Announcement, error) {
	item, err := tx.Get(makeAnnouncementKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record *core.Announcement
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalAnnouncement(val)
		return err
	})
	return record, err
}

// contentID derives a stable ID from the fields that identify a notice.
func contentID(a *core.Announcement) core.ID {
	return core.IDFromContent(a.Title + "|" + a.Sender + "|" + a.SentAt)
}
