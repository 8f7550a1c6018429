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

package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageBody(records []apiRecord, offset string) []byte {
	body, _ := json.Marshal(listResponse{Records: records, Offset: offset})
	return body
}

func newTestRepository(t *testing.T, handler http.HandlerFunc) *Repository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	repo, err := NewRepository("key-test", "base-test", WithBaseURL(server.URL))
	require.NoError(t, err)
	return repo
}

func TestNewRepository(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		repo, err := NewRepository("key", "base")
		require.NoError(t, err)
		assert.NotNil(t, repo)
		assert.NoError(t, repo.Close())
	})

	t.Run("missing api key", func(t *testing.T) {
		_, err := NewRepository("", "base")
		assert.Equal(t, ErrAPIKeyRequired, err)
	})

	t.Run("missing base id", func(t *testing.T) {
		_, err := NewRepository("key", "")
		assert.Equal(t, ErrBaseIDRequired, err)
	})
}

func TestListAll(t *testing.T) {
	records := []apiRecord{
		{ID: "rec1", Fields: apiFields{Title: "Older", SentTime: "2025-06-10T08:00:00Z"}},
		{ID: "rec2", Fields: apiFields{
			Title:       "Newer",
			SentBy:      "Front Office",
			SentTime:    "2025-06-17T09:00:00Z",
			Description: "Details inside",
			Attachments: []apiAttachment{{Filename: "flyer.pdf", URL: "https://example.com/flyer.pdf"}},
		}},
	}

	var gotAuth string
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write(pageBody(records, ""))
	})

	out, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Bearer key-test", gotAuth)
	// Most recent first regardless of API order.
	assert.Equal(t, "Newer", out[0].Title)
	assert.Equal(t, "Front Office", out[0].Sender)
	assert.Equal(t, "2025-06-17T09:00:00Z", out[0].SentAt)
	require.Len(t, out[0].Attachments, 1)
	assert.Equal(t, "flyer.pdf", out[0].Attachments[0].Filename)
	assert.Equal(t, "Older", out[1].Title)
	assert.NotZero(t, out[0].Id)
}

func TestListAll_Pagination(t *testing.T) {
	pages := map[string][]byte{
		"": pageBody([]apiRecord{
			{ID: "rec1", Fields: apiFields{Title: "First", SentTime: "2025-06-17T09:00:00Z"}},
		}, "page2"),
		"page2": pageBody([]apiRecord{
			{ID: "rec2", Fields: apiFields{Title: "Second", SentTime: "2025-06-16T09:00:00Z"}},
		}, ""),
	}

	var calls int
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write(pages[r.URL.Query().Get("offset")])
	})

	out, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, out, 2)
	assert.Equal(t, "First", out[0].Title)
	assert.Equal(t, "Second", out[1].Title)
}

func TestListByDateRange(t *testing.T) {
	var gotFormula string
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		gotFormula = r.URL.Query().Get("filterByFormula")
		w.Write(pageBody([]apiRecord{
			{ID: "rec1", Fields: apiFields{Title: "In range", SentTime: "2025-06-17T09:00:00Z"}},
		}, ""))
	})

	out, err := repo.ListByDateRange(context.Background(), "2025-06-16", "2025-06-22")
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t,
		"AND(IS_AFTER({SentTime}, '2025-06-16T00:00:00.000Z'), IS_BEFORE({SentTime}, '2025-06-22T23:59:59.000Z'))",
		gotFormula)
}

func TestList_MissingFields(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records":[{"id":"rec1","fields":{}}]}`))
	})

	out, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Title)
	assert.Empty(t, out[0].Sender)
	assert.Empty(t, out[0].Attachments)
}

func TestList_ErrorStatus(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"NOT_AUTHORIZED"}`, http.StatusUnauthorized)
	})

	_, err := repo.ListAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestList_MalformedBody(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := repo.ListAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
}
