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
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/poiesic/schoolbridge/core"
)

const (
	defaultBaseURL = "https://api.airtable.com/v0"
	defaultTable   = "Announcements"
	defaultTimeout = 30 * time.Second

	// Airtable enforces 5 requests per second per base.
	requestsPerSecond = 5
)

// Repository reads announcements from an Airtable base.
type Repository struct {
	apiKey  string
	baseID  string
	table   string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// Option configures a Repository.
type Option func(*Repository) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithTable overrides the table name.
// Default is "Announcements".
func WithTable(table string) Option {
	return func(r *Repository) error {
		if table != "" {
			r.table = table
		}
		return nil
	}
}

// WithBaseURL overrides the API endpoint. Tests point this at a local server.
func WithBaseURL(baseURL string) Option {
	return func(r *Repository) error {
		if baseURL != "" {
			r.baseURL = baseURL
		}
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Repository) error {
		if client != nil {
			r.client = client
		}
		return nil
	}
}

// NewRepository creates an Airtable-backed announcement repository.
func NewRepository(apiKey, baseID string, opts ...Option) (*Repository, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	if baseID == "" {
		return nil, ErrBaseIDRequired
	}

	r := &Repository{
		apiKey:  apiKey,
		baseID:  baseID,
		table:   defaultTable,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(requestsPerSecond, 1),
		logger:  slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// apiAttachment mirrors Airtable's attachment field shape.
type apiAttachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// apiFields is the projection of a record's fields. Missing fields decode to
// empty values; a record is never dropped for incompleteness.
type apiFields struct {
	Title       string          `json:"Title"`
	SentBy      string          `json:"SentBy"`
	SentTime    string          `json:"SentTime"`
	Description string          `json:"Description"`
	Attachments []apiAttachment `json:"Attachments"`
}

type apiRecord struct {
	ID     string    `json:"id"`
	Fields apiFields `json:"fields"`
}

type listResponse struct {
	Records []apiRecord `json:"records"`
	Offset  string      `json:"offset"`
}

// ListAll returns every announcement in the table, most recent first.
func (r *Repository) ListAll(ctx context.Context) ([]*core.Announcement, error) {
	return r.list(ctx, "")
}

// ListByDateRange returns announcements whose send time falls within the
// inclusive [start, end] calendar-date range. Bounds are YYYY-MM-DD strings;
// filtering happens server side via an Airtable formula.
func (r *Repository) ListByDateRange(ctx context.Context, start, end string) ([]*core.Announcement, error) {
	formula := fmt.Sprintf(
		"AND(IS_AFTER({SentTime}, '%sT00:00:00.000Z'), IS_BEFORE({SentTime}, '%sT23:59:59.000Z'))",
		start, end,
	)
	return r.list(ctx, formula)
}

// Close releases resources held by the repository. The HTTP client has
// nothing to release, so this is a no-op kept for interface symmetry.
func (r *Repository) Close() error {
	return nil
}

func (r *Repository) list(ctx context.Context, formula string) ([]*core.Announcement, error) {
	var records []apiRecord
	offset := ""
	for {
		page, err := r.fetchPage(ctx, formula, offset)
		if err != nil {
			return nil, err
		}
		records = append(records, page.Records...)
		if page.Offset == "" {
			break
		}
		offset = page.Offset
	}

	// Most recent first. SentTime is ISO 8601, so string order is time order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Fields.SentTime > records[j].Fields.SentTime
	})

	out := make([]*core.Announcement, 0, len(records))
	for _, rec := range records {
		out = append(out, toAnnouncement(rec))
	}
	r.logger.Debug("fetched announcements", "count", len(out), "filtered", formula != "")
	return out, nil
}

func (r *Repository) fetchPage(ctx context.Context, formula, offset string) (*listResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s", r.baseURL, r.baseID, url.PathEscape(r.table))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	q := req.URL.Query()
	if formula != "" {
		q.Set("filterByFormula", formula)
	}
	if offset != "" {
		q.Set("offset", offset)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, body)
	}

	var page listResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	return &page, nil
}

func toAnnouncement(rec apiRecord) *core.Announcement {
	a := &core.Announcement{
		Id:          core.IDFromContent(rec.ID),
		Title:       rec.Fields.Title,
		Sender:      rec.Fields.SentBy,
		SentAt:      rec.Fields.SentTime,
		Description: rec.Fields.Description,
	}
	for _, att := range rec.Fields.Attachments {
		a.Attachments = append(a.Attachments, core.Attachment{
			Filename: att.Filename,
			URL:      att.URL,
		})
	}
	return a
}
