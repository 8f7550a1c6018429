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

package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/schoolbridge/core"
	"github.com/poiesic/schoolbridge/search"
)

const (
	defaultSearchLimit = 15
	defaultRecentLimit = 10
	defaultMaxLimit    = 50
)

// AnnouncementTools answers announcement retrieval tool calls through the
// search engine.
type AnnouncementTools struct {
	searcher     *search.Searcher
	defaultLimit int
	recentLimit  int
	maxLimit     int
	logger       *slog.Logger
}

// AnnouncementOption configures AnnouncementTools.
type AnnouncementOption func(*AnnouncementTools) error

// WithAnnouncementLogger sets the logger. A nil logger restores the default.
func WithAnnouncementLogger(logger *slog.Logger) AnnouncementOption {
	return func(t *AnnouncementTools) error {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger.With("component", "tools")
		return nil
	}
}

// WithLimits overrides the default and maximum result limits. Non-positive
// values keep the built-in defaults.
func WithLimits(defaultLimit, maxLimit int) AnnouncementOption {
	return func(t *AnnouncementTools) error {
		if defaultLimit > 0 {
			t.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			t.maxLimit = maxLimit
		}
		return nil
	}
}

func NewAnnouncementTools(searcher *search.Searcher, opts ...AnnouncementOption) (*AnnouncementTools, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	t := &AnnouncementTools{
		searcher:     searcher,
		defaultLimit: defaultSearchLimit,
		recentLimit:  defaultRecentLimit,
		maxLimit:     defaultMaxLimit,
		logger:       slog.Default().With("component", "tools"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Search runs the combined filter pipeline and formats the results.
func (t *AnnouncementTools) Search(ctx context.Context, query, sender, dateFilter string, limit int) string {
	limit = core.ClampLimit(limit, t.defaultLimit, t.maxLimit)

	results := t.searcher.Search(ctx, core.SearchQuery{
		Query:    query,
		Sender:   sender,
		DateExpr: dateFilter,
		Limit:    limit,
	})

	if len(results) == 0 {
		return fmt.Sprintf("No announcements found matching '%s'", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d announcements matching '%s':\n\n", len(results), query)
	b.WriteString(formatAnnouncements(results))

	if len(results) >= limit {
		fmt.Fprintf(&b, "\nShowing first %d of %d total results. Would you like to see more announcements or filter further?",
			limit, len(results))
	}
	return b.String()
}

// ByDate resolves a natural language date expression and returns the
// announcements inside the range, newest first.
func (t *AnnouncementTools) ByDate(ctx context.Context, dateQuery string, limit int) string {
	limit = core.ClampLimit(limit, t.defaultLimit, t.maxLimit)

	results, dateRange := t.searcher.ByDateRange(ctx, dateQuery, limit)
	if len(results) == 0 {
		return fmt.Sprintf("No announcements found for '%s' (%s to %s)",
			dateQuery, dateRange.StartDate(), dateRange.EndDate())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d announcements from %s (%s to %s):\n\n",
		len(results), dateQuery, dateRange.StartDate(), dateRange.EndDate())
	b.WriteString(formatAnnouncements(results))
	return b.String()
}

// Recent returns the most recent announcements.
func (t *AnnouncementTools) Recent(ctx context.Context, limit int) string {
	limit = core.ClampLimit(limit, t.recentLimit, t.maxLimit)

	results := t.searcher.Recent(ctx, limit)
	if len(results) == 0 {
		return "No recent announcements found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d recent announcements:\n\n", len(results))
	b.WriteString(formatAnnouncements(results))
	return b.String()
}
