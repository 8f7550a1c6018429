package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/poiesic/schoolbridge/core"
	"github.com/poiesic/schoolbridge/storage"
)

// Searcher is the combined announcement filter: date-bounded fetch, sender
// narrowing, and relevance-ranked text search composed into one pipeline.
//
// A Searcher holds no mutable state between invocations; every call builds
// and discards its own working list, so concurrent use needs no locking.
type Searcher struct {
	repo      storage.AnnouncementRepository
	stopWords StopWords
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithClock sets the reference-time source used by date resolution.
// Default is time.Now. Tests use this to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) error {
		if now == nil {
			now = time.Now
		}
		s.now = now
		return nil
	}
}

// NewSearcher creates a new searcher over the given record store.
func NewSearcher(repo storage.AnnouncementRepository, stopWords StopWords, opts ...Option) (*Searcher, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	s := &Searcher{
		repo:      repo,
		stopWords: stopWords,
		now:       time.Now,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ResolveDateExpression maps a natural-language date expression to a
// concrete range. Exposed so callers can report the resolved range alongside
// results.
func (s *Searcher) ResolveDateExpression(expr string) core.DateRange {
	return ResolveRange(expr, s.now())
}

// Search runs the combined filter pipeline and returns the ranked, bounded
// result list. A record-store failure yields an empty list, never an error;
// "no results" and "fetch failed" are distinguished only by the store's own
// logging.
func (s *Searcher) Search(ctx context.Context, q core.SearchQuery) []*core.Announcement {
	return s.SearchWithMonitor(ctx, q, nil)
}

// SearchWithMonitor runs the pipeline with stage callbacks.
func (s *Searcher) SearchWithMonitor(ctx context.Context, q core.SearchQuery, monitor SearchMonitor) []*core.Announcement {
	if monitor == nil {
		monitor = noopMonitor{}
	}
	monitor.Start(q)

	// 1. Fetch the candidate set, date-bounded when an expression was given.
	var (
		candidates []*core.Announcement
		err        error
	)
	if q.DateExpr != "" {
		r := s.ResolveDateExpression(q.DateExpr)
		monitor.AfterDateResolution(r)
		candidates, err = s.repo.ListByDateRange(ctx, r.StartDate(), r.EndDate())
	} else {
		candidates, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		s.logger.Error("error fetching announcements", "err", err)
		results := []*core.Announcement{}
		monitor.Finish(results)
		return results
	}
	monitor.AfterFetch(candidates)

	// 2. Narrow by sender substring.
	if q.Sender != "" {
		senderLower := strings.ToLower(q.Sender)
		kept := candidates[:0]
		for _, a := range candidates {
			if strings.Contains(strings.ToLower(a.Sender), senderLower) {
				kept = append(kept, a)
			}
		}
		candidates = kept
		monitor.AfterSenderFilter(candidates)
	}

	// 3. Score, drop zero-score candidates, and rank. The sort is stable:
	// equal scores keep their fetch order.
	if q.Query != "" {
		keywords := s.stopWords.Filter(strings.Fields(q.Query))
		s.logger.Debug("search keywords", "query", q.Query, "keywords", keywords)

		scored := make([]*core.ScoredAnnouncement, 0, len(candidates))
		for _, a := range candidates {
			if sc := Score(a, q.Query, keywords); sc > 0 {
				scored = append(scored, &core.ScoredAnnouncement{Announcement: a, Score: sc})
			}
		}
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Score > scored[j].Score
		})
		monitor.AfterTextRank(scored)

		candidates = make([]*core.Announcement, 0, len(scored))
		for _, sa := range scored {
			candidates = append(candidates, sa.Announcement)
		}
	}

	// 4. Truncate to the caller's pre-clamped limit.
	if q.Limit > 0 && len(candidates) > q.Limit {
		candidates = candidates[:q.Limit]
	}
	monitor.Finish(candidates)
	return candidates
}

// Recent returns the most recent announcements, up to limit.
func (s *Searcher) Recent(ctx context.Context, limit int) []*core.Announcement {
	return s.Search(ctx, core.SearchQuery{Limit: limit})
}

// ByDateRange resolves a date expression and returns announcements within
// the range, along with the range itself for reporting.
func (s *Searcher) ByDateRange(ctx context.Context, expr string, limit int) ([]*core.Announcement, core.DateRange) {
	r := s.ResolveDateExpression(expr)
	return s.Search(ctx, core.SearchQuery{DateExpr: expr, Limit: limit}), r
}
