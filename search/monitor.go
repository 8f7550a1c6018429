package search

import "github.com/poiesic/schoolbridge/core"

// SearchMonitor receives callbacks at each stage of the filter pipeline.
// Implementations are used for tracing and for asserting pipeline behavior
// in tests; production callers pass nil.
type SearchMonitor interface {
	// Start is called once with the incoming query.
	Start(query core.SearchQuery)

	// AfterDateResolution is called with the resolved range when a date
	// expression was supplied.
	AfterDateResolution(r core.DateRange)

	// AfterFetch is called with the candidate set returned by the record store.
	AfterFetch(records []*core.Announcement)

	// AfterSenderFilter is called after sender narrowing, when a sender
	// filter was supplied.
	AfterSenderFilter(records []*core.Announcement)

	// AfterTextRank is called with the scored, ranked candidates, when a
	// text query was supplied. Zero-score candidates are already dropped.
	AfterTextRank(scored []*core.ScoredAnnouncement)

	// Finish is called once with the truncated final result list.
	Finish(results []*core.Announcement)
}

type noopMonitor struct{}

func (noopMonitor) Start(core.SearchQuery)                     {}
func (noopMonitor) AfterDateResolution(core.DateRange)         {}
func (noopMonitor) AfterFetch([]*core.Announcement)            {}
func (noopMonitor) AfterSenderFilter([]*core.Announcement)     {}
func (noopMonitor) AfterTextRank([]*core.ScoredAnnouncement)   {}
func (noopMonitor) Finish([]*core.Announcement)                {}
