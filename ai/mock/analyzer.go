package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/schoolbridge/ai"
)

// MockAnalyzer is a test double for ai.Analyzer.
// It allows custom behavior injection via function fields.
type MockAnalyzer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, a simple deterministic summary is produced.
	SummarizeFunc func(ctx context.Context, text string) (*ai.Summary, error)

	// ExtractEventsFunc is called by ExtractEvents if set.
	// If nil, an empty event report is produced.
	ExtractEventsFunc func(ctx context.Context, text string) (*ai.EventReport, error)

	// ExtractActionItemsFunc is called by ExtractActionItems if set.
	// If nil, an empty action-item report is produced.
	ExtractActionItemsFunc func(ctx context.Context, text string) (*ai.ActionItemReport, error)

	// mu guards the call counters; ai.Batch invokes the analyzer from
	// multiple workers.
	mu              sync.Mutex
	summarizeCalls  int
	eventCalls      int
	actionItemCalls int
}

var _ ai.Analyzer = (*MockAnalyzer)(nil)

// NewMockAnalyzer creates a mock analyzer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{}
}

// Summarize produces a deterministic summary built from the input text.
func (m *MockAnalyzer) Summarize(ctx context.Context, text string) (*ai.Summary, error) {
	m.mu.Lock()
	m.summarizeCalls++
	m.mu.Unlock()

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text)
	}

	// Default: first sentence fragment as the summary, first words as points
	summary := text
	if idx := strings.IndexAny(text, ".!?"); idx > 0 {
		summary = text[:idx+1]
	}

	points := []string{}
	for i, word := range strings.Fields(text) {
		if i >= 3 {
			break
		}
		points = append(points, word)
	}

	return &ai.Summary{
		Summary:        summary,
		KeyPoints:      points,
		ImportantDates: []string{},
		ActionItems:    []string{},
	}, nil
}

// ExtractEvents returns an empty event report by default.
func (m *MockAnalyzer) ExtractEvents(ctx context.Context, text string) (*ai.EventReport, error) {
	m.mu.Lock()
	m.eventCalls++
	m.mu.Unlock()

	if m.ExtractEventsFunc != nil {
		return m.ExtractEventsFunc(ctx, text)
	}

	return &ai.EventReport{EventsFound: []ai.Event{}, TotalEvents: 0}, nil
}

// ExtractActionItems returns an empty action-item report by default.
func (m *MockAnalyzer) ExtractActionItems(ctx context.Context, text string) (*ai.ActionItemReport, error) {
	m.mu.Lock()
	m.actionItemCalls++
	m.mu.Unlock()

	if m.ExtractActionItemsFunc != nil {
		return m.ExtractActionItemsFunc(ctx, text)
	}

	return &ai.ActionItemReport{ActionItems: []ai.ActionItem{}, TotalItems: 0}, nil
}

// SummarizeCalls returns the number of times Summarize was called.
func (m *MockAnalyzer) SummarizeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summarizeCalls
}

// ExtractEventsCalls returns the number of times ExtractEvents was called.
func (m *MockAnalyzer) ExtractEventsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventCalls
}

// ExtractActionItemsCalls returns the number of times ExtractActionItems was called.
func (m *MockAnalyzer) ExtractActionItemsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.actionItemCalls
}

// Reset clears the call counts and custom functions.
func (m *MockAnalyzer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summarizeCalls = 0
	m.eventCalls = 0
	m.actionItemCalls = 0
	m.SummarizeFunc = nil
	m.ExtractEventsFunc = nil
	m.ExtractActionItemsFunc = nil
}
