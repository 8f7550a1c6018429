package ai

import "context"

// AnalysisType selects which analysis pass to run over a document.
type AnalysisType string

const (
	AnalysisSummary     AnalysisType = "summary"
	AnalysisEvents      AnalysisType = "events"
	AnalysisActionItems AnalysisType = "action_items"
)

// Valid reports whether t names a known analysis pass.
func (t AnalysisType) Valid() bool {
	switch t {
	case AnalysisSummary, AnalysisEvents, AnalysisActionItems:
		return true
	}
	return false
}

// Analyzer runs AI analysis passes over announcement and document text.
// Implementations must be thread-safe for concurrent use.
type Analyzer interface {
	// Summarize produces a brief summary with key points, important dates,
	// and action items for parents and students.
	Summarize(ctx context.Context, text string) (*Summary, error)

	// ExtractEvents identifies events parents and students need to know
	// about. Routine classroom and administrative activity is excluded.
	ExtractEvents(ctx context.Context, text string) (*EventReport, error)

	// ExtractActionItems identifies tasks parents and students need to do,
	// with audience, deadline, and priority.
	ExtractActionItems(ctx context.Context, text string) (*ActionItemReport, error)
}
