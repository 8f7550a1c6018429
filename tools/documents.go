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

	"github.com/poiesic/schoolbridge/ai"
)

const (
	minDocumentRunes = 10
	maxDocumentRunes = 10000
)

// DocumentTools answers AI document analysis tool calls.
type DocumentTools struct {
	analyzer ai.Analyzer
	logger   *slog.Logger
}

// DocumentOption configures DocumentTools.
type DocumentOption func(*DocumentTools) error

// WithDocumentLogger sets the logger. A nil logger restores the default.
func WithDocumentLogger(logger *slog.Logger) DocumentOption {
	return func(t *DocumentTools) error {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger.With("component", "tools")
		return nil
	}
}

func NewDocumentTools(analyzer ai.Analyzer, opts ...DocumentOption) (*DocumentTools, error) {
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}

	t := &DocumentTools{
		analyzer: analyzer,
		logger:   slog.Default().With("component", "tools"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Analyze validates the document text and runs the requested analysis.
func (t *DocumentTools) Analyze(ctx context.Context, text, analysisType string) string {
	kind := ai.AnalysisType(analysisType)
	if analysisType == "" {
		kind = ai.AnalysisSummary
	}
	if !kind.Valid() {
		return fmt.Sprintf("Error: Invalid analysis_type '%s'. Valid options: summary, events, action_items", analysisType)
	}

	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minDocumentRunes {
		return "Error: Document text is too short for meaningful analysis."
	}
	if runes := []rune(trimmed); len(runes) > maxDocumentRunes {
		trimmed = string(runes[:maxDocumentRunes]) + "... [truncated]"
		t.logger.Warn("document text truncated for analysis", "analysis_type", kind)
	}

	switch kind {
	case ai.AnalysisEvents:
		return t.extractEvents(ctx, trimmed)
	case ai.AnalysisActionItems:
		return t.extractActionItems(ctx, trimmed)
	default:
		return t.summarize(ctx, trimmed)
	}
}

// Summarize produces a structured summary of an announcement.
func (t *DocumentTools) Summarize(ctx context.Context, text string) string {
	return t.Analyze(ctx, text, string(ai.AnalysisSummary))
}

// ExtractEvents lists calendar-worthy events found in a document.
func (t *DocumentTools) ExtractEvents(ctx context.Context, text string) string {
	return t.Analyze(ctx, text, string(ai.AnalysisEvents))
}

// ExtractActionItems lists tasks and deadlines found in a document.
func (t *DocumentTools) ExtractActionItems(ctx context.Context, text string) string {
	return t.Analyze(ctx, text, string(ai.AnalysisActionItems))
}

func (t *DocumentTools) summarize(ctx context.Context, text string) string {
	summary, err := t.analyzer.Summarize(ctx, text)
	if err != nil {
		t.logger.Error("document summarization failed", "err", err)
		return fmt.Sprintf("Analysis failed: %v", err)
	}

	var b strings.Builder
	b.WriteString("**Document Summary**\n\n")
	fmt.Fprintf(&b, "%s\n", summary.Summary)

	if len(summary.KeyPoints) > 0 {
		b.WriteString("\n**Key Points:**\n")
		for _, point := range summary.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", point)
		}
	}
	if len(summary.ImportantDates) > 0 {
		b.WriteString("\n**Important Dates:**\n")
		for _, date := range summary.ImportantDates {
			fmt.Fprintf(&b, "- %s\n", date)
		}
	}
	if len(summary.ActionItems) > 0 {
		b.WriteString("\n**Action Items:**\n")
		for i, item := range summary.ActionItems {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (t *DocumentTools) extractEvents(ctx context.Context, text string) string {
	report, err := t.analyzer.ExtractEvents(ctx, text)
	if err != nil {
		t.logger.Error("event extraction failed", "err", err)
		return fmt.Sprintf("Analysis failed: %v", err)
	}

	if report.TotalEvents == 0 || len(report.EventsFound) == 0 {
		return "**Event Analysis**\n\nNo calendar-worthy events found in this document."
	}

	var b strings.Builder
	b.WriteString("**Event Analysis**\n\n")
	fmt.Fprintf(&b, "Found %d event(s):\n", len(report.EventsFound))
	for i, event := range report.EventsFound {
		fmt.Fprintf(&b, "\n%d. **%s**\n", i+1, event.Title)
		fmt.Fprintf(&b, "   Date: %s\n", event.Date)
		fmt.Fprintf(&b, "   Time: %s\n", event.Time)
		if event.Location != "" && event.Location != "Unknown" {
			fmt.Fprintf(&b, "   Location: %s\n", event.Location)
		}
		if event.Description != "" {
			fmt.Fprintf(&b, "   Description: %s\n", event.Description)
		}
		if event.SuppliesNeeded != "" && event.SuppliesNeeded != "None" {
			fmt.Fprintf(&b, "   Supplies Needed: %s\n", event.SuppliesNeeded)
			if event.SuppliesDeadline != "" && event.SuppliesDeadline != "Unknown" {
				fmt.Fprintf(&b, "   Supplies Deadline: %s\n", event.SuppliesDeadline)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (t *DocumentTools) extractActionItems(ctx context.Context, text string) string {
	report, err := t.analyzer.ExtractActionItems(ctx, text)
	if err != nil {
		t.logger.Error("action item extraction failed", "err", err)
		return fmt.Sprintf("Analysis failed: %v", err)
	}

	if report.TotalItems == 0 || len(report.ActionItems) == 0 {
		return "**Action Items Analysis**\n\nNo action items found in this document."
	}

	var b strings.Builder
	b.WriteString("**Action Items Analysis**\n\n")
	fmt.Fprintf(&b, "Found %d action item(s):\n", len(report.ActionItems))
	for i, item := range report.ActionItems {
		fmt.Fprintf(&b, "\n%d. **%s** (%s priority)\n", i+1, item.Task, priorityLabel(item.Priority))
		fmt.Fprintf(&b, "   Who: %s\n", item.Who)
		fmt.Fprintf(&b, "   Deadline: %s\n", item.Deadline)
	}
	return strings.TrimRight(b.String(), "\n")
}

func priorityLabel(priority string) string {
	switch strings.ToLower(priority) {
	case "high", "medium", "low":
		return strings.ToLower(priority)
	default:
		return "medium"
	}
}
