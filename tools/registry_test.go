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
	"testing"

	"github.com/poiesic/schoolbridge/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFullRegistry(t *testing.T) *Registry {
	t.Helper()

	announcements := newAnnouncementTools(t, sampleRecords()...)
	cal, _ := newCalendarTools(t, okWebhook(t, nil))
	docs := newDocumentTools(t, mock.NewMockAnalyzer())
	return NewRegistry(announcements, cal, docs)
}

func TestRegistryDefinitions(t *testing.T) {
	t.Run("all tools registered", func(t *testing.T) {
		registry := newFullRegistry(t)

		defs := registry.Definitions()
		require.Len(t, defs, 10)

		names := make([]string, 0, len(defs))
		for _, def := range defs {
			names = append(names, def.Name)
		}
		assert.Equal(t, []string{
			"search_announcements",
			"get_announcements_by_date",
			"get_recent_announcements",
			"create_calendar_event",
			"create_reminder",
			"create_event_with_reminder",
			"analyze_document",
			"summarize_announcement",
			"extract_events",
			"extract_action_items",
		}, names)
	})

	t.Run("nil groups skipped", func(t *testing.T) {
		announcements := newAnnouncementTools(t, sampleRecords()...)
		registry := NewRegistry(announcements, nil, nil)

		assert.Len(t, registry.Definitions(), 3)
	})

	t.Run("schemas carry required fields", func(t *testing.T) {
		registry := newFullRegistry(t)

		for _, def := range registry.Definitions() {
			assert.Equal(t, "object", def.InputSchema["type"], def.Name)
			assert.Contains(t, def.InputSchema, "properties", def.Name)
		}
	})
}

func TestRegistryCall(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown tool", func(t *testing.T) {
		registry := newFullRegistry(t)

		out := registry.Call(ctx, "delete_everything", nil)

		assert.Equal(t, "Unknown tool: delete_everything", out)
	})

	t.Run("missing required argument", func(t *testing.T) {
		registry := newFullRegistry(t)

		out := registry.Call(ctx, "search_announcements", map[string]any{})

		assert.Equal(t, "Error: Missing required argument 'query'", out)
	})

	t.Run("search with json numeric limit", func(t *testing.T) {
		registry := newFullRegistry(t)

		out := registry.Call(ctx, "search_announcements", map[string]any{
			"query": "lemonade sale",
			"limit": float64(5),
		})

		assert.Contains(t, out, "Found 1 announcements matching 'lemonade sale':")
	})

	t.Run("calendar event via registry", func(t *testing.T) {
		registry := newFullRegistry(t)

		out := registry.Call(ctx, "create_calendar_event", map[string]any{
			"title": "Movie Night",
			"date":  "2025-06-25",
		})

		assert.Contains(t, out, "Successfully created all-day calendar event: 'Movie Night'")
	})

	t.Run("event with reminder uses event_date key", func(t *testing.T) {
		registry := newFullRegistry(t)

		out := registry.Call(ctx, "create_event_with_reminder", map[string]any{
			"title":                "Book Fair",
			"event_date":           "2025-06-27",
			"create_reminder_flag": true,
			"reminder_days_before": float64(2),
		})

		assert.Contains(t, out, "Successfully created all-day calendar event: 'Book Fair'")
		assert.Contains(t, out, "Reminder Date: 2025-06-25 (2 days before)")
	})

	t.Run("document analysis via registry", func(t *testing.T) {
		registry := newFullRegistry(t)

		out := registry.Call(ctx, "analyze_document", map[string]any{
			"text":          "The school fair is on Friday at the gym.",
			"analysis_type": "events",
		})

		assert.Contains(t, out, "**Event Analysis**")
	})
}
