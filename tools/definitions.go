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

// Definition describes a tool to the client: its name, a human-readable
// description, and a JSON Schema for its arguments.
type Definition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

func searchAnnouncementsDefinition() Definition {
	return Definition{
		Name:        "search_announcements",
		Description: "Search school announcements by keywords, sender, or date range",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search keywords or phrase to find in announcements",
				},
				"sender": map[string]any{
					"type":        "string",
					"description": "Filter by sender name (optional)",
				},
				"date_filter": map[string]any{
					"type":        "string",
					"description": "Natural language date filter like 'last week', 'this month', 'June 2025' (optional)",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 15, max: 50)",
					"default":     15,
				},
			},
			"required": []string{"query"},
		},
	}
}

func announcementsByDateDefinition() Definition {
	return Definition{
		Name:        "get_announcements_by_date",
		Description: "Get school announcements from a specific date or date range using natural language",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"date_query": map[string]any{
					"type":        "string",
					"description": "Natural language date like 'today', 'last week', 'June 2025'",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 15)",
					"default":     15,
				},
			},
			"required": []string{"date_query"},
		},
	}
}

func recentAnnouncementsDefinition() Definition {
	return Definition{
		Name:        "get_recent_announcements",
		Description: "Get the most recent school announcements",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{
					"type":        "integer",
					"description": "Number of recent announcements to return (default: 10)",
					"default":     10,
				},
			},
		},
	}
}

func createCalendarEventDefinition() Definition {
	return Definition{
		Name:        "create_calendar_event",
		Description: "Create a calendar event, automatically detecting whether it should be all-day or timed",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "Event title",
				},
				"date": map[string]any{
					"type":        "string",
					"description": "Event date in YYYY-MM-DD format",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "Event description (optional)",
				},
				"location": map[string]any{
					"type":        "string",
					"description": "Event location (optional)",
				},
				"event_type": map[string]any{
					"type":        "string",
					"description": "Event type: 'auto' to detect from content, 'all_day', or 'timed'",
					"enum":        []string{"auto", "all_day", "timed"},
					"default":     "auto",
				},
				"start_time": map[string]any{
					"type":        "string",
					"description": "Start time in HH:MM format for timed events (default: 09:00)",
					"default":     "09:00",
				},
				"duration_hours": map[string]any{
					"type":        "integer",
					"description": "Event duration in hours for timed events (default: 1)",
					"default":     1,
				},
			},
			"required": []string{"title", "date"},
		},
	}
}

func createReminderDefinition() Definition {
	return Definition{
		Name:        "create_reminder",
		Description: "Create an all-day reminder a number of days before a main event",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "What to be reminded about",
				},
				"main_event_date": map[string]any{
					"type":        "string",
					"description": "Date of the main event in YYYY-MM-DD format",
				},
				"reminder_days_before": map[string]any{
					"type":        "integer",
					"description": "How many days before the event to set the reminder (default: 3)",
					"default":     3,
				},
				"description": map[string]any{
					"type":        "string",
					"description": "Additional reminder details (optional)",
				},
			},
			"required": []string{"title", "main_event_date"},
		},
	}
}

func createEventWithReminderDefinition() Definition {
	return Definition{
		Name:        "create_event_with_reminder",
		Description: "Create a calendar event together with a preparation reminder before it",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "Event title",
				},
				"event_date": map[string]any{
					"type":        "string",
					"description": "Event date in YYYY-MM-DD format",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "Event description (optional)",
				},
				"location": map[string]any{
					"type":        "string",
					"description": "Event location (optional)",
				},
				"event_type": map[string]any{
					"type":        "string",
					"description": "Event type: 'auto' to detect from content, 'all_day', or 'timed'",
					"enum":        []string{"auto", "all_day", "timed"},
					"default":     "auto",
				},
				"start_time": map[string]any{
					"type":        "string",
					"description": "Start time in HH:MM format for timed events (default: 09:00)",
					"default":     "09:00",
				},
				"duration_hours": map[string]any{
					"type":        "integer",
					"description": "Event duration in hours for timed events (default: 1)",
					"default":     1,
				},
				"create_reminder_flag": map[string]any{
					"type":        "boolean",
					"description": "Whether to also create a reminder (default: true)",
					"default":     true,
				},
				"reminder_days_before": map[string]any{
					"type":        "integer",
					"description": "How many days before the event to set the reminder (default: 3)",
					"default":     3,
				},
			},
			"required": []string{"title", "event_date"},
		},
	}
}

func analyzeDocumentDefinition() Definition {
	return Definition{
		Name:        "analyze_document",
		Description: "Analyze a school document with a chosen analysis type",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "Document text to analyze",
				},
				"analysis_type": map[string]any{
					"type":        "string",
					"description": "Type of analysis: 'summary', 'events', or 'action_items'",
					"enum":        []string{"summary", "events", "action_items"},
					"default":     "summary",
				},
			},
			"required": []string{"text"},
		},
	}
}

func summarizeAnnouncementDefinition() Definition {
	return Definition{
		Name:        "summarize_announcement",
		Description: "Summarize a school announcement with key points, dates, and action items",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "Announcement text to summarize",
				},
			},
			"required": []string{"text"},
		},
	}
}

func extractEventsDefinition() Definition {
	return Definition{
		Name:        "extract_events",
		Description: "Extract calendar-worthy events from a school document",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "Document text to extract events from",
				},
			},
			"required": []string{"text"},
		},
	}
}

func extractActionItemsDefinition() Definition {
	return Definition{
		Name:        "extract_action_items",
		Description: "Extract action items and deadlines from a school document",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "Document text to extract action items from",
				},
			},
			"required": []string{"text"},
		},
	}
}
