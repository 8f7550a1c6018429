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
	"encoding/json"
	"fmt"
)

// Handler executes one tool call. Arguments arrive as decoded JSON; the
// return value is the text shown to the assistant.
type Handler func(ctx context.Context, args map[string]any) string

// Tool pairs a definition with its handler.
type Tool struct {
	Definition Definition
	Handle     Handler
}

// Registry holds the available tools in registration order. Tool groups
// whose backing service is not configured are simply absent.
type Registry struct {
	tools  []Tool
	byName map[string]Tool
}

// NewRegistry wires the tool groups into a registry. Nil groups are skipped
// so a deployment without, say, a calendar webhook still serves the rest.
func NewRegistry(announcements *AnnouncementTools, cal *CalendarTools, docs *DocumentTools) *Registry {
	r := &Registry{byName: make(map[string]Tool)}

	if announcements != nil {
		r.register(searchAnnouncementsDefinition(), func(ctx context.Context, args map[string]any) string {
			query, ok := requireString(args, "query")
			if !ok {
				return missingArgument("query")
			}
			return announcements.Search(ctx,
				query,
				stringArg(args, "sender", ""),
				stringArg(args, "date_filter", ""),
				intArg(args, "limit", 0))
		})
		r.register(announcementsByDateDefinition(), func(ctx context.Context, args map[string]any) string {
			dateQuery, ok := requireString(args, "date_query")
			if !ok {
				return missingArgument("date_query")
			}
			return announcements.ByDate(ctx, dateQuery, intArg(args, "limit", 0))
		})
		r.register(recentAnnouncementsDefinition(), func(ctx context.Context, args map[string]any) string {
			return announcements.Recent(ctx, intArg(args, "limit", 0))
		})
	}

	if cal != nil {
		r.register(createCalendarEventDefinition(), func(ctx context.Context, args map[string]any) string {
			eventArgs, errMsg := eventArgsFrom(args, "date")
			if errMsg != "" {
				return errMsg
			}
			return cal.CreateEvent(ctx, eventArgs)
		})
		r.register(createReminderDefinition(), func(ctx context.Context, args map[string]any) string {
			title, ok := requireString(args, "title")
			if !ok {
				return missingArgument("title")
			}
			mainEventDate, ok := requireString(args, "main_event_date")
			if !ok {
				return missingArgument("main_event_date")
			}
			return cal.CreateReminder(ctx,
				title,
				mainEventDate,
				intArg(args, "reminder_days_before", 0),
				stringArg(args, "description", ""))
		})
		r.register(createEventWithReminderDefinition(), func(ctx context.Context, args map[string]any) string {
			eventArgs, errMsg := eventArgsFrom(args, "event_date")
			if errMsg != "" {
				return errMsg
			}
			return cal.CreateEventWithReminder(ctx,
				eventArgs,
				boolArg(args, "create_reminder_flag", true),
				intArg(args, "reminder_days_before", 0))
		})
	}

	if docs != nil {
		r.register(analyzeDocumentDefinition(), func(ctx context.Context, args map[string]any) string {
			text, ok := requireString(args, "text")
			if !ok {
				return missingArgument("text")
			}
			return docs.Analyze(ctx, text, stringArg(args, "analysis_type", ""))
		})
		r.register(summarizeAnnouncementDefinition(), func(ctx context.Context, args map[string]any) string {
			text, ok := requireString(args, "text")
			if !ok {
				return missingArgument("text")
			}
			return docs.Summarize(ctx, text)
		})
		r.register(extractEventsDefinition(), func(ctx context.Context, args map[string]any) string {
			text, ok := requireString(args, "text")
			if !ok {
				return missingArgument("text")
			}
			return docs.ExtractEvents(ctx, text)
		})
		r.register(extractActionItemsDefinition(), func(ctx context.Context, args map[string]any) string {
			text, ok := requireString(args, "text")
			if !ok {
				return missingArgument("text")
			}
			return docs.ExtractActionItems(ctx, text)
		})
	}

	return r
}

func (r *Registry) register(def Definition, handle Handler) {
	tool := Tool{Definition: def, Handle: handle}
	r.tools = append(r.tools, tool)
	r.byName[def.Name] = tool
}

// Definitions returns the tool definitions in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.tools))
	for _, tool := range r.tools {
		defs = append(defs, tool.Definition)
	}
	return defs
}

// Call dispatches a tool call by name. Unknown tools come back as a text
// message rather than an error so the caller can relay it verbatim.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) string {
	tool, ok := r.byName[name]
	if !ok {
		return fmt.Sprintf("Unknown tool: %s", name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return tool.Handle(ctx, args)
}

func eventArgsFrom(args map[string]any, dateKey string) (EventArgs, string) {
	title, ok := requireString(args, "title")
	if !ok {
		return EventArgs{}, missingArgument("title")
	}
	date, ok := requireString(args, dateKey)
	if !ok {
		return EventArgs{}, missingArgument(dateKey)
	}
	return EventArgs{
		Title:         title,
		Date:          date,
		Description:   stringArg(args, "description", ""),
		Location:      stringArg(args, "location", ""),
		EventType:     stringArg(args, "event_type", "auto"),
		StartTime:     stringArg(args, "start_time", ""),
		DurationHours: intArg(args, "duration_hours", 0),
	}, ""
}

func missingArgument(key string) string {
	return fmt.Sprintf("Error: Missing required argument '%s'", key)
}

func requireString(args map[string]any, key string) (string, bool) {
	s, ok := args[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func stringArg(args map[string]any, key, def string) string {
	if s, ok := args[key].(string); ok && s != "" {
		return s
	}
	return def
}

// intArg accepts the numeric shapes JSON decoding can produce.
func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return def
}

func boolArg(args map[string]any, key string, def bool) bool {
	if b, ok := args[key].(bool); ok {
		return b
	}
	return def
}
