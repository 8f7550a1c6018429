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
	"time"

	"github.com/poiesic/schoolbridge/calendar"
	"github.com/poiesic/schoolbridge/core"
)

const defaultReminderDays = 3

// EventArgs carries the arguments of a calendar event tool call before
// validation.
type EventArgs struct {
	Title         string
	Date          string
	Description   string
	Location      string
	EventType     string // "auto", "all_day", or "timed"
	StartTime     string
	DurationHours int
}

// CalendarTools answers calendar tool calls through the webhook client.
// Validation failures and webhook failures both come back as readable
// messages, never errors.
type CalendarTools struct {
	client       *calendar.Client
	reminderDays int
	now          func() time.Time
	logger       *slog.Logger
}

// CalendarOption configures CalendarTools.
type CalendarOption func(*CalendarTools) error

// WithCalendarLogger sets the logger. A nil logger restores the default.
func WithCalendarLogger(logger *slog.Logger) CalendarOption {
	return func(t *CalendarTools) error {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger.With("component", "tools")
		return nil
	}
}

// WithReminderDays sets how many days before an event reminders default to.
func WithReminderDays(days int) CalendarOption {
	return func(t *CalendarTools) error {
		if days > 0 {
			t.reminderDays = days
		}
		return nil
	}
}

// WithCalendarClock overrides the time source used for past-date checks.
func WithCalendarClock(now func() time.Time) CalendarOption {
	return func(t *CalendarTools) error {
		if now != nil {
			t.now = now
		}
		return nil
	}
}

func NewCalendarTools(client *calendar.Client, opts ...CalendarOption) (*CalendarTools, error) {
	if client == nil {
		return nil, ErrCalendarRequired
	}

	t := &CalendarTools{
		client:       client,
		reminderDays: defaultReminderDays,
		now:          time.Now,
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

// CreateEvent validates the arguments and creates one calendar event.
func (t *CalendarTools) CreateEvent(ctx context.Context, args EventArgs) string {
	if _, err := time.Parse(core.DateLayout, args.Date); err != nil {
		return fmt.Sprintf("Error: Invalid date format '%s'. Please use YYYY-MM-DD format.", args.Date)
	}

	eventType := args.EventType
	if eventType == "" {
		eventType = "auto"
	}

	req := calendar.EventRequest{
		Title:         args.Title,
		Date:          args.Date,
		Description:   args.Description,
		Location:      args.Location,
		StartTime:     args.StartTime,
		DurationHours: args.DurationHours,
	}

	switch eventType {
	case "auto":
		// Leave AllDay unset so the client detects from the text.
	case "all_day":
		allDay := true
		req.AllDay = &allDay
	case "timed":
		allDay := false
		req.AllDay = &allDay
	default:
		return fmt.Sprintf("Error: Invalid event_type '%s'. Valid options: auto, all_day, timed", eventType)
	}

	if args.StartTime != "" {
		if _, err := time.Parse("15:04", args.StartTime); err != nil {
			return fmt.Sprintf("Error: Invalid start_time format '%s'. Please use HH:MM format.", args.StartTime)
		}
	}

	result := t.client.CreateEvent(ctx, req)
	if !result.Success {
		return result.Message
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Successfully created %s calendar event: '%s'\n", result.EventType, args.Title)
	fmt.Fprintf(&b, "Date: %s", args.Date)
	if result.EventType == "timed" {
		start := args.StartTime
		if start == "" {
			start = "09:00"
		}
		duration := args.DurationHours
		if duration <= 0 {
			duration = 1
		}
		fmt.Fprintf(&b, "\nTime: %s (%d hour event)", start, duration)
	}
	if args.Location != "" {
		fmt.Fprintf(&b, "\nLocation: %s", args.Location)
	}
	if result.EventID != "" {
		fmt.Fprintf(&b, "\nEvent ID: %s", result.EventID)
	}
	return b.String()
}

// CreateReminder creates an all-day reminder ahead of a main event.
func (t *CalendarTools) CreateReminder(ctx context.Context, title, mainEventDate string, daysBefore int, description string) string {
	mainDate, err := time.Parse(core.DateLayout, mainEventDate)
	if err != nil {
		return fmt.Sprintf("Error: Invalid date format '%s'. Please use YYYY-MM-DD format.", mainEventDate)
	}

	if daysBefore <= 0 {
		daysBefore = t.reminderDays
	}
	reminderDate := mainDate.AddDate(0, 0, -daysBefore)

	var warning string
	today := t.now().Truncate(24 * time.Hour)
	if reminderDate.Before(today) {
		warning = fmt.Sprintf("Warning: the reminder date %s has already passed. Creating it anyway.\n\n",
			reminderDate.Format(core.DateLayout))
	}

	if description == "" {
		description = fmt.Sprintf("Don't forget: %s on %s", title, mainEventDate)
	}

	result := t.client.CreateReminder(ctx, title, reminderDate.Format(core.DateLayout), mainEventDate, description)
	if !result.Success {
		return warning + result.Message
	}

	var b strings.Builder
	b.WriteString(warning)
	fmt.Fprintf(&b, "Successfully created reminder: '%s'\n", title)
	fmt.Fprintf(&b, "Reminder Date: %s (%d days before)\n", reminderDate.Format(core.DateLayout), daysBefore)
	fmt.Fprintf(&b, "Main Event Date: %s", mainEventDate)
	if result.EventID != "" {
		fmt.Fprintf(&b, "\nEvent ID: %s", result.EventID)
	}
	return b.String()
}

// CreateEventWithReminder creates an event and, unless disabled, a
// preparation reminder ahead of it. The two outcomes are reported together.
func (t *CalendarTools) CreateEventWithReminder(ctx context.Context, args EventArgs, withReminder bool, daysBefore int) string {
	eventMsg := t.CreateEvent(ctx, args)
	if !withReminder {
		return eventMsg
	}

	reminderMsg := t.CreateReminder(ctx, args.Title, args.Date, daysBefore,
		fmt.Sprintf("Prepare for: %s", args.Title))
	return eventMsg + "\n\n" + reminderMsg
}
