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

package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/poiesic/schoolbridge/core"
)

const (
	defaultStartTime     = "09:00"
	defaultDurationHours = 1
	defaultTimeout       = 30 * time.Second
)

// ErrWebhookRequired is returned when constructing a client without a
// webhook URL.
var ErrWebhookRequired = errors.New("calendar webhook url is required")

// clockPattern matches explicit clock times such as "9:00 AM" or "2:30 p.m.".
var clockPattern = regexp.MustCompile(`\b\d{1,2}:\d{2}\s*(am|pm|a\.m\.|p\.m\.)\b`)

// Client creates calendar events through an n8n webhook.
type Client struct {
	webhookURL     string
	timeIndicators []string
	startTime      string
	durationHours  int
	http           *http.Client
	logger         *slog.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) error {
		if client != nil {
			c.http = client
		}
		return nil
	}
}

// WithEventDefaults sets the start time (HH:MM) and duration applied to
// timed events that don't specify their own.
func WithEventDefaults(startTime string, durationHours int) Option {
	return func(c *Client) error {
		if startTime != "" {
			c.startTime = startTime
		}
		if durationHours > 0 {
			c.durationHours = durationHours
		}
		return nil
	}
}

// NewClient creates a calendar client posting to the given webhook.
// timeIndicators are the words whose presence marks an event as timed.
func NewClient(webhookURL string, timeIndicators []string, opts ...Option) (*Client, error) {
	if webhookURL == "" {
		return nil, ErrWebhookRequired
	}

	c := &Client{
		webhookURL:     webhookURL,
		timeIndicators: timeIndicators,
		startTime:      defaultStartTime,
		durationHours:  defaultDurationHours,
		http:           &http.Client{Timeout: defaultTimeout},
		logger:         slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// EventRequest describes one event to create.
type EventRequest struct {
	Title       string
	Date        string // YYYY-MM-DD
	Description string
	Location    string

	// AllDay forces the event type when set. Nil means detect from text.
	AllDay *bool

	// StartTime (HH:MM) and DurationHours apply to timed events only.
	// Zero values fall back to the client defaults.
	StartTime     string
	DurationHours int
}

// EventPayload is the webhook wire format. Both date and datetime bounds are
// always present so either webhook wiring works.
type EventPayload struct {
	Action        string `json:"action"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	AllDay        bool   `json:"all_day"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	StartDatetime string `json:"start_datetime"`
	EndDatetime   string `json:"end_datetime"`
}

// Result reports the outcome of one webhook call.
type Result struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	EventID   string `json:"event_id,omitempty"`
	EventType string `json:"event_type,omitempty"`
}

// DetectAllDay reports whether an event should be all-day based on its text.
// Explicit clock times and time-indicator words mark an event as timed;
// everything else defaults to all-day.
func (c *Client) DetectAllDay(title, description string) bool {
	combined := strings.ToLower(title + " " + description)

	if clockPattern.MatchString(combined) {
		return false
	}
	for _, indicator := range c.timeIndicators {
		if indicator != "" && strings.Contains(combined, strings.ToLower(indicator)) {
			return false
		}
	}
	return true
}

// FormatEvent builds the webhook payload for an event request.
func (c *Client) FormatEvent(req EventRequest) (*EventPayload, error) {
	eventDate, err := time.Parse(core.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid event date %q: %w", req.Date, err)
	}

	allDay := req.AllDay != nil && *req.AllDay
	if req.AllDay == nil {
		allDay = c.DetectAllDay(req.Title, req.Description)
	}

	payload := &EventPayload{
		Action:      "create_event",
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		AllDay:      allDay,
	}

	if allDay {
		nextDay := eventDate.AddDate(0, 0, 1)
		payload.StartDate = eventDate.Format(core.DateLayout)
		payload.EndDate = nextDay.Format(core.DateLayout)
		payload.StartDatetime = eventDate.Format("2006-01-02T15:04:05")
		payload.EndDatetime = nextDay.Format("2006-01-02T15:04:05")
		return payload, nil
	}

	startTime := req.StartTime
	if startTime == "" {
		startTime = c.startTime
	}
	duration := req.DurationHours
	if duration <= 0 {
		duration = c.durationHours
	}

	start, err := time.Parse("2006-01-02 15:04", req.Date+" "+startTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", startTime, err)
	}
	end := start.Add(time.Duration(duration) * time.Hour)

	payload.StartDatetime = start.Format("2006-01-02T15:04:05")
	payload.EndDatetime = end.Format("2006-01-02T15:04:05")
	payload.StartDate = eventDate.Format(core.DateLayout)
	payload.EndDate = eventDate.Format(core.DateLayout)
	return payload, nil
}

// CreateEvent creates a calendar event via the webhook. Failures of any kind
// come back as an unsuccessful Result, never an error.
func (c *Client) CreateEvent(ctx context.Context, req EventRequest) *Result {
	payload, err := c.FormatEvent(req)
	if err != nil {
		c.logger.Error("error formatting calendar event", "title", req.Title, "err", err)
		return &Result{
			Success: false,
			Message: fmt.Sprintf("Error creating calendar event '%s': %v", req.Title, err),
		}
	}

	c.logger.Info("creating calendar event", "title", req.Title, "date", req.Date, "all_day", payload.AllDay)

	response, err := c.post(ctx, payload)
	if err != nil {
		c.logger.Error("calendar webhook call failed", "title", req.Title, "err", err)
		return &Result{
			Success: false,
			Message: fmt.Sprintf("Failed to create calendar event '%s': %v", req.Title, err),
		}
	}

	eventType := "timed"
	if payload.AllDay {
		eventType = "all-day"
	}

	result := &Result{
		Success:   true,
		Message:   fmt.Sprintf("Successfully created calendar event: %s", req.Title),
		EventID:   extractEventID(response),
		EventType: eventType,
	}
	c.logger.Info("calendar event created", "title", req.Title, "event_id", result.EventID)
	return result
}

// CreateReminder creates an all-day reminder ahead of a main event.
func (c *Client) CreateReminder(ctx context.Context, title, reminderDate, mainEventDate, description string) *Result {
	allDay := true
	result := c.CreateEvent(ctx, EventRequest{
		Title:       "REMINDER: " + title,
		Date:        reminderDate,
		Description: description + "\n\nMain event date: " + mainEventDate,
		AllDay:      &allDay,
	})

	if result.Success {
		result.Message = fmt.Sprintf("Successfully created reminder: %s", title)
	}
	return result
}

// post sends the payload and decodes the webhook response. Non-JSON bodies
// are wrapped as {"message": body}.
func (c *Client) post(ctx context.Context, payload *EventPayload) (any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return map[string]any{"message": string(raw)}, nil
	}
	return decoded, nil
}

var eventIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)event\s+id[:\s]+([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`(?i)id[:\s]+([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`(?i)created\s+event[:\s]+([a-zA-Z0-9_-]+)`),
}

var eventIDFields = []string{"id", "event_id", "eventId", "calendar_event_id", "google_event_id"}

// extractEventID pulls the calendar event ID out of whatever shape the
// webhook responded with. Returns "" when no ID is present.
func extractEventID(response any) string {
	switch v := response.(type) {
	case string:
		for _, pattern := range eventIDPatterns {
			if m := pattern.FindStringSubmatch(v); m != nil {
				return m[1]
			}
		}
	case map[string]any:
		for _, field := range eventIDFields {
			if id, ok := v[field]; ok && id != nil && id != "" {
				return fmt.Sprintf("%v", id)
			}
		}
		// Look one level deeper
		for _, value := range v {
			if nested, ok := value.(map[string]any); ok {
				for _, field := range eventIDFields {
					if id, ok := nested[field]; ok && id != nil && id != "" {
						return fmt.Sprintf("%v", id)
					}
				}
			}
		}
	}
	return ""
}
