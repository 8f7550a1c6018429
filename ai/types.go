package ai

// Summary holds the result of the summarization pass. Field names mirror the
// JSON structure the model is asked to produce.
type Summary struct {
	Summary        string   `json:"summary"`
	KeyPoints      []string `json:"key_points"`
	ImportantDates []string `json:"important_dates"`
	ActionItems    []string `json:"action_items"`
}

// Event is a single event found in a document. Unknown fields carry the
// literal string "Unknown" rather than an empty value, matching the prompt
// contract.
type Event struct {
	Title            string `json:"title"`
	Date             string `json:"date"`     // YYYY-MM-DD or "Unknown"
	Time             string `json:"time"`     // HH:MM, "All day", or "Unknown"
	Location         string `json:"location"` // or "Unknown"
	Description      string `json:"description"`
	SuppliesNeeded   string `json:"supplies_needed"`   // or "None"
	SuppliesDeadline string `json:"supplies_deadline"` // YYYY-MM-DD or "Unknown"
}

// EventReport holds the result of the event extraction pass.
type EventReport struct {
	EventsFound []Event `json:"events_found"`
	TotalEvents int     `json:"total_events"`
}

// ActionItem is a single task extracted from a document.
type ActionItem struct {
	Task     string `json:"task"`
	Who      string `json:"who"`      // "parents", "students", or "both"
	Deadline string `json:"deadline"` // YYYY-MM-DD or "No deadline specified"
	Priority string `json:"priority"` // "high", "medium", or "low"
}

// ActionItemReport holds the result of the action-item extraction pass.
type ActionItemReport struct {
	ActionItems []ActionItem `json:"action_items"`
	TotalItems  int          `json:"total_items"`
}
