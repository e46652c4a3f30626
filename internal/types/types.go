package types

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the timestamp format used everywhere a task time crosses a
// boundary: CSV columns, SQLite text columns, prompts, and CLI flags.
const TimeLayout = "2006-01-02 15:04:05"

// DateLayout is the date-only format used for review dates and report ranges.
const DateLayout = "2006-01-02"

// Task represents a single logged unit of work
type Task struct {
	// RowID identifies the task within its backend. For the CSV backend this
	// is the 1-based data row index (header excluded) and is only stable
	// until the next mutation of the file. For SQLite it is the rowid.
	RowID int64 `json:"row_id"`

	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes float64   `json:"duration_minutes"`
	Ticket          string    `json:"ticket,omitempty"`
	Title           string    `json:"title"`
	SystemInfo      string    `json:"system_info,omitempty"`
	AISummary       string    `json:"ai_summary,omitempty"`
	Resolved        bool      `json:"resolved"`
}

// Validate checks if the task has valid field values
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(t.Title) > 500 {
		return fmt.Errorf("title must be 500 characters or less (got %d)", len(t.Title))
	}
	if t.StartTime.IsZero() {
		return fmt.Errorf("start_time is required")
	}
	if t.DurationMinutes < 0 {
		return fmt.Errorf("duration cannot be negative (got %.1f)", t.DurationMinutes)
	}
	if !t.EndTime.IsZero() && t.EndTime.Before(t.StartTime) {
		return fmt.Errorf("end_time %s is before start_time %s",
			t.EndTime.Format(TimeLayout), t.StartTime.Format(TimeLayout))
	}
	return nil
}

// Marker titles written by the tracker loop. Rows carrying one of these are
// session bookkeeping, not real work, and are excluded from reports.
const (
	MarkerDayStarted = "DAY STARTED"
	MarkerDayEnded   = "DAY ENDED"
	MarkerHourly     = "HOURLY SUMMARY"
	MarkerEndOfDay   = "END OF DAY SUMMARY"
)

// markerTitles lists every marker in one place so IsMarker stays in sync
var markerTitles = []string{MarkerDayStarted, MarkerDayEnded, MarkerHourly, MarkerEndOfDay}

// IsMarker reports whether the task is a session marker row
func (t *Task) IsMarker() bool {
	for _, m := range markerTitles {
		if strings.Contains(t.Title, m) {
			return true
		}
	}
	return false
}

// ResolvedString renders the Resolved flag in its wire form ("Yes"/"No")
func (t *Task) ResolvedString() string {
	if t.Resolved {
		return "Yes"
	}
	return "No"
}

// ParseResolved parses the wire form of the resolved flag. Anything other
// than "Yes" (case-insensitive) is treated as unresolved, matching files
// written before the column existed.
func ParseResolved(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "Yes")
}

// Todo represents a personal todo item, separate from the work log
type Todo struct {
	ID       int64        `json:"id"`
	Task     string       `json:"task"`
	Priority TodoPriority `json:"priority"`
	Status   TodoStatus   `json:"status"`
	Created  time.Time    `json:"created"`
	Notes    string       `json:"notes,omitempty"`
}

// Validate checks if the todo has valid field values
func (td *Todo) Validate() error {
	if strings.TrimSpace(td.Task) == "" {
		return fmt.Errorf("task is required")
	}
	if !td.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", td.Priority)
	}
	if !td.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", td.Status)
	}
	return nil
}

// TodoPriority is the urgency bucket for a todo item
type TodoPriority string

const (
	PriorityHigh   TodoPriority = "High"
	PriorityMedium TodoPriority = "Medium"
	PriorityLow    TodoPriority = "Low"
)

// IsValid checks if the priority value is valid
func (p TodoPriority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// TodoStatus represents the current state of a todo item
type TodoStatus string

const (
	TodoPending TodoStatus = "Pending"
	TodoDone    TodoStatus = "Done"
)

// IsValid checks if the status value is valid
func (s TodoStatus) IsValid() bool {
	switch s {
	case TodoPending, TodoDone:
		return true
	}
	return false
}

// TaskFilter selects tasks from the work log
type TaskFilter struct {
	// Date selects tasks whose start time falls on this calendar day
	Date *time.Time
	// Since selects tasks whose start time is at or after this instant
	Since *time.Time
	// IncludeMarkers keeps session marker rows in the result
	IncludeMarkers bool
}

// Matches reports whether the task passes the filter
func (f TaskFilter) Matches(t *Task) bool {
	if !f.IncludeMarkers && t.IsMarker() {
		return false
	}
	if f.Date != nil {
		y1, m1, d1 := t.StartTime.Date()
		y2, m2, d2 := f.Date.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}
	if f.Since != nil && t.StartTime.Before(*f.Since) {
		return false
	}
	return true
}
