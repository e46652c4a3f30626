package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskValidate(t *testing.T) {
	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)

	t.Run("valid task", func(t *testing.T) {
		task := &Task{
			StartTime:       start,
			EndTime:         start.Add(30 * time.Minute),
			DurationMinutes: 30,
			Title:           "Investigated login failures",
		}
		require.NoError(t, task.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		task := &Task{StartTime: start, Title: "   "}
		assert.Error(t, task.Validate())
	})

	t.Run("missing start time", func(t *testing.T) {
		task := &Task{Title: "work"}
		assert.Error(t, task.Validate())
	})

	t.Run("negative duration", func(t *testing.T) {
		task := &Task{StartTime: start, Title: "work", DurationMinutes: -5}
		assert.Error(t, task.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		task := &Task{
			StartTime: start,
			EndTime:   start.Add(-time.Hour),
			Title:     "work",
		}
		assert.Error(t, task.Validate())
	})
}

func TestTaskIsMarker(t *testing.T) {
	tests := []struct {
		title  string
		marker bool
	}{
		{"DAY STARTED", true},
		{"DAY ENDED", true},
		{"HOURLY SUMMARY", true},
		{"END OF DAY SUMMARY", true},
		{"=== DAY STARTED ===", true}, // markers match by substring
		{"Fixed the day-start bug", false},
		{"Regular task", false},
	}

	for _, tt := range tests {
		task := &Task{Title: tt.title}
		assert.Equal(t, tt.marker, task.IsMarker(), "title=%q", tt.title)
	}
}

func TestParseResolved(t *testing.T) {
	assert.True(t, ParseResolved("Yes"))
	assert.True(t, ParseResolved("yes"))
	assert.True(t, ParseResolved("  YES  "))
	assert.False(t, ParseResolved("No"))
	assert.False(t, ParseResolved(""))
	assert.False(t, ParseResolved("true")) // only the wire form counts
}

func TestResolvedString(t *testing.T) {
	assert.Equal(t, "Yes", (&Task{Resolved: true}).ResolvedString())
	assert.Equal(t, "No", (&Task{}).ResolvedString())
}

func TestTodoValidate(t *testing.T) {
	valid := &Todo{Task: "renew cert", Priority: PriorityHigh, Status: TodoPending}
	require.NoError(t, valid.Validate())

	assert.Error(t, (&Todo{Task: "", Priority: PriorityLow, Status: TodoPending}).Validate())
	assert.Error(t, (&Todo{Task: "x", Priority: "Urgent", Status: TodoPending}).Validate())
	assert.Error(t, (&Todo{Task: "x", Priority: PriorityLow, Status: "Started"}).Validate())
}

func TestTaskFilterMatches(t *testing.T) {
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local)
	morning := day.Add(9 * time.Hour)
	evening := day.Add(18 * time.Hour)

	task := &Task{StartTime: morning, Title: "work"}
	marker := &Task{StartTime: morning, Title: MarkerHourly}

	t.Run("date filter", func(t *testing.T) {
		f := TaskFilter{Date: &day}
		assert.True(t, f.Matches(task))

		nextDay := day.AddDate(0, 0, 1)
		f = TaskFilter{Date: &nextDay}
		assert.False(t, f.Matches(task))
	})

	t.Run("since filter", func(t *testing.T) {
		f := TaskFilter{Since: &morning}
		assert.True(t, f.Matches(task)) // boundary is inclusive

		f = TaskFilter{Since: &evening}
		assert.False(t, f.Matches(task))
	})

	t.Run("markers excluded by default", func(t *testing.T) {
		f := TaskFilter{Date: &day}
		assert.False(t, f.Matches(marker))

		f.IncludeMarkers = true
		assert.True(t, f.Matches(marker))
	})
}
