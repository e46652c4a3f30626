package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func testTask(start time.Time, title string) *types.Task {
	return &types.Task{
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		DurationMinutes: 30,
		Title:           title,
	}
}

func TestLogTaskAssignsRowID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testTask(time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local), "first")
	second := testTask(time.Date(2026, 8, 24, 10, 0, 0, 0, time.Local), "second")
	require.NoError(t, s.LogTask(ctx, first))
	require.NoError(t, s.LogTask(ctx, second))

	assert.Equal(t, int64(1), first.RowID)
	assert.Equal(t, int64(2), second.RowID)
}

func TestRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)

	task := &types.Task{
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		DurationMinutes: 60,
		Ticket:          "OPS-7",
		Title:           "Tuned slow queries",
		SystemInfo:      "host=wk01",
		AISummary:       "Optimized two reporting queries.",
		Resolved:        true,
	}
	require.NoError(t, s.LogTask(ctx, task))

	tasks, err := s.AllTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	got := tasks[0]
	assert.True(t, got.StartTime.Equal(start))
	assert.True(t, got.EndTime.Equal(start.Add(time.Hour)))
	assert.Equal(t, 60.0, got.DurationMinutes)
	assert.Equal(t, "OPS-7", got.Ticket)
	assert.True(t, got.Resolved)
}

func TestDateAndSinceQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	day1 := time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 8, 25, 9, 0, 0, 0, time.Local)
	require.NoError(t, s.LogTask(ctx, testTask(day1, "monday")))
	require.NoError(t, s.LogTask(ctx, testTask(day1.Add(8*time.Hour), "monday evening")))
	require.NoError(t, s.LogTask(ctx, testTask(day2, "tuesday")))

	tasks, err := s.TasksByDate(ctx, day1)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	tasks, err = s.TasksSince(ctx, day1.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Len(t, tasks, 2) // inclusive cutoff
}

func TestUpdateTaskResolved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := testTask(time.Now(), "work")
	require.NoError(t, s.LogTask(ctx, task))

	require.NoError(t, s.UpdateTaskResolved(ctx, task.RowID, true))
	tasks, err := s.AllTasks(ctx)
	require.NoError(t, err)
	assert.True(t, tasks[0].Resolved)

	assert.Error(t, s.UpdateTaskResolved(ctx, 999, true))
}

func TestTodoLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todo := &types.Todo{Task: "update runbook", Notes: "section 3"}
	require.NoError(t, s.AddTodo(ctx, todo))
	require.NotZero(t, todo.ID)
	assert.Equal(t, types.PriorityMedium, todo.Priority)

	require.NoError(t, s.UpdateTodoStatus(ctx, todo.ID, types.TodoDone))

	archive := filepath.Join(t.TempDir(), "achievements.md")
	n, err := s.ArchiveDoneTodos(ctx, archive)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(archive)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- [x] **update runbook**")
	assert.Contains(t, string(data), "section 3")

	todos, err := s.Todos(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)

	assert.Error(t, s.DeleteTodo(ctx, todo.ID))
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Init(ctx))
	require.NoError(t, s.LogTask(ctx, testTask(time.Now(), "survives restart")))
	require.NoError(t, s.Close())

	s, err = New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Init(ctx))
	defer s.Close()

	tasks, err := s.AllTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "survives restart", tasks[0].Title)
}
