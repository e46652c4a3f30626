package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

func TestAddTodoAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &types.Todo{Task: "write report"}
	second := &types.Todo{Task: "review PR", Priority: types.PriorityHigh}
	require.NoError(t, s.AddTodo(ctx, first))
	require.NoError(t, s.AddTodo(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	todos, err := s.Todos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, types.PriorityMedium, todos[0].Priority) // default
	assert.Equal(t, types.TodoPending, todos[0].Status)
	assert.Equal(t, types.PriorityHigh, todos[1].Priority)
}

func TestAddTodoReusesGapFreeMaxID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, task := range []string{"a", "b", "c"} {
		require.NoError(t, s.AddTodo(ctx, &types.Todo{Task: task}))
	}
	require.NoError(t, s.DeleteTodo(ctx, 2))

	next := &types.Todo{Task: "d"}
	require.NoError(t, s.AddTodo(ctx, next))
	// IDs come from max+1, so a deleted middle ID is never reused
	assert.Equal(t, int64(4), next.ID)
}

func TestUpdateTodoStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todo := &types.Todo{Task: "ship it"}
	require.NoError(t, s.AddTodo(ctx, todo))
	require.NoError(t, s.UpdateTodoStatus(ctx, todo.ID, types.TodoDone))

	todos, err := s.Todos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, types.TodoDone, todos[0].Status)

	assert.Error(t, s.UpdateTodoStatus(ctx, 99, types.TodoDone))
	assert.Error(t, s.UpdateTodoStatus(ctx, todo.ID, "Started"))
}

func TestDeleteTodo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &types.Todo{Task: "a"}
	b := &types.Todo{Task: "b"}
	require.NoError(t, s.AddTodo(ctx, a))
	require.NoError(t, s.AddTodo(ctx, b))

	require.NoError(t, s.DeleteTodo(ctx, a.ID))

	todos, err := s.Todos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "b", todos[0].Task)

	assert.Error(t, s.DeleteTodo(ctx, a.ID)) // already gone
}

func TestArchiveDoneTodos(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	archive := filepath.Join(t.TempDir(), "nested", "achievements.md")

	done := &types.Todo{Task: "migrate database", Priority: types.PriorityHigh, Notes: "took all week"}
	pending := &types.Todo{Task: "still open"}
	require.NoError(t, s.AddTodo(ctx, done))
	require.NoError(t, s.AddTodo(ctx, pending))
	require.NoError(t, s.UpdateTodoStatus(ctx, done.ID, types.TodoDone))

	n, err := s.ArchiveDoneTodos(ctx, archive)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Done item moved to the archive under a dated heading
	data, err := os.ReadFile(archive)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "## ")
	assert.Contains(t, content, "- [x] **migrate database**")
	assert.Contains(t, content, "took all week")

	// Active list keeps only the pending item
	todos, err := s.Todos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "still open", todos[0].Task)

	// Nothing left to archive
	n, err = s.ArchiveDoneTodos(ctx, archive)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestArchiveAppendsAcrossRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	archive := filepath.Join(t.TempDir(), "achievements.md")

	for _, task := range []string{"first", "second"} {
		todo := &types.Todo{Task: task}
		require.NoError(t, s.AddTodo(ctx, todo))
		require.NoError(t, s.UpdateTodoStatus(ctx, todo.ID, types.TodoDone))

		n, err := s.ArchiveDoneTodos(ctx, archive)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}

	data, err := os.ReadFile(archive)
	require.NoError(t, err)
	assert.Contains(t, string(data), "**first**")
	assert.Contains(t, string(data), "**second**")
	assert.Equal(t, 2, strings.Count(string(data), "- [x]"))
}
