package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

// AddTodo inserts a todo item and fills in its assigned ID
func (s *Store) AddTodo(ctx context.Context, todo *types.Todo) error {
	if todo.Priority == "" {
		todo.Priority = types.PriorityMedium
	}
	if todo.Status == "" {
		todo.Status = types.TodoPending
	}
	if todo.Created.IsZero() {
		todo.Created = time.Now()
	}
	if err := todo.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (task, priority, status, created, notes)
		VALUES (?, ?, ?, ?, ?)`,
		todo.Task, string(todo.Priority), string(todo.Status),
		todo.Created.Format(types.TimeLayout), todo.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get todo id: %w", err)
	}
	todo.ID = id
	return nil
}

// Todos returns all todo items in insertion order
func (s *Store) Todos(ctx context.Context) ([]*types.Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, task, priority, status, created, notes FROM todos ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	var todos []*types.Todo
	for rows.Next() {
		var (
			td         types.Todo
			createdStr string
		)
		if err := rows.Scan(&td.ID, &td.Task, &td.Priority, &td.Status, &createdStr, &td.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		if created, err := time.ParseInLocation(types.TimeLayout, createdStr, time.Local); err == nil {
			td.Created = created
		}
		todos = append(todos, &td)
	}
	return todos, rows.Err()
}

// UpdateTodoStatus sets the status of the todo with the given ID
func (s *Store) UpdateTodoStatus(ctx context.Context, id int64, status types.TodoStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}
	res, err := s.db.ExecContext(ctx, "UPDATE todos SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo %d not found", id)
	}
	return nil
}

// DeleteTodo removes the todo with the given ID
func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo %d not found", id)
	}
	return nil
}

// ArchiveDoneTodos moves all Done todos into the Markdown achievements file
// and deletes them. The archive format matches the CSV backend so the two
// backends produce the same file.
func (s *Store) ArchiveDoneTodos(ctx context.Context, archivePath string) (int, error) {
	todos, err := s.Todos(ctx)
	if err != nil {
		return 0, err
	}
	var done []*types.Todo
	for _, td := range todos {
		if td.Status == types.TodoDone {
			done = append(done, td)
		}
	}
	if len(done) == 0 {
		return 0, nil
	}

	if dir := filepath.Dir(archivePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n## %s\n\n", time.Now().Format(types.DateLayout))
	for _, td := range done {
		created := ""
		if !td.Created.IsZero() {
			created = td.Created.Format(types.TimeLayout)
		}
		line := fmt.Sprintf("- [x] **%s** (Priority: %s, Created: %s)", td.Task, td.Priority, created)
		if td.Notes != "" {
			line += " - " + td.Notes
		}
		b.WriteString(line + "\n")
	}

	f, err := os.OpenFile(archivePath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open archive: %w", err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return 0, fmt.Errorf("failed to write archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE status = ?", string(types.TodoDone)); err != nil {
		return 0, fmt.Errorf("archived %d todos but failed to delete them: %w", len(done), err)
	}
	return len(done), nil
}
