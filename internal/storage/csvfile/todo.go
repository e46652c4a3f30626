package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

// Todo column positions (fixed schema, no evolution needed yet)
const (
	todoColID = iota
	todoColTask
	todoColPriority
	todoColStatus
	todoColCreated
	todoColNotes
)

// nextTodoID returns the next available integer ID
func nextTodoID(records [][]string) int64 {
	var max int64
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		if id, err := strconv.ParseInt(rec[todoColID], 10, 64); err == nil && id > max {
			max = id
		}
	}
	return max + 1
}

// AddTodo appends a new todo item, assigning it the next free ID
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

	records, err := readRaw(s.todoPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read todo list: %w", err)
	}
	if len(records) == 0 {
		records = [][]string{todoHeaders}
	}
	todo.ID = nextTodoID(records)

	row := []string{
		strconv.FormatInt(todo.ID, 10),
		todo.Task,
		string(todo.Priority),
		string(todo.Status),
		todo.Created.Format(types.TimeLayout),
		todo.Notes,
	}

	f, err := os.OpenFile(s.todoPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open todo list: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		f.Close()
		return fmt.Errorf("failed to append todo: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush todo row: %w", err)
	}
	return f.Close()
}

// Todos returns all todo items in file order
func (s *Store) Todos(ctx context.Context) ([]*types.Todo, error) {
	records, err := readRaw(s.todoPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	todos := make([]*types.Todo, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) <= todoColStatus {
			continue
		}
		id, err := strconv.ParseInt(rec[todoColID], 10, 64)
		if err != nil {
			continue
		}
		todo := &types.Todo{
			ID:       id,
			Task:     rec[todoColTask],
			Priority: types.TodoPriority(rec[todoColPriority]),
			Status:   types.TodoStatus(rec[todoColStatus]),
		}
		if len(rec) > todoColCreated {
			if created, err := time.ParseInLocation(types.TimeLayout, rec[todoColCreated], time.Local); err == nil {
				todo.Created = created
			}
		}
		if len(rec) > todoColNotes {
			todo.Notes = rec[todoColNotes]
		}
		todos = append(todos, todo)
	}
	return todos, nil
}

// UpdateTodoStatus sets the status of the todo with the given ID
func (s *Store) UpdateTodoStatus(ctx context.Context, id int64, status types.TodoStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}

	records, err := readRaw(s.todoPath)
	if err != nil {
		return fmt.Errorf("failed to read todo list: %w", err)
	}

	want := strconv.FormatInt(id, 10)
	updated := false
	for i, rec := range records {
		if i == 0 || len(rec) <= todoColStatus {
			continue
		}
		if rec[todoColID] == want {
			records[i][todoColStatus] = string(status)
			updated = true
			break
		}
	}
	if !updated {
		return fmt.Errorf("todo %d not found", id)
	}
	return writeRawAtomic(s.todoPath, records)
}

// DeleteTodo removes the todo with the given ID
func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	records, err := readRaw(s.todoPath)
	if err != nil {
		return fmt.Errorf("failed to read todo list: %w", err)
	}

	want := strconv.FormatInt(id, 10)
	kept := records[:0]
	found := false
	for i, rec := range records {
		if i > 0 && len(rec) > todoColID && rec[todoColID] == want {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return fmt.Errorf("todo %d not found", id)
	}
	return writeRawAtomic(s.todoPath, kept)
}

// ArchiveDoneTodos moves all Done todos into a Markdown achievements file and
// removes them from the active list. Each archived item is appended as a list
// item under a dated heading so the archive grows over time. Returns the
// number of todos archived.
func (s *Store) ArchiveDoneTodos(ctx context.Context, archivePath string) (int, error) {
	records, err := readRaw(s.todoPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read todo list: %w", err)
	}

	var done [][]string
	kept := [][]string{}
	for i, rec := range records {
		if i > 0 && len(rec) > todoColStatus && rec[todoColStatus] == string(types.TodoDone) {
			done = append(done, rec)
			continue
		}
		kept = append(kept, rec)
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
	for _, rec := range done {
		line := fmt.Sprintf("- [x] **%s** (Priority: %s, Created: %s)",
			field(rec, todoColTask), field(rec, todoColPriority), field(rec, todoColCreated))
		if notes := field(rec, todoColNotes); notes != "" {
			line += " - " + notes
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

	// Archive written; now drop the done rows from the active list
	if err := writeRawAtomic(s.todoPath, kept); err != nil {
		return 0, fmt.Errorf("archived %d todos but failed to rewrite active list: %w", len(done), err)
	}
	return len(done), nil
}

// field returns a column of a record, or "" when the row is short
func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}
