// Package csvfile implements the storage repository over flat CSV files.
//
// The work log is append-only: logging a task appends one row and never
// touches existing data. Mutations (resolving a task, editing todos) read the
// whole file, change the targeted cells, and atomically rewrite it.
//
// Files written by older releases may lack the trailing "AI Summary" and
// "Resolved" columns. Reads map columns by header name and default the
// missing ones, so old files keep working without a migration step.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

// File names inside the data directory
const (
	WorklogFile = "worklog.csv"
	TodoFile    = "todos.csv"
)

// worklogHeaders is the current work log schema, in column order.
// New columns are only ever appended, so older files are a prefix of this.
var worklogHeaders = []string{
	"Start Time", "End Time", "Duration (Min)", "Ticket",
	"Title", "System Info", "AI Summary", "Resolved",
}

// todoHeaders is the todo list schema
var todoHeaders = []string{"ID", "Task", "Priority", "Status", "Created", "Notes"}

// Store implements the storage Repository over CSV files
type Store struct {
	worklogPath string
	todoPath    string
}

// New creates a CSV store rooted at dataDir. Call Init before use.
func New(dataDir string) *Store {
	return &Store{
		worklogPath: filepath.Join(dataDir, WorklogFile),
		todoPath:    filepath.Join(dataDir, TodoFile),
	}
}

// WorklogPath returns the path of the work log CSV file
func (s *Store) WorklogPath() string { return s.worklogPath }

// TodoPath returns the path of the todo CSV file
func (s *Store) TodoPath() string { return s.todoPath }

// Init creates the CSV files with headers if they don't exist
func (s *Store) Init(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.worklogPath), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := createWithHeader(s.worklogPath, worklogHeaders); err != nil {
		return fmt.Errorf("failed to create work log: %w", err)
	}
	if err := createWithHeader(s.todoPath, todoHeaders); err != nil {
		return fmt.Errorf("failed to create todo list: %w", err)
	}
	return nil
}

// Close is a no-op for the CSV backend; files are opened per operation
func (s *Store) Close() error { return nil }

// createWithHeader writes a header-only CSV file unless the path already exists
func createWithHeader(path string, headers []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// readRaw reads every record from a CSV file, header included. Records are
// allowed to have differing field counts so files with an older schema parse
// cleanly.
func readRaw(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate rows written under older schemas

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// writeRawAtomic rewrites a CSV file via a temp file in the same directory
// followed by a rename, so readers never observe a half-written file.
func writeRawAtomic(path string, records [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

// columnIndex maps header names to their column position in this file.
// Files from older releases simply won't have the newer names.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

// cell returns the named column of a record, or "" when the file's schema
// predates the column or the row is short.
func cell(rec []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// LogTask appends a single task row to the work log
func (s *Store) LogTask(ctx context.Context, task *types.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	endTime := ""
	if !task.EndTime.IsZero() {
		endTime = task.EndTime.Format(types.TimeLayout)
	}
	row := []string{
		task.StartTime.Format(types.TimeLayout),
		endTime,
		strconv.FormatFloat(task.DurationMinutes, 'f', -1, 64),
		task.Ticket,
		task.Title,
		task.SystemInfo,
		task.AISummary,
		task.ResolvedString(),
	}

	f, err := os.OpenFile(s.worklogPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open work log: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		f.Close()
		return fmt.Errorf("failed to append task: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush task row: %w", err)
	}
	return f.Close()
}

// readTasks loads every parseable task row. Rows with a missing or
// unparseable start time are skipped (they stay in the file, they just don't
// surface in queries).
func (s *Store) readTasks() ([]*types.Task, error) {
	records, err := readRaw(s.worklogPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	idx := columnIndex(records[0])
	tasks := make([]*types.Task, 0, len(records)-1)
	for i, rec := range records[1:] {
		startStr := cell(rec, idx, "Start Time")
		if startStr == "" {
			continue
		}
		start, err := time.ParseInLocation(types.TimeLayout, startStr, time.Local)
		if err != nil {
			continue
		}

		task := &types.Task{
			RowID:      int64(i + 1), // 1-based data row index, header excluded
			StartTime:  start,
			Ticket:     cell(rec, idx, "Ticket"),
			Title:      cell(rec, idx, "Title"),
			SystemInfo: cell(rec, idx, "System Info"),
			AISummary:  cell(rec, idx, "AI Summary"),
			Resolved:   types.ParseResolved(cell(rec, idx, "Resolved")),
		}
		if endStr := cell(rec, idx, "End Time"); endStr != "" {
			if end, err := time.ParseInLocation(types.TimeLayout, endStr, time.Local); err == nil {
				task.EndTime = end
			}
		}
		if durStr := cell(rec, idx, "Duration (Min)"); durStr != "" {
			if dur, err := strconv.ParseFloat(durStr, 64); err == nil {
				task.DurationMinutes = dur
			}
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// filterTasks applies a filter over the full task list
func (s *Store) filterTasks(filter types.TaskFilter) ([]*types.Task, error) {
	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}
	out := make([]*types.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// TasksByDate returns all tasks whose start time falls on the given day,
// markers included (callers filter markers through types.TaskFilter)
func (s *Store) TasksByDate(ctx context.Context, date time.Time) ([]*types.Task, error) {
	return s.filterTasks(types.TaskFilter{Date: &date, IncludeMarkers: true})
}

// TasksSince returns all tasks starting at or after the given instant
func (s *Store) TasksSince(ctx context.Context, since time.Time) ([]*types.Task, error) {
	return s.filterTasks(types.TaskFilter{Since: &since, IncludeMarkers: true})
}

// AllTasks returns every parseable task in the work log
func (s *Store) AllTasks(ctx context.Context) ([]*types.Task, error) {
	return s.readTasks()
}

// UpdateTaskResolved flips the Resolved column of one row and rewrites the
// file. The row ID is the 1-based data row index from the last read. If the
// file was written under an older schema the header and the targeted row are
// upgraded to the current schema as part of the rewrite; all other rows are
// carried through untouched.
func (s *Store) UpdateTaskResolved(ctx context.Context, rowID int64, resolved bool) error {
	records, err := readRaw(s.worklogPath)
	if err != nil {
		return fmt.Errorf("failed to read work log: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("work log is empty")
	}
	if rowID < 1 || rowID >= int64(len(records)) {
		return fmt.Errorf("invalid row ID %d (work log has %d rows)", rowID, len(records)-1)
	}

	idx := columnIndex(records[0])
	col, ok := idx["Resolved"]
	if !ok {
		// Legacy file: adopt the current header so the column exists
		records[0] = append([]string(nil), worklogHeaders...)
		col = len(worklogHeaders) - 1
	}

	row := records[rowID]
	for len(row) <= col {
		row = append(row, "")
	}
	if resolved {
		row[col] = "Yes"
	} else {
		row[col] = "No"
	}
	records[rowID] = row

	return writeRawAtomic(s.worklogPath, records)
}
