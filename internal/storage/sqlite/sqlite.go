// Package sqlite implements the storage repository on SQLite. It is the
// second concrete data source behind the repository abstraction; the schema
// mirrors the CSV columns one for one.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

// DBFile is the database file name inside the data directory
const DBFile = "sheepcat.db"

// Store implements the storage Repository using SQLite
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database under dataDir
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	path := filepath.Join(dataDir, DBFile)

	// WAL mode for better read/write concurrency
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Init creates the schema if it doesn't exist
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// LogTask inserts a task row and fills in its assigned RowID
func (s *Store) LogTask(ctx context.Context, task *types.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	endTime := ""
	if !task.EndTime.IsZero() {
		endTime = task.EndTime.Format(types.TimeLayout)
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (start_time, end_time, duration_min, ticket, title, system_info, ai_summary, resolved)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.StartTime.Format(types.TimeLayout), endTime, task.DurationMinutes,
		task.Ticket, task.Title, task.SystemInfo, task.AISummary, boolToInt(task.Resolved))
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get task id: %w", err)
	}
	task.RowID = id
	return nil
}

// queryTasks runs a task query and scans the results
func (s *Store) queryTasks(ctx context.Context, where string, args ...interface{}) ([]*types.Task, error) {
	q := `SELECT id, start_time, end_time, duration_min, ticket, title, system_info, ai_summary, resolved
		FROM tasks ` + where + ` ORDER BY start_time, id`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*types.Task
	for rows.Next() {
		var (
			t                 types.Task
			startStr, endStr  string
			resolved          int
		)
		if err := rows.Scan(&t.RowID, &startStr, &endStr, &t.DurationMinutes,
			&t.Ticket, &t.Title, &t.SystemInfo, &t.AISummary, &resolved); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		start, err := time.ParseInLocation(types.TimeLayout, startStr, time.Local)
		if err != nil {
			// Unparseable rows don't surface in queries, same as the CSV backend
			continue
		}
		t.StartTime = start
		if endStr != "" {
			if end, err := time.ParseInLocation(types.TimeLayout, endStr, time.Local); err == nil {
				t.EndTime = end
			}
		}
		t.Resolved = resolved != 0
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

// TasksByDate returns all tasks whose start time falls on the given day
func (s *Store) TasksByDate(ctx context.Context, date time.Time) ([]*types.Task, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	dayEnd := dayStart.AddDate(0, 0, 1)
	return s.queryTasks(ctx, "WHERE start_time >= ? AND start_time < ?",
		dayStart.Format(types.TimeLayout), dayEnd.Format(types.TimeLayout))
}

// TasksSince returns all tasks starting at or after the given instant
func (s *Store) TasksSince(ctx context.Context, since time.Time) ([]*types.Task, error) {
	return s.queryTasks(ctx, "WHERE start_time >= ?", since.Format(types.TimeLayout))
}

// AllTasks returns every task in the log
func (s *Store) AllTasks(ctx context.Context) ([]*types.Task, error) {
	return s.queryTasks(ctx, "")
}

// UpdateTaskResolved flips the resolved flag of one task
func (s *Store) UpdateTaskResolved(ctx context.Context, rowID int64, resolved bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET resolved = ? WHERE id = ?", boolToInt(resolved), rowID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("invalid row ID %d", rowID)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
