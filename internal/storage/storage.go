// Package storage defines the repository abstraction over the work log and
// todo list. The interface exists so different data sources (CSV today,
// SQLite as the second backend, SQL/API stores later) can sit behind the
// same operations.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/storage/csvfile"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/storage/sqlite"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/types"
)

// Repository defines the interface for work log storage backends
type Repository interface {
	// Init creates the underlying store (files, tables) if it doesn't exist
	Init(ctx context.Context) error

	// Work log
	LogTask(ctx context.Context, task *types.Task) error
	TasksByDate(ctx context.Context, date time.Time) ([]*types.Task, error)
	TasksSince(ctx context.Context, since time.Time) ([]*types.Task, error)
	AllTasks(ctx context.Context) ([]*types.Task, error)
	UpdateTaskResolved(ctx context.Context, rowID int64, resolved bool) error

	// Todos
	AddTodo(ctx context.Context, todo *types.Todo) error
	Todos(ctx context.Context) ([]*types.Todo, error)
	UpdateTodoStatus(ctx context.Context, id int64, status types.TodoStatus) error
	DeleteTodo(ctx context.Context, id int64) error
	ArchiveDoneTodos(ctx context.Context, archivePath string) (int, error)

	// Lifecycle
	Close() error
}

// Backend names accepted by Config.Backend
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config holds storage configuration
type Config struct {
	// Backend selects the storage implementation ("csv" or "sqlite")
	// Default: "csv"
	Backend string

	// DataDir is the directory holding the data files
	// (worklog.csv + todos.csv for CSV, sheepcat.db for SQLite)
	// Default: "."
	DataDir string
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendCSV,
		DataDir: ".",
	}
}

// NewRepository creates a storage backend per the config and initializes it
func NewRepository(ctx context.Context, cfg *Config) (Repository, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}

	var repo Repository
	switch cfg.Backend {
	case BackendCSV, "":
		repo = csvfile.New(dataDir)
	case BackendSQLite:
		var err error
		repo, err = sqlite.New(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite backend: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown storage backend: %q (want %q or %q)",
			cfg.Backend, BackendCSV, BackendSQLite)
	}

	if err := repo.Init(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return repo, nil
}
