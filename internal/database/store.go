package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error

	// --- Todos ---

	CreateTodo(ctx context.Context, todo *Todo) error
	GetTodo(ctx context.Context, id int64) (*Todo, error)
	ListTodos(ctx context.Context) ([]Todo, error)
	UpdateTodo(ctx context.Context, todo *Todo) error
	DeleteTodo(ctx context.Context, id int64) error

	// CompleteTodo marks a todo as completed at the given time and
	// returns the updated row.
	CompleteTodo(ctx context.Context, id int64, completedAt time.Time) (*Todo, error)

	// ListOverdueTodos returns incomplete todos whose due date (and time,
	// when set) is in the past relative to now.
	ListOverdueTodos(ctx context.Context, now time.Time) ([]Todo, error)

	// GetTodosNeedingReminders returns todos whose reminder time is at or
	// before now and which have not been reminded yet, and marks them as
	// reminded in the same transaction. Deduplication of reminder sends
	// lives here, not in the poller.
	GetTodosNeedingReminders(ctx context.Context, now time.Time) ([]Todo, error)

	// CleanupCompletedTodos deletes todos completed strictly before
	// olderThan and returns the number of rows removed. Incomplete todos
	// are never touched. A todo completed exactly at olderThan is kept.
	CleanupCompletedTodos(ctx context.Context, olderThan time.Time) (int64, error)

	// --- Notes ---

	CreateNote(ctx context.Context, note *Note) error
	GetNote(ctx context.Context, id int64) (*Note, error)
	ListNotes(ctx context.Context) ([]Note, error)
	UpdateNote(ctx context.Context, note *Note) error
	DeleteNote(ctx context.Context, id int64) error

	// --- Goals ---

	CreateGoal(ctx context.Context, goal *Goal) error
	GetGoal(ctx context.Context, id int64) (*Goal, error)
	ListGoals(ctx context.Context) ([]Goal, error)
	UpdateGoal(ctx context.Context, goal *Goal) error
	DeleteGoal(ctx context.Context, id int64) error

	// --- Activities ---

	CreateActivity(ctx context.Context, activity *Activity) error
	ListActivities(ctx context.Context) ([]Activity, error)
	DeleteActivity(ctx context.Context, id int64) error

	// --- Mood tracking ---

	CreateMoodEntry(ctx context.Context, entry *MoodEntry) error
	ListMoodEntries(ctx context.Context, limit int) ([]MoodEntry, error)
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
// VACUUM must run outside a transaction.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return err

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return err
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	return nil
}
