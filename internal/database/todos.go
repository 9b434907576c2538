package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const todoColumns = `id, created_at, updated_at, title, description, user_email,
	due_date, due_time, reminder_at, reminder_sent, completed, completed_at`

// CreateTodo inserts a new todo record and fills in its generated ID.
func (s *sqlxStore) CreateTodo(ctx context.Context, todo *Todo) error {
	if todo == nil {
		return fmt.Errorf("cannot save nil todo")
	}
	if todo.Title == "" {
		return fmt.Errorf("todo must have a non-empty title")
	}

	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	query := `
        INSERT INTO todos (created_at, updated_at, title, description, user_email,
                           due_date, due_time, reminder_at, reminder_sent, completed, completed_at)
        VALUES (:created_at, :updated_at, :title, :description, :user_email,
                :due_date, :due_time, :reminder_at, :reminder_sent, :completed, :completed_at);
    `

	result, err := s.db.NamedExecContext(ctx, query, todo)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving todo", "title", todo.Title, "error", err)
		return fmt.Errorf("failed to save todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		todo.ID = id
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after saving todo",
			"title", todo.Title, "error", err)
	}

	s.logger.DebugContext(ctx, "Todo saved successfully", "todo_id", todo.ID)
	return nil
}

// GetTodo retrieves a todo by ID. Returns ErrNotFound if it does not exist.
func (s *sqlxStore) GetTodo(ctx context.Context, id int64) (*Todo, error) {
	if id <= 0 {
		return nil, fmt.Errorf("todo id must be positive")
	}

	var todo Todo
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ?`

	err := s.db.GetContext(ctx, &todo, query, id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting todo", "todo_id", id, "error", err)
		return nil, fmt.Errorf("failed to get todo %d: %w", id, err)
	}

	return &todo, nil
}

// ListTodos retrieves all todos, incomplete first, newest first within each group.
func (s *sqlxStore) ListTodos(ctx context.Context) ([]Todo, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var todos []Todo
	query := `SELECT ` + todoColumns + ` FROM todos ORDER BY completed ASC, created_at DESC`

	if err := s.db.SelectContext(ctx, &todos, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing todos", "error", err)
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	return todos, nil
}

// UpdateTodo persists the full state of an existing todo.
func (s *sqlxStore) UpdateTodo(ctx context.Context, todo *Todo) error {
	if todo == nil {
		return fmt.Errorf("cannot update nil todo")
	}
	if todo.ID <= 0 {
		return fmt.Errorf("todo id must be positive")
	}

	todo.UpdatedAt = time.Now().UTC()

	query := `
        UPDATE todos SET
            updated_at = :updated_at,
            title = :title,
            description = :description,
            user_email = :user_email,
            due_date = :due_date,
            due_time = :due_time,
            reminder_at = :reminder_at,
            reminder_sent = :reminder_sent,
            completed = :completed,
            completed_at = :completed_at
        WHERE id = :id
    `

	result, err := s.db.NamedExecContext(ctx, query, todo)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error updating todo", "todo_id", todo.ID, "error", err)
		return fmt.Errorf("failed to update todo %d: %w", todo.ID, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrNotFound
	}

	s.logger.DebugContext(ctx, "Todo updated successfully", "todo_id", todo.ID)
	return nil
}

// DeleteTodo removes a todo by ID. Returns ErrNotFound if nothing was deleted.
func (s *sqlxStore) DeleteTodo(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting todo", "todo_id", id, "error", err)
		return fmt.Errorf("failed to delete todo %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrNotFound
	}

	s.logger.DebugContext(ctx, "Todo deleted", "todo_id", id)
	return nil
}

// CompleteTodo marks a todo as completed at the given time and returns
// the updated row. Completing an already-completed todo is a no-op that
// preserves the original completion timestamp.
func (s *sqlxStore) CompleteTodo(ctx context.Context, id int64, completedAt time.Time) (*Todo, error) {
	query := `
        UPDATE todos SET
            completed = 1,
            completed_at = ?,
            updated_at = ?
        WHERE id = ? AND completed = 0
    `

	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, query, completedAt.UTC(), now, id); err != nil {
		s.logger.ErrorContext(ctx, "Error completing todo", "todo_id", id, "error", err)
		return nil, fmt.Errorf("failed to complete todo %d: %w", id, err)
	}

	todo, err := s.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Todo completed", "todo_id", id)
	return todo, nil
}

// ListOverdueTodos returns incomplete todos whose due date (and time,
// when set) is in the past relative to now.
func (s *sqlxStore) ListOverdueTodos(ctx context.Context, now time.Time) ([]Todo, error) {
	today := now.UTC().Format("2006-01-02")
	clock := now.UTC().Format("15:04")

	var todos []Todo
	query := `
        SELECT ` + todoColumns + `
        FROM todos
        WHERE completed = 0
          AND due_date IS NOT NULL
          AND (due_date < ?
               OR (due_date = ? AND due_time IS NOT NULL AND due_time < ?))
        ORDER BY due_date ASC, due_time ASC
    `

	if err := s.db.SelectContext(ctx, &todos, query, today, today, clock); err != nil {
		s.logger.ErrorContext(ctx, "Error listing overdue todos", "error", err)
		return nil, fmt.Errorf("failed to list overdue todos: %w", err)
	}

	return todos, nil
}

// GetTodosNeedingReminders returns todos whose reminder time is at or
// before now and which have not been reminded yet. The matched rows are
// marked as reminded inside the same transaction, so a todo is returned
// by at most one polling cycle.
func (s *sqlxStore) GetTodosNeedingReminders(ctx context.Context, now time.Time) ([]Todo, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for reminder query", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				if !errors.Is(rollbackErr, sql.ErrTxDone) {
					s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
				}
			}
		}
	}()

	var todos []Todo
	selectQuery := `
        SELECT ` + todoColumns + `
        FROM todos
        WHERE reminder_at IS NOT NULL
          AND reminder_at <= ?
          AND reminder_sent = 0
          AND completed = 0
        ORDER BY reminder_at ASC
    `

	if err := tx.SelectContext(ctx, &todos, selectQuery, now.UTC()); err != nil {
		s.logger.ErrorContext(ctx, "Error querying todos needing reminders", "error", err)
		return nil, fmt.Errorf("failed to query todos needing reminders: %w", err)
	}

	if len(todos) == 0 {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		tx = nil
		return nil, nil
	}

	ids := make([]int64, 0, len(todos))
	for i := range todos {
		todos[i].ReminderSent = true
		ids = append(ids, todos[i].ID)
	}

	markQuery, args, err := sqlx.In(
		`UPDATE todos SET reminder_sent = 1, updated_at = ? WHERE id IN (?)`,
		time.Now().UTC(), ids)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error building query for marking reminders", "error", err)
		return nil, fmt.Errorf("failed to build query for marking reminders: %w", err)
	}

	markQuery = tx.Rebind(markQuery)
	if _, err := tx.ExecContext(ctx, markQuery, args...); err != nil {
		s.logger.ErrorContext(ctx, "Error marking todos as reminded", "error", err)
		return nil, fmt.Errorf("failed to mark todos as reminded: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit reminder transaction", "error", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	s.logger.DebugContext(ctx, "Fetched todos needing reminders", "count", len(todos))
	return todos, nil
}

// CleanupCompletedTodos deletes todos completed strictly before olderThan
// and returns the number of rows removed. A todo completed exactly at
// olderThan is kept; incomplete todos are never touched.
func (s *sqlxStore) CleanupCompletedTodos(ctx context.Context, olderThan time.Time) (int64, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	query := `
        DELETE FROM todos
        WHERE completed = 1
          AND completed_at IS NOT NULL
          AND completed_at < ?
    `

	result, err := s.db.ExecContext(ctx, query, olderThan.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error cleaning up completed todos", "error", err)
		return 0, fmt.Errorf("failed to clean up completed todos: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		s.logger.WarnContext(ctx, "Could not get affected row count for cleanup", "error", err)
		return 0, nil
	}

	return count, nil
}
