package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateGoal inserts a new goal record and fills in its generated ID.
func (s *sqlxStore) CreateGoal(ctx context.Context, goal *Goal) error {
	if goal == nil {
		return fmt.Errorf("cannot save nil goal")
	}
	if goal.Title == "" {
		return fmt.Errorf("goal must have a non-empty title")
	}
	if goal.Progress < 0 || goal.Progress > 100 {
		return fmt.Errorf("goal progress must be between 0 and 100, got %d", goal.Progress)
	}

	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	query := `
        INSERT INTO goals (created_at, updated_at, title, description, target_date, progress, completed)
        VALUES (:created_at, :updated_at, :title, :description, :target_date, :progress, :completed);
    `

	result, err := s.db.NamedExecContext(ctx, query, goal)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving goal", "title", goal.Title, "error", err)
		return fmt.Errorf("failed to save goal: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		goal.ID = id
	}

	return nil
}

// GetGoal retrieves a goal by ID. Returns ErrNotFound if it does not exist.
func (s *sqlxStore) GetGoal(ctx context.Context, id int64) (*Goal, error) {
	var goal Goal
	query := `
        SELECT id, created_at, updated_at, title, description, target_date, progress, completed
        FROM goals WHERE id = ?
    `

	err := s.db.GetContext(ctx, &goal, query, id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting goal", "goal_id", id, "error", err)
		return nil, fmt.Errorf("failed to get goal %d: %w", id, err)
	}

	return &goal, nil
}

// ListGoals retrieves all goals, incomplete first.
func (s *sqlxStore) ListGoals(ctx context.Context) ([]Goal, error) {
	var goals []Goal
	query := `
        SELECT id, created_at, updated_at, title, description, target_date, progress, completed
        FROM goals ORDER BY completed ASC, created_at DESC
    `

	if err := s.db.SelectContext(ctx, &goals, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing goals", "error", err)
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	return goals, nil
}

// UpdateGoal persists the full state of an existing goal.
func (s *sqlxStore) UpdateGoal(ctx context.Context, goal *Goal) error {
	if goal == nil {
		return fmt.Errorf("cannot update nil goal")
	}
	if goal.Progress < 0 || goal.Progress > 100 {
		return fmt.Errorf("goal progress must be between 0 and 100, got %d", goal.Progress)
	}

	goal.UpdatedAt = time.Now().UTC()

	query := `
        UPDATE goals SET
            updated_at = :updated_at,
            title = :title,
            description = :description,
            target_date = :target_date,
            progress = :progress,
            completed = :completed
        WHERE id = :id
    `

	result, err := s.db.NamedExecContext(ctx, query, goal)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error updating goal", "goal_id", goal.ID, "error", err)
		return fmt.Errorf("failed to update goal %d: %w", goal.ID, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteGoal removes a goal by ID. Returns ErrNotFound if nothing was deleted.
func (s *sqlxStore) DeleteGoal(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting goal", "goal_id", id, "error", err)
		return fmt.Errorf("failed to delete goal %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrNotFound
	}

	return nil
}
