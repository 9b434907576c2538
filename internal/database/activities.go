package database

import (
	"context"
	"fmt"
	"time"
)

// CreateActivity inserts a new activity record and fills in its generated ID.
func (s *sqlxStore) CreateActivity(ctx context.Context, activity *Activity) error {
	if activity == nil {
		return fmt.Errorf("cannot save nil activity")
	}
	if activity.Title == "" {
		return fmt.Errorf("activity must have a non-empty title")
	}
	if activity.OccurredAt.IsZero() {
		activity.OccurredAt = time.Now().UTC()
	}

	activity.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO activities (created_at, title, notes, duration_minutes, occurred_at)
        VALUES (:created_at, :title, :notes, :duration_minutes, :occurred_at);
    `

	result, err := s.db.NamedExecContext(ctx, query, activity)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving activity", "title", activity.Title, "error", err)
		return fmt.Errorf("failed to save activity: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		activity.ID = id
	}

	return nil
}

// ListActivities retrieves all activities, most recent first.
func (s *sqlxStore) ListActivities(ctx context.Context) ([]Activity, error) {
	var activities []Activity
	query := `
        SELECT id, created_at, title, notes, duration_minutes, occurred_at
        FROM activities ORDER BY occurred_at DESC
    `

	if err := s.db.SelectContext(ctx, &activities, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing activities", "error", err)
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, nil
}

// DeleteActivity removes an activity by ID. Returns ErrNotFound if nothing was deleted.
func (s *sqlxStore) DeleteActivity(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting activity", "activity_id", id, "error", err)
		return fmt.Errorf("failed to delete activity %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrNotFound
	}

	return nil
}
