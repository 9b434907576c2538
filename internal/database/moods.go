package database

import (
	"context"
	"fmt"
	"time"
)

// CreateMoodEntry inserts a new mood-tracking data point.
func (s *sqlxStore) CreateMoodEntry(ctx context.Context, entry *MoodEntry) error {
	if entry == nil {
		return fmt.Errorf("cannot save nil mood entry")
	}
	if entry.Mood == "" {
		return fmt.Errorf("mood entry must have a non-empty mood")
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}

	entry.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO mood_entries (created_at, mood, score, note, recorded_at)
        VALUES (:created_at, :mood, :score, :note, :recorded_at);
    `

	result, err := s.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving mood entry", "mood", entry.Mood, "error", err)
		return fmt.Errorf("failed to save mood entry: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}

	return nil
}

// ListMoodEntries retrieves the most recent mood entries, newest first.
// A non-positive limit falls back to a reasonable default.
func (s *sqlxStore) ListMoodEntries(ctx context.Context, limit int) ([]MoodEntry, error) {
	if limit <= 0 {
		limit = 30
	} else if limit > 365 {
		limit = 365
	}

	var entries []MoodEntry
	query := `
        SELECT id, created_at, mood, score, note, recorded_at
        FROM mood_entries ORDER BY recorded_at DESC LIMIT ?
    `

	if err := s.db.SelectContext(ctx, &entries, query, limit); err != nil {
		s.logger.ErrorContext(ctx, "Error listing mood entries", "error", err)
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}

	return entries, nil
}
