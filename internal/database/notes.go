package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateNote inserts a new note record and fills in its generated ID.
func (s *sqlxStore) CreateNote(ctx context.Context, note *Note) error {
	if note == nil {
		return fmt.Errorf("cannot save nil note")
	}
	if note.Title == "" {
		return fmt.Errorf("note must have a non-empty title")
	}

	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	query := `
        INSERT INTO notes (created_at, updated_at, title, content)
        VALUES (:created_at, :updated_at, :title, :content);
    `

	result, err := s.db.NamedExecContext(ctx, query, note)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving note", "title", note.Title, "error", err)
		return fmt.Errorf("failed to save note: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		note.ID = id
	}

	return nil
}

// GetNote retrieves a note by ID. Returns ErrNotFound if it does not exist.
func (s *sqlxStore) GetNote(ctx context.Context, id int64) (*Note, error) {
	var note Note
	query := `SELECT id, created_at, updated_at, title, content FROM notes WHERE id = ?`

	err := s.db.GetContext(ctx, &note, query, id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting note", "note_id", id, "error", err)
		return nil, fmt.Errorf("failed to get note %d: %w", id, err)
	}

	return &note, nil
}

// ListNotes retrieves all notes, most recently updated first.
func (s *sqlxStore) ListNotes(ctx context.Context) ([]Note, error) {
	var notes []Note
	query := `SELECT id, created_at, updated_at, title, content FROM notes ORDER BY updated_at DESC`

	if err := s.db.SelectContext(ctx, &notes, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing notes", "error", err)
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

// UpdateNote persists the full state of an existing note.
func (s *sqlxStore) UpdateNote(ctx context.Context, note *Note) error {
	if note == nil {
		return fmt.Errorf("cannot update nil note")
	}

	note.UpdatedAt = time.Now().UTC()

	query := `
        UPDATE notes SET updated_at = :updated_at, title = :title, content = :content
        WHERE id = :id
    `

	result, err := s.db.NamedExecContext(ctx, query, note)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error updating note", "note_id", note.ID, "error", err)
		return fmt.Errorf("failed to update note %d: %w", note.ID, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteNote removes a note by ID. Returns ErrNotFound if nothing was deleted.
func (s *sqlxStore) DeleteNote(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting note", "note_id", id, "error", err)
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrNotFound
	}

	return nil
}
