package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vedant-maheshwari09/mylife/internal/database"
)

func TestNoteCRUD(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	note := &database.Note{Title: "Ideas", Content: "Learn Go generics"}
	if err := store.CreateNote(ctx, note); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	if note.ID == 0 {
		t.Fatal("expected generated ID after create")
	}

	got, err := store.GetNote(ctx, note.ID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got.Content != "Learn Go generics" {
		t.Errorf("unexpected note: %+v", got)
	}

	got.Content = "Learn Go generics and iterators"
	if err := store.UpdateNote(ctx, got); err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}

	notes, err := store.ListNotes(ctx)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 1 || notes[0].Content != "Learn Go generics and iterators" {
		t.Errorf("unexpected notes list: %+v", notes)
	}

	if err := store.DeleteNote(ctx, note.ID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if _, err := store.GetNote(ctx, note.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestGoalCRUD(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	goal := &database.Goal{Title: "Run a marathon", Progress: 10}
	if err := store.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	goal.Progress = 55
	if err := store.UpdateGoal(ctx, goal); err != nil {
		t.Fatalf("UpdateGoal failed: %v", err)
	}

	got, err := store.GetGoal(ctx, goal.ID)
	if err != nil {
		t.Fatalf("GetGoal failed: %v", err)
	}
	if got.Progress != 55 || got.Completed {
		t.Errorf("unexpected goal: %+v", got)
	}

	if err := store.DeleteGoal(ctx, goal.ID); err != nil {
		t.Fatalf("DeleteGoal failed: %v", err)
	}
	if _, err := store.GetGoal(ctx, goal.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCreateGoal_RejectsInvalidProgress(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	tests := []struct {
		name     string
		progress int
	}{
		{name: "negative", progress: -1},
		{name: "over 100", progress: 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			goal := &database.Goal{Title: "Bad goal", Progress: tt.progress}
			if err := store.CreateGoal(context.Background(), goal); err == nil {
				t.Errorf("expected error for progress %d", tt.progress)
			}
		})
	}
}

func TestActivityCreateListDelete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	activity := &database.Activity{
		Title:           "Morning run",
		DurationMinutes: 30,
		OccurredAt:      time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC),
	}
	if err := store.CreateActivity(ctx, activity); err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}

	activities, err := store.ListActivities(ctx)
	if err != nil {
		t.Fatalf("ListActivities failed: %v", err)
	}
	if len(activities) != 1 || activities[0].Title != "Morning run" {
		t.Errorf("unexpected activities: %+v", activities)
	}

	if err := store.DeleteActivity(ctx, activity.ID); err != nil {
		t.Fatalf("DeleteActivity failed: %v", err)
	}
	if err := store.DeleteActivity(ctx, activity.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMoodEntries(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		entry := &database.MoodEntry{
			Mood:       "good",
			Score:      7,
			RecordedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.CreateMoodEntry(ctx, entry); err != nil {
			t.Fatalf("CreateMoodEntry failed: %v", err)
		}
	}

	entries, err := store.ListMoodEntries(ctx, 2)
	if err != nil {
		t.Fatalf("ListMoodEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected limit of 2 entries, got %d", len(entries))
	}
	if !entries[0].RecordedAt.After(entries[1].RecordedAt) {
		t.Errorf("expected newest first, got %v then %v", entries[0].RecordedAt, entries[1].RecordedAt)
	}

	if err := store.CreateMoodEntry(ctx, &database.MoodEntry{Score: 5}); err == nil {
		t.Error("expected error for empty mood")
	}
}
