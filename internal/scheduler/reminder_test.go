package scheduler_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vedant-maheshwari09/mylife/internal/database"
	"github.com/vedant-maheshwari09/mylife/internal/scheduler"
)

type fakeReminderStore struct {
	mu    sync.Mutex
	todos []database.Todo
	err   error
	calls int

	// When set, the store signals entered on each call and blocks until
	// release is closed. Used to hold a pass open.
	entered chan struct{}
	release chan struct{}
}

func (f *fakeReminderStore) GetTodosNeedingReminders(_ context.Context, _ time.Time) ([]database.Todo, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}

	return f.todos, f.err
}

func (f *fakeReminderStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
}

func (f *fakeMailer) SendTodoReminder(_ context.Context, to, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, to)
	if err, ok := f.failFor[to]; ok {
		return err
	}
	return nil
}

func (f *fakeMailer) attempts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func reminderTodo(id int64, title, userEmail string) database.Todo {
	return database.Todo{
		ID:        id,
		Title:     title,
		UserEmail: userEmail,
		DueDate:   sql.NullString{String: "2026-09-01", Valid: true},
		ReminderAt: sql.NullTime{
			Time:  time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
			Valid: true,
		},
	}
}

func TestReminderService_TriggerCheck_SendsOnePerTodo(t *testing.T) {
	t.Parallel()

	store := &fakeReminderStore{todos: []database.Todo{
		reminderTodo(1, "Pay rent", "a@example.com"),
		reminderTodo(2, "Call dentist", "b@example.com"),
		reminderTodo(3, "Water plants", "c@example.com"),
	}}
	mailer := &fakeMailer{}

	svc := scheduler.NewReminderService(nil, store, mailer, time.Minute, nil)
	svc.TriggerCheck()

	got := mailer.attempts()
	if len(got) != 3 {
		t.Fatalf("expected 3 delivery attempts, got %d: %v", len(got), got)
	}

	want := map[string]bool{"a@example.com": true, "b@example.com": true, "c@example.com": true}
	for _, to := range got {
		if !want[to] {
			t.Errorf("unexpected or duplicate recipient %q", to)
		}
		delete(want, to)
	}
}

func TestReminderService_TriggerCheck_ContinuesAfterDeliveryFailure(t *testing.T) {
	t.Parallel()

	store := &fakeReminderStore{todos: []database.Todo{
		reminderTodo(1, "First", "fail@example.com"),
		reminderTodo(2, "Second", "ok@example.com"),
	}}
	mailer := &fakeMailer{failFor: map[string]error{
		"fail@example.com": errors.New("smtp connection refused"),
	}}

	svc := scheduler.NewReminderService(nil, store, mailer, time.Minute, nil)
	svc.TriggerCheck()

	got := mailer.attempts()
	if len(got) != 2 {
		t.Fatalf("expected both todos to be attempted despite the failure, got %v", got)
	}
	if got[1] != "ok@example.com" {
		t.Errorf("expected the batch to continue past the failed send, got %v", got)
	}
}

func TestReminderService_TriggerCheck_StorageErrorAbortsPass(t *testing.T) {
	t.Parallel()

	store := &fakeReminderStore{err: errors.New("database is locked")}
	mailer := &fakeMailer{}

	svc := scheduler.NewReminderService(nil, store, mailer, time.Minute, nil)
	svc.TriggerCheck()

	if got := mailer.attempts(); len(got) != 0 {
		t.Fatalf("expected no delivery attempts after a storage failure, got %v", got)
	}
}

func TestReminderService_SkipsOverlappingPass(t *testing.T) {
	t.Parallel()

	store := &fakeReminderStore{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	mailer := &fakeMailer{}

	svc := scheduler.NewReminderService(nil, store, mailer, time.Minute, nil)

	done := make(chan struct{})
	go func() {
		svc.TriggerCheck()
		close(done)
	}()

	// Wait until the first pass is inside the storage call, then fire a
	// second pass. It must return without touching storage.
	<-store.entered
	svc.TriggerCheck()

	if got := store.callCount(); got != 1 {
		t.Errorf("expected the overlapping pass to be skipped, storage was called %d times", got)
	}

	close(store.release)
	<-done
}

func TestReminderService_StartStopLifecycle(t *testing.T) {
	t.Parallel()

	store := &fakeReminderStore{}
	mailer := &fakeMailer{}

	svc := scheduler.NewReminderService(nil, store, mailer, time.Hour, nil)

	if svc.IsRunning() {
		t.Fatal("service should not be running before Start")
	}

	if err := svc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !svc.IsRunning() {
		t.Fatal("service should be running after Start")
	}

	// Second Start is a no-op; one Stop must be enough afterwards.
	if err := svc.Start(); err != nil {
		t.Fatalf("second Start should be a no-op, got error: %v", err)
	}

	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if svc.IsRunning() {
		t.Fatal("service should not be running after Stop")
	}

	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop while stopped should be a no-op, got error: %v", err)
	}
}

func TestReminderService_StartRunsImmediateCheck(t *testing.T) {
	t.Parallel()

	store := &fakeReminderStore{entered: make(chan struct{}, 4)}
	mailer := &fakeMailer{}

	svc := scheduler.NewReminderService(nil, store, mailer, time.Hour, nil)
	if err := svc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() {
		if err := svc.Stop(); err != nil {
			t.Errorf("Stop failed: %v", err)
		}
	}()

	select {
	case <-store.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("expected an immediate check after Start")
	}
}
