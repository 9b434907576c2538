package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vedant-maheshwari09/mylife/internal/scheduler"
)

type fakeCleanupStore struct {
	mu sync.Mutex

	count int64
	err   error

	cleanupCalls     int
	maintenanceCalls int
	lastOlderThan    time.Time
}

func (f *fakeCleanupStore) CleanupCompletedTodos(_ context.Context, olderThan time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cleanupCalls++
	f.lastOlderThan = olderThan
	return f.count, f.err
}

func (f *fakeCleanupStore) RunSQLMaintenance(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.maintenanceCalls++
	return nil
}

func (f *fakeCleanupStore) snapshot() (cleanups, maintenances int, olderThan time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cleanupCalls, f.maintenanceCalls, f.lastOlderThan
}

func TestCleanupService_ManualCleanup_ReturnsCount(t *testing.T) {
	t.Parallel()

	store := &fakeCleanupStore{count: 4}
	svc := scheduler.NewCleanupService(nil, store, 24*time.Hour, 24*time.Hour, nil)

	got, err := svc.ManualCleanup(context.Background())
	if err != nil {
		t.Fatalf("ManualCleanup failed: %v", err)
	}
	if got != 4 {
		t.Errorf("expected 4 removed, got %d", got)
	}

	cleanups, maintenances, _ := store.snapshot()
	if cleanups != 1 {
		t.Errorf("expected exactly one storage call, got %d", cleanups)
	}
	if maintenances != 0 {
		t.Errorf("manual cleanup must not trigger maintenance, got %d calls", maintenances)
	}
}

func TestCleanupService_ManualCleanup_CutoffFromClockAndRetention(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	tests := []struct {
		name      string
		retention time.Duration
		want      time.Time
	}{
		{
			name:      "default 24h retention",
			retention: 24 * time.Hour,
			want:      now.Add(-24 * time.Hour),
		},
		{
			name:      "one hour retention",
			retention: time.Hour,
			want:      now.Add(-time.Hour),
		},
		{
			name:      "one week retention",
			retention: 7 * 24 * time.Hour,
			want:      now.Add(-7 * 24 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &fakeCleanupStore{}
			svc := scheduler.NewCleanupService(nil, store, 24*time.Hour, tt.retention, clock)

			if _, err := svc.ManualCleanup(context.Background()); err != nil {
				t.Fatalf("ManualCleanup failed: %v", err)
			}

			_, _, olderThan := store.snapshot()
			if !olderThan.Equal(tt.want) {
				t.Errorf("expected cutoff %v, got %v", tt.want, olderThan)
			}
		})
	}
}

func TestCleanupService_ManualCleanup_StorageError(t *testing.T) {
	t.Parallel()

	store := &fakeCleanupStore{err: errors.New("database is locked")}
	svc := scheduler.NewCleanupService(nil, store, 24*time.Hour, 24*time.Hour, nil)

	got, err := svc.ManualCleanup(context.Background())
	if err == nil {
		t.Fatal("expected an error from ManualCleanup")
	}
	if got != 0 {
		t.Errorf("expected zero count on error, got %d", got)
	}
}

func TestCleanupService_StartStopLifecycle(t *testing.T) {
	t.Parallel()

	store := &fakeCleanupStore{}
	svc := scheduler.NewCleanupService(nil, store, time.Hour, 24*time.Hour, nil)

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

func TestCleanupService_StartRunsImmediateSweep(t *testing.T) {
	t.Parallel()

	store := &fakeCleanupStore{}
	svc := scheduler.NewCleanupService(nil, store, time.Hour, 24*time.Hour, nil)

	if err := svc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() {
		if err := svc.Stop(); err != nil {
			t.Errorf("Stop failed: %v", err)
		}
	}()

	deadline := time.After(5 * time.Second)
	for {
		cleanups, _, _ := store.snapshot()
		if cleanups >= 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("expected an immediate sweep after Start")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
