package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

// CleanupStore is the slice of the storage layer the cleanup sweep needs.
type CleanupStore interface {
	CleanupCompletedTodos(ctx context.Context, olderThan time.Time) (int64, error)
	RunSQLMaintenance(ctx context.Context) error
}

// CleanupService periodically deletes todos that have been completed
// for longer than the retention window, keeping storage bounded. After
// a sweep that removed rows it also runs storage maintenance (VACUUM).
//
// Lifecycle is identical to ReminderService, including the double-start
// guard: invoking Start twice never schedules a second timer.
type CleanupService struct {
	logger    *slog.Logger
	store     CleanupStore
	interval  time.Duration
	retention time.Duration
	clock     clockwork.Clock

	mu        sync.Mutex
	scheduler gocron.Scheduler
	running   bool

	runMu sync.Mutex
}

// NewCleanupService creates a cleanup sweep. interval is how often the
// sweep runs; retention is how long completed todos are kept. A nil
// clock falls back to the real clock.
func NewCleanupService(
	logger *slog.Logger,
	store CleanupStore,
	interval time.Duration,
	retention time.Duration,
	clock clockwork.Clock,
) *CleanupService {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &CleanupService{
		logger:    logger.With("component", "cleanup_service"),
		store:     store,
		interval:  interval,
		retention: retention,
		clock:     clock,
	}
}

// Start runs one immediate cleanup pass and then schedules a repeating
// pass every interval. Calling Start while the service is already
// running is a no-op.
func (s *CleanupService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Info("Cleanup service already running, ignoring start")
		return nil
	}

	sched, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithClock(s.clock),
	)
	if err != nil {
		return fmt.Errorf("failed to create cleanup scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.runCleanup),
		gocron.WithName("todo_cleanup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		if shutdownErr := sched.Shutdown(); shutdownErr != nil {
			s.logger.Error("Error shutting down scheduler after job setup failure", "error", shutdownErr)
		}
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}

	sched.Start()
	s.scheduler = sched
	s.running = true

	s.logger.Info("Cleanup service started",
		"interval", s.interval, "retention", s.retention)
	return nil
}

// Stop cancels the repeating pass. In-flight work is not aborted.
// Calling Stop while stopped is a no-op.
func (s *CleanupService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		s.logger.Info("Cleanup service is not running, nothing to stop")
		return nil
	}

	err := s.scheduler.Shutdown()
	s.scheduler = nil
	s.running = false

	if err != nil {
		s.logger.Error("Error during cleanup service shutdown", "error", err)
		return fmt.Errorf("failed to shut down cleanup scheduler: %w", err)
	}

	s.logger.Info("Cleanup service stopped")
	return nil
}

// IsRunning reports whether the periodic sweep is scheduled.
func (s *CleanupService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// ManualCleanup runs exactly one cleanup pass and returns the number of
// todos removed. It performs no side effects beyond the single storage
// call, so callers can rely on the returned count matching what one
// automatic cycle would have removed.
func (s *CleanupService) ManualCleanup(ctx context.Context) (int64, error) {
	return s.cleanupOnce(ctx)
}

// cleanupOnce deletes todos completed strictly before now-retention.
func (s *CleanupService) cleanupOnce(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().UTC().Add(-s.retention)

	count, err := s.store.CleanupCompletedTodos(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup of completed todos failed: %w", err)
	}

	return count, nil
}

// runCleanup performs one scheduled sweep. Nothing escapes it: storage
// failures are logged and the timer keeps running.
func (s *CleanupService) runCleanup() {
	if !s.runMu.TryLock() {
		s.logger.Warn("Previous cleanup pass still in progress, skipping this cycle")
		return
	}
	defer s.runMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	count, err := s.cleanupOnce(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Cleanup pass failed", "error", err)
		return
	}

	if count == 0 {
		s.logger.InfoContext(ctx, "No completed todos to clean up")
		return
	}

	s.logger.InfoContext(ctx, "Cleaned up completed todos", "removed", count)

	// Reclaim the freed pages while the sweep already holds the write window.
	if err := s.store.RunSQLMaintenance(ctx); err != nil {
		s.logger.WarnContext(ctx, "Post-cleanup maintenance failed", "error", err)
	}
}
