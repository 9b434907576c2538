// Package scheduler implements the background services of MyLife: the
// reminder poller and the completed-todo cleanup sweep. Each service
// owns a single periodic job on its own gocron scheduler, with an
// injectable clock so tests do not depend on the wall clock.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"github.com/vedant-maheshwari09/mylife/internal/database"
	"github.com/vedant-maheshwari09/mylife/internal/email"
)

// opTimeout bounds one pass of a periodic job, storage and delivery
// calls included.
const opTimeout = 2 * time.Minute

// ReminderStore is the slice of the storage layer the reminder poller needs.
type ReminderStore interface {
	GetTodosNeedingReminders(ctx context.Context, now time.Time) ([]database.Todo, error)
}

// ReminderService polls storage for todos whose reminder time has
// arrived and dispatches one e-mail attempt per returned todo.
//
// Lifecycle: Stopped -> Running on Start, Running -> Stopped on Stop.
// Start while running and Stop while stopped are logged no-ops. The
// service holds at most one live timer.
type ReminderService struct {
	logger   *slog.Logger
	store    ReminderStore
	mailer   email.Mailer
	interval time.Duration
	clock    clockwork.Clock

	mu        sync.Mutex
	scheduler gocron.Scheduler
	running   bool

	// runMu makes polling passes mutually exclusive: a tick that fires
	// while the previous pass is still in flight is skipped, not queued.
	runMu sync.Mutex
}

// NewReminderService creates a reminder poller. interval is how often
// storage is polled; a nil clock falls back to the real clock.
func NewReminderService(
	logger *slog.Logger,
	store ReminderStore,
	mailer email.Mailer,
	interval time.Duration,
	clock clockwork.Clock,
) *ReminderService {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &ReminderService{
		logger:   logger.With("component", "reminder_service"),
		store:    store,
		mailer:   mailer,
		interval: interval,
		clock:    clock,
	}
}

// Start runs one immediate check and then schedules a repeating check
// every interval. Calling Start while the service is already running is
// a no-op.
func (s *ReminderService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Info("Reminder service already running, ignoring start")
		return nil
	}

	sched, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithClock(s.clock),
	)
	if err != nil {
		return fmt.Errorf("failed to create reminder scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.checkReminders),
		gocron.WithName("todo_reminders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		if shutdownErr := sched.Shutdown(); shutdownErr != nil {
			s.logger.Error("Error shutting down scheduler after job setup failure", "error", shutdownErr)
		}
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}

	sched.Start()
	s.scheduler = sched
	s.running = true

	s.logger.Info("Reminder service started", "interval", s.interval)
	return nil
}

// Stop cancels the repeating check. In-flight work is not aborted;
// gocron's shutdown waits for a running pass to finish. Calling Stop
// while stopped is a no-op.
func (s *ReminderService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		s.logger.Info("Reminder service is not running, nothing to stop")
		return nil
	}

	err := s.scheduler.Shutdown()
	s.scheduler = nil
	s.running = false

	if err != nil {
		s.logger.Error("Error during reminder service shutdown", "error", err)
		return fmt.Errorf("failed to shut down reminder scheduler: %w", err)
	}

	s.logger.Info("Reminder service stopped")
	return nil
}

// IsRunning reports whether the periodic check is scheduled.
func (s *ReminderService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// TriggerCheck runs one reminder check immediately, with the same
// semantics as a timer-driven pass.
func (s *ReminderService) TriggerCheck() {
	s.checkReminders()
}

// checkReminders performs one polling pass. Nothing escapes it: storage
// failures abort the pass, per-todo delivery failures are logged and the
// rest of the batch is still attempted.
func (s *ReminderService) checkReminders() {
	if !s.runMu.TryLock() {
		s.logger.Warn("Previous reminder check still in progress, skipping this cycle")
		return
	}
	defer s.runMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := s.clock.Now().UTC()

	todos, err := s.store.GetTodosNeedingReminders(ctx, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to query todos needing reminders", "error", err)
		return
	}

	if len(todos) == 0 {
		s.logger.DebugContext(ctx, "No todos due for reminder")
		return
	}

	var sent, failed int
	for _, todo := range todos {
		err := s.mailer.SendTodoReminder(ctx, todo.UserEmail, todo.Title,
			todo.DueDate.String, todo.DueTime.String)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to send reminder e-mail",
				"todo_id", todo.ID, "to", todo.UserEmail, "error", err)
			failed++
			continue
		}
		sent++
	}

	s.logger.InfoContext(ctx, "Processed due reminders",
		"due", len(todos), "sent", sent, "failed", failed)
}
