// Package app orchestrates the lifecycle of the MyLife components: the
// HTTP API server and the background reminder and cleanup services.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vedant-maheshwari09/mylife/internal/config"
	"github.com/vedant-maheshwari09/mylife/internal/scheduler"
	"github.com/vedant-maheshwari09/mylife/internal/server"
)

const shutdownTimeout = 10 * time.Second

// App ties the HTTP server and the background services together and
// manages their startup and graceful shutdown.
type App struct {
	logger   *slog.Logger
	cfg      *config.Config
	srv      *server.Server
	reminder *scheduler.ReminderService
	cleanup  *scheduler.CleanupService
}

// New creates the application orchestrator with all required dependencies.
func New(
	logger *slog.Logger,
	cfg *config.Config,
	srv *server.Server,
	reminder *scheduler.ReminderService,
	cleanup *scheduler.CleanupService,
) *App {
	return &App{
		logger:   logger.With("component", "app"),
		cfg:      cfg,
		srv:      srv,
		reminder: reminder,
		cleanup:  cleanup,
	}
}

// Run starts all components and blocks until the context is cancelled
// or a component fails. Shutdown is graceful: the HTTP server drains
// in-flight requests and both background services stop their timers.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Starting application...")

	g, gCtx := errgroup.WithContext(ctx)

	httpSrv := &http.Server{
		Addr:         a.cfg.HTTP.Addr,
		Handler:      a.srv.Handler(),
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
	}

	g.Go(func() error {
		a.logger.Info("Starting HTTP server", "addr", a.cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("Shutdown signal received, stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Error during HTTP server shutdown", "error", err)
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		a.logger.Info("Starting reminder service...")
		if err := a.reminder.Start(); err != nil {
			a.logger.Error("Failed to start reminder service", "error", err)
			return fmt.Errorf("failed to start reminder service: %w", err)
		}

		<-gCtx.Done()
		a.logger.Info("Shutdown signal received, stopping reminder service...")

		if err := a.reminder.Stop(); err != nil {
			a.logger.Error("Error stopping reminder service", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		a.logger.Info("Starting cleanup service...")
		if err := a.cleanup.Start(); err != nil {
			a.logger.Error("Failed to start cleanup service", "error", err)
			return fmt.Errorf("failed to start cleanup service: %w", err)
		}

		<-gCtx.Done()
		a.logger.Info("Shutdown signal received, stopping cleanup service...")

		if err := a.cleanup.Stop(); err != nil {
			a.logger.Error("Error stopping cleanup service", "error", err)
		}
		return nil
	})

	a.logger.Info("Application running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("Application stopped due to error", "error", err)
		return err
	}

	a.logger.Info("Application stopped gracefully.")
	return nil
}
