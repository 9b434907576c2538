// Package main contains the entrypoint for the MyLife server.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vedant-maheshwari09/mylife/internal/app"
	"github.com/vedant-maheshwari09/mylife/internal/assistant"
	"github.com/vedant-maheshwari09/mylife/internal/config"
	"github.com/vedant-maheshwari09/mylife/internal/database"
	"github.com/vedant-maheshwari09/mylife/internal/email"
	"github.com/vedant-maheshwari09/mylife/internal/logger"
	"github.com/vedant-maheshwari09/mylife/internal/scheduler"
	"github.com/vedant-maheshwari09/mylife/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes all components (config, logger, database, mailer,
// assistant, background services, HTTP server), runs the application
// until shutdown, and returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.Format == "json")
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	var mailer email.Mailer
	if cfg.Email.Enabled {
		smtpMailer, err := email.NewSMTPMailer(cfg.Email, log)
		if err != nil {
			log.Error("Failed to initialize SMTP mailer", "error", err)
			return 1
		}
		mailer = smtpMailer
	} else {
		mailer = email.NewLogMailer(log)
	}

	assistantClient, err := assistant.NewClient(ctx, cfg.Gemini, log)
	if err != nil {
		if !errors.Is(err, assistant.ErrDisabled) {
			log.Error("Failed to initialize assistant client", "error", err)
			return 1
		}
		log.Info("Assistant disabled: no API key configured")
		assistantClient = nil
	}

	reminder := scheduler.NewReminderService(log, store, mailer, cfg.Scheduler.ReminderInterval, nil)
	cleanup := scheduler.NewCleanupService(log, store, cfg.Scheduler.CleanupInterval, cfg.Scheduler.Retention, nil)

	srv := server.New(log, store, assistantClient, reminder, cleanup)
	application := app.New(log, cfg, srv, reminder, cleanup)

	log.Info("Starting MyLife...")
	runErr := application.Run(ctx) // Run blocks until context is cancelled or an error occurs
	log.Info("Run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Application stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Application stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
