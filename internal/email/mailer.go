// Package email implements reminder e-mail delivery for MyLife.
// The Mailer interface keeps delivery swappable; the reminder poller
// only depends on the interface.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Mailer defines the outbound delivery interface used by the reminder poller.
type Mailer interface {
	// SendTodoReminder sends a reminder for a todo to the given address.
	// dueDate ("2006-01-02") and dueTime ("15:04") may be empty when the
	// todo has no deadline.
	SendTodoReminder(ctx context.Context, to, title, dueDate, dueTime string) error
}

// buildReminderMessage renders the subject and body of a reminder e-mail.
func buildReminderMessage(title, dueDate, dueTime string) (subject, body string) {
	subject = fmt.Sprintf("Reminder: %s", title)

	var b strings.Builder
	b.WriteString("This is a reminder for your todo:\n\n")
	b.WriteString(fmt.Sprintf("  %s\n", title))

	switch {
	case dueDate != "" && dueTime != "":
		b.WriteString(fmt.Sprintf("\nDue on %s at %s.\n", dueDate, dueTime))
	case dueDate != "":
		b.WriteString(fmt.Sprintf("\nDue on %s.\n", dueDate))
	}

	b.WriteString("\n— MyLife\n")
	return subject, b.String()
}

// LogMailer is used when e-mail delivery is disabled. It logs the
// reminder instead of sending it, so the poller behaves identically in
// development setups without an SMTP server.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a Mailer that only logs.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger.With("component", "log_mailer")}
}

// SendTodoReminder logs the reminder that would have been sent.
func (m *LogMailer) SendTodoReminder(ctx context.Context, to, title, dueDate, dueTime string) error {
	subject, _ := buildReminderMessage(title, dueDate, dueTime)
	m.logger.InfoContext(ctx, "E-mail delivery disabled, logging reminder instead",
		"to", to, "subject", subject)
	return nil
}
