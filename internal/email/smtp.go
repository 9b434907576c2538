package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/vedant-maheshwari09/mylife/internal/config"
)

// sendFunc matches smtp.SendMail; it is a field so tests can intercept
// delivery without a real SMTP server.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer delivers reminder e-mails over SMTP with PLAIN auth.
type SMTPMailer struct {
	cfg    config.EmailConfig
	logger *slog.Logger
	send   sendFunc
}

// NewSMTPMailer creates a Mailer backed by the configured SMTP server.
func NewSMTPMailer(cfg config.EmailConfig, logger *slog.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SMTPMailer{
		cfg:    cfg,
		logger: logger.With("component", "smtp_mailer"),
		send:   smtp.SendMail,
	}, nil
}

// SendTodoReminder sends a reminder e-mail for a todo. The context is
// checked before dialing; net/smtp itself does not take a context.
func (m *SMTPMailer) SendTodoReminder(ctx context.Context, to, title, dueDate, dueTime string) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	subject, body := buildReminderMessage(title, dueDate, dueTime)
	msg := formatMessage(m.cfg.From, to, subject, body)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		m.logger.ErrorContext(ctx, "Failed to send reminder e-mail", "to", to, "error", err)
		return fmt.Errorf("failed to send reminder e-mail to %s: %w", to, err)
	}

	m.logger.InfoContext(ctx, "Reminder e-mail sent", "to", to, "subject", subject)
	return nil
}

// formatMessage assembles an RFC 5322 message with CRLF line endings.
func formatMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
