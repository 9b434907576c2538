package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/vedant-maheshwari09/mylife/internal/config"
)

func TestBuildReminderMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		title       string
		dueDate     string
		dueTime     string
		wantSubject string
		wantInBody  []string
	}{
		{
			name:        "date and time",
			title:       "Pay rent",
			dueDate:     "2026-09-01",
			dueTime:     "09:00",
			wantSubject: "Reminder: Pay rent",
			wantInBody:  []string{"Pay rent", "Due on 2026-09-01 at 09:00."},
		},
		{
			name:        "date only",
			title:       "Call dentist",
			dueDate:     "2026-09-01",
			wantSubject: "Reminder: Call dentist",
			wantInBody:  []string{"Call dentist", "Due on 2026-09-01."},
		},
		{
			name:        "no deadline",
			title:       "Water plants",
			wantSubject: "Reminder: Water plants",
			wantInBody:  []string{"Water plants"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			subject, body := buildReminderMessage(tt.title, tt.dueDate, tt.dueTime)
			if subject != tt.wantSubject {
				t.Errorf("expected subject %q, got %q", tt.wantSubject, subject)
			}
			for _, want := range tt.wantInBody {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q:\n%s", want, body)
				}
			}
			if tt.dueDate == "" && strings.Contains(body, "Due on") {
				t.Errorf("body mentions a deadline for a todo without one:\n%s", body)
			}
		})
	}
}

func TestNewSMTPMailer_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewSMTPMailer(config.EmailConfig{From: "mylife@example.com"}, nil); err == nil {
		t.Error("expected error for missing host")
	}
	if _, err := NewSMTPMailer(config.EmailConfig{Host: "smtp.example.com"}, nil); err == nil {
		t.Error("expected error for missing from address")
	}
}

func testMailerConfig() config.EmailConfig {
	return config.EmailConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mylife",
		Password: "secret",
		From:     "mylife@example.com",
	}
}

func TestSMTPMailer_SendTodoReminder(t *testing.T) {
	t.Parallel()

	mailer, err := NewSMTPMailer(testMailerConfig(), nil)
	if err != nil {
		t.Fatalf("NewSMTPMailer failed: %v", err)
	}

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg string
	mailer.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotFrom = from
		gotTo = to
		gotMsg = string(msg)
		if a == nil {
			t.Error("expected PLAIN auth when username is configured")
		}
		return nil
	}

	err = mailer.SendTodoReminder(context.Background(), "me@example.com", "Pay rent", "2026-09-01", "09:00")
	if err != nil {
		t.Fatalf("SendTodoReminder failed: %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Errorf("unexpected server address %q", gotAddr)
	}
	if gotFrom != "mylife@example.com" {
		t.Errorf("unexpected from address %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "me@example.com" {
		t.Errorf("unexpected recipients %v", gotTo)
	}

	for _, want := range []string{
		"From: mylife@example.com\r\n",
		"To: me@example.com\r\n",
		"Subject: Reminder: Pay rent\r\n",
		"Due on 2026-09-01 at 09:00.",
	} {
		if !strings.Contains(gotMsg, want) {
			t.Errorf("message missing %q:\n%s", want, gotMsg)
		}
	}
}

func TestSMTPMailer_SendFailure(t *testing.T) {
	t.Parallel()

	mailer, err := NewSMTPMailer(testMailerConfig(), nil)
	if err != nil {
		t.Fatalf("NewSMTPMailer failed: %v", err)
	}

	dialErr := errors.New("dial failed")
	mailer.send = func(string, smtp.Auth, string, []string, []byte) error {
		return dialErr
	}

	err = mailer.SendTodoReminder(context.Background(), "me@example.com", "Pay rent", "", "")
	if !errors.Is(err, dialErr) {
		t.Errorf("expected wrapped dial error, got %v", err)
	}
}

func TestSMTPMailer_RejectsEmptyRecipient(t *testing.T) {
	t.Parallel()

	mailer, err := NewSMTPMailer(testMailerConfig(), nil)
	if err != nil {
		t.Fatalf("NewSMTPMailer failed: %v", err)
	}

	mailer.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Error("send must not be called for an empty recipient")
		return nil
	}

	if err := mailer.SendTodoReminder(context.Background(), "", "Title", "", ""); err == nil {
		t.Error("expected error for empty recipient")
	}
}
