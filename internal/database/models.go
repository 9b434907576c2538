package database

import (
	"database/sql"
	"time"
)

// Todo represents a single task in the organizer. The reminder fields
// drive the background reminder poller: ReminderAt is when the owner
// wants to be nudged, ReminderSent flips once a reminder e-mail attempt
// has been made, and DueDate/DueTime are the human-facing deadline
// strings ("2006-01-02" / "15:04") included in the e-mail.
type Todo struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	Title       string `db:"title"`
	Description string `db:"description"`
	UserEmail   string `db:"user_email"`

	DueDate sql.NullString `db:"due_date"`
	DueTime sql.NullString `db:"due_time"`

	ReminderAt   sql.NullTime `db:"reminder_at"`
	ReminderSent bool         `db:"reminder_sent"`

	Completed   bool         `db:"completed"`
	CompletedAt sql.NullTime `db:"completed_at"`
}

// Note is a free-form text note.
type Note struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	Title   string `db:"title"`
	Content string `db:"content"`
}

// Goal tracks a longer-term objective with a progress percentage.
type Goal struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	Title       string         `db:"title"`
	Description string         `db:"description"`
	TargetDate  sql.NullString `db:"target_date"`
	Progress    int            `db:"progress"`
	Completed   bool           `db:"completed"`
}

// Activity records something the user did, with an optional duration.
type Activity struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	Title           string    `db:"title"`
	Notes           string    `db:"notes"`
	DurationMinutes int       `db:"duration_minutes"`
	OccurredAt      time.Time `db:"occurred_at"`
}

// MoodEntry is a single mood-tracking data point.
type MoodEntry struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	Mood       string    `db:"mood"`
	Score      int       `db:"score"`
	Note       string    `db:"note"`
	RecordedAt time.Time `db:"recorded_at"`
}
