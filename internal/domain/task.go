package domain

import "time"

// Task is the business entity. It does not depend on Gin, Postgres or Redis.
type Task struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`

	// ReminderAt is the resolved trigger moment of the pending reminder,
	// nil when no reminder is set. Cleared once the reminder fires, is
	// cancelled, or the task completes.
	ReminderAt *time.Time `json:"reminder_at,omitempty"`

	// NotificationHandle is the notification service's token for the live
	// reminder. It is process-local and never serialized or exposed.
	NotificationHandle string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasLiveReminder reports whether a reminder is currently scheduled.
func (t Task) HasLiveReminder() bool { return t.NotificationHandle != "" }
