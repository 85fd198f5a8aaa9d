package notify

import (
	"context"
	"time"
)

// Payload is the opaque data attached to a scheduled alert, handed back
// on delivery and when the user opens the notification.
type Payload struct {
	TaskID   string `json:"task_id"`
	TaskName string `json:"task_name"`
}

// Notifier is the notification service collaborator: one-shot alerts
// identified by opaque handles.
type Notifier interface {
	// RequestPermission asks the platform for permission to alert the
	// user. Denial is not an error.
	RequestPermission(ctx context.Context) (bool, error)

	// ScheduleOneShot schedules a single alert at the given moment and
	// returns its handle.
	ScheduleOneShot(ctx context.Context, p Payload, at time.Time) (string, error)

	// Cancel revokes a scheduled alert. Idempotent: cancelling an
	// unknown or already-fired handle does nothing.
	Cancel(ctx context.Context, handle string)
}
