package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akankshasoni024/My-Tasks-App/internal/notify"
	"github.com/akankshasoni024/My-Tasks-App/internal/store"

	"github.com/rs/zerolog"
)

var ErrTaskCompleted = errors.New("cannot set a reminder for a completed task")

const (
	// pastGuard: a trigger this far in the past still counts as "just
	// now" and fires after minDelay instead of rolling over a day.
	pastGuard = time.Second

	// minDelay is the shortest fuse for an imminent reminder.
	minDelay = 2 * time.Second
)

// TimeOfDay is a wall-clock hour and minute with no date attached.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Display is what gets shown when the user opens a fired notification.
type Display struct {
	Name    string     `json:"name"`
	Time    *time.Time `json:"time,omitempty"`
	Summary string     `json:"summary"`
	Status  string     `json:"status"`
}

// Scheduler owns the reminder lifecycle: it is the only component that
// talks to the notification service and the only writer of the
// reminder fields on a task.
type Scheduler struct {
	store    *store.Store
	notifier notify.Notifier
	now      func() time.Time
	log      zerolog.Logger
}

func NewScheduler(st *store.Store, n notify.Notifier, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		store:    st,
		notifier: n,
		now:      time.Now,
		log:      log.With().Str("component", "reminder").Logger(),
	}
}

// Schedule sets a one-shot reminder for the task at the given time of
// day and returns the resolved trigger moment. Any previous reminder on
// the task is cancelled first, so at most one is ever live per task.
//
// Trigger resolution: today's occurrence of the hour and minute. An
// occurrence more than a second in the past rolls to the same time
// tomorrow; one at or just past "now" fires after a short minimum
// delay instead.
func (s *Scheduler) Schedule(ctx context.Context, id string, tod TimeOfDay) (time.Time, error) {
	t, err := s.store.Get(id)
	if err != nil {
		return time.Time{}, err
	}
	if t.Completed {
		return time.Time{}, ErrTaskCompleted
	}
	if t.NotificationHandle != "" {
		// The old alert is dead either way; drop its fields now so a
		// failed reschedule does not leave the cancelled handle on the
		// task looking like a live reminder.
		s.notifier.Cancel(ctx, t.NotificationHandle)
		_ = s.store.ClearReminder(id)
	}

	trigger := s.resolveTrigger(s.now(), tod)
	handle, err := s.notifier.ScheduleOneShot(ctx, notify.Payload{TaskID: t.ID, TaskName: t.Text}, trigger)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule alert: %w", err)
	}

	// The task is the source of truth for the handle. If it vanished
	// while the schedule call was in flight, revoke the fresh alert
	// instead of letting it fire for a deleted task.
	if err := s.store.SetReminder(id, trigger, handle); err != nil {
		s.notifier.Cancel(ctx, handle)
		return time.Time{}, err
	}
	s.log.Info().Str("task_id", id).Time("trigger", trigger).Msg("reminder scheduled")
	return trigger, nil
}

// Restore re-arms a reminder at an absolute moment, used when loading a
// snapshot whose reminders were scheduled by a previous process.
func (s *Scheduler) Restore(ctx context.Context, id string, at time.Time) error {
	t, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if t.Completed {
		return ErrTaskCompleted
	}
	handle, err := s.notifier.ScheduleOneShot(ctx, notify.Payload{TaskID: t.ID, TaskName: t.Text}, at)
	if err != nil {
		return fmt.Errorf("schedule alert: %w", err)
	}
	if err := s.store.SetReminder(id, at, handle); err != nil {
		s.notifier.Cancel(ctx, handle)
		return err
	}
	return nil
}

// Cancel revokes the task's reminder if one is live. Not an error when
// the task has no reminder, or no longer exists.
func (s *Scheduler) Cancel(ctx context.Context, id string) {
	t, err := s.store.Get(id)
	if err != nil {
		return
	}
	if t.NotificationHandle != "" {
		s.notifier.Cancel(ctx, t.NotificationHandle)
		s.log.Info().Str("task_id", id).Msg("reminder cancelled")
	}
	_ = s.store.ClearReminder(id)
}

// HandleFired consumes a delivered reminder: the trigger moment and
// handle come off the task. The fired handle must still be the task's
// current one; a stale fire that raced a reschedule is ignored so the
// replacement alert keeps its fields. A task deleted in the meantime
// is simply gone.
func (s *Scheduler) HandleFired(handle string, p notify.Payload) {
	t, err := s.store.Get(p.TaskID)
	if err != nil || t.NotificationHandle != handle {
		return
	}
	_ = s.store.ClearReminder(p.TaskID)
	s.log.Debug().Str("task_id", p.TaskID).Msg("reminder consumed")
}

// OnNotificationOpened resolves the payload of a tapped notification
// into a display record. ok is false when the task no longer exists
// (deleted after the reminder fired); that is not an error, there is
// just nothing to show.
func (s *Scheduler) OnNotificationOpened(p notify.Payload) (Display, bool) {
	t, err := s.store.Get(p.TaskID)
	if err != nil {
		return Display{}, false
	}
	status := "Pending"
	if t.Completed {
		status = "Completed"
	}
	return Display{
		Name:    t.Text,
		Time:    t.ReminderAt,
		Summary: t.Description,
		Status:  status,
	}, true
}

func (s *Scheduler) resolveTrigger(now time.Time, tod TimeOfDay) time.Time {
	trigger := time.Date(now.Year(), now.Month(), now.Day(), tod.Hour, tod.Minute, 0, 0, now.Location())
	switch {
	case now.Sub(trigger) > pastGuard:
		trigger = trigger.AddDate(0, 0, 1)
	case trigger.Sub(now) < minDelay:
		trigger = now.Add(minDelay)
	}
	return trigger
}
