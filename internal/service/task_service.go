package service

import (
	"context"
	"errors"
	"sync"
	"time"

	dom "github.com/akankshasoni024/My-Tasks-App/internal/domain"
	"github.com/akankshasoni024/My-Tasks-App/internal/notify"
	"github.com/akankshasoni024/My-Tasks-App/internal/reminder"
	"github.com/akankshasoni024/My-Tasks-App/internal/repo"
	"github.com/akankshasoni024/My-Tasks-App/internal/store"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

var ErrNotFound = store.ErrNotFound

// EditPatch is one user edit action. Nil fields are untouched. Reminder
// rides along with the field edits, matching the edit sheet in the app.
type EditPatch struct {
	Text        *string
	Description *string
	Priority    *dom.Priority
	Reminder    *reminder.TimeOfDay
}

// EditResult reports a possibly-partial edit: field changes always
// commit when the task exists, the reminder request can still be
// rejected on its own (e.g. the task is already completed).
type EditResult struct {
	Task        dom.Task
	ReminderErr error
}

// TaskService sequences every user-facing action across the store, the
// reminder scheduler and the snapshot repo. A single mutex serializes
// actions, so each one sees the state the previous one left behind.
type TaskService struct {
	mu        sync.Mutex
	store     *store.Store
	sched     *reminder.Scheduler
	snapshots repo.SnapshotRepo
	sf        singleflight.Group
	log       zerolog.Logger
}

func NewTaskService(st *store.Store, sched *reminder.Scheduler, snapshots repo.SnapshotRepo, log zerolog.Logger) *TaskService {
	return &TaskService{
		store:     st,
		sched:     sched,
		snapshots: snapshots,
		log:       log.With().Str("component", "tasks").Logger(),
	}
}

// AddTask creates a task from the text. Blank text is a silent no-op
// (ok=false), matching the app ignoring empty submissions.
func (s *TaskService) AddTask(ctx context.Context, text string) (dom.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Add(text)
	if errors.Is(err, store.ErrEmptyText) {
		return dom.Task{}, false
	}
	s.persist(ctx)
	return t, true
}

// EditTask applies the patch. When the patch carries a reminder time,
// the reminder is scheduled after the field edits; a rejected reminder
// does not roll those back, it is reported in EditResult.ReminderErr.
func (s *TaskService) EditTask(ctx context.Context, id string, p EditPatch) (EditResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Update(id, store.Patch{
		Text:        p.Text,
		Description: p.Description,
		Priority:    p.Priority,
	})
	if err != nil {
		return EditResult{}, err
	}

	res := EditResult{Task: t}
	if p.Reminder != nil {
		if _, err := s.sched.Schedule(ctx, id, *p.Reminder); err != nil {
			res.ReminderErr = err
		} else if t, err := s.store.Get(id); err == nil {
			res.Task = t
		}
	}
	s.persist(ctx)
	return res, nil
}

// ToggleTask flips completion. Transitioning into completed cancels the
// task's reminder first, so a done task never has a live alert.
func (s *TaskService) ToggleTask(ctx context.Context, id string) (dom.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.store.Get(id)
	if err != nil {
		return dom.Task{}, err
	}
	if !cur.Completed {
		s.sched.Cancel(ctx, id)
	}
	t, err := s.store.ToggleCompleted(id)
	if err != nil {
		return dom.Task{}, err
	}
	s.persist(ctx)
	return t, nil
}

// DeleteTask removes the task. Confirmation is the client's job; this
// is the confirmed delete. The reminder is cancelled before removal.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sched.Cancel(ctx, id)
	if err := s.store.Remove(id); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// Tasks returns the collection in display order.
func (s *TaskService) Tasks(ctx context.Context) []dom.Task {
	return s.store.List()
}

// GetTask returns one task by id.
func (s *TaskService) GetTask(ctx context.Context, id string) (dom.Task, error) {
	return s.store.Get(id)
}

// CancelReminder drops the task's reminder, if any.
func (s *TaskService) CancelReminder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Get(id); err != nil {
		return err
	}
	s.sched.Cancel(ctx, id)
	s.persist(ctx)
	return nil
}

// LoadInitial populates the store from the snapshot at startup. An
// absent or unreadable snapshot starts the app empty, never fatal.
// Reminders whose trigger is still in the future are re-armed (handles
// are process-local and do not survive a restart); stale ones are
// dropped. Coalesced so concurrent callers share one load.
func (s *TaskService) LoadInitial(ctx context.Context) error {
	_, err, _ := s.sf.Do("load", func() (interface{}, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.loadLocked(ctx)
		return nil, nil
	})
	return err
}

func (s *TaskService) loadLocked(ctx context.Context) {
	tasks, ok, err := s.snapshots.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("snapshot unreadable, starting with an empty list")
		s.store.Replace(nil)
		return
	}
	if !ok {
		s.store.Replace(nil)
		return
	}

	for i := range tasks {
		tasks[i].NotificationHandle = ""
	}
	s.store.Replace(tasks)

	rearmed, dropped := 0, 0
	for _, t := range s.store.List() {
		if t.ReminderAt == nil {
			continue
		}
		if !t.Completed && t.ReminderAt.After(time.Now()) && s.sched.Restore(ctx, t.ID, *t.ReminderAt) == nil {
			rearmed++
			continue
		}
		_ = s.store.ClearReminder(t.ID)
		dropped++
	}
	s.log.Info().Int("tasks", len(tasks)).Int("reminders_rearmed", rearmed).Int("reminders_dropped", dropped).Msg("snapshot loaded")
	if dropped > 0 {
		s.persist(ctx)
	}
}

// HandleReminderFired is the single delivery handler registered with
// the notifier at startup. It runs on the timer goroutine and takes the
// same serialized path as user actions.
func (s *TaskService) HandleReminderFired(handle string, p notify.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sched.HandleFired(handle, p)
	s.persist(context.Background())
}

// OpenedNotification resolves a tapped notification into its display
// record. ok is false when the task no longer exists.
func (s *TaskService) OpenedNotification(p notify.Payload) (reminder.Display, bool) {
	return s.sched.OnNotificationOpened(p)
}

// persist writes the snapshot best-effort: on failure the in-memory
// collection stays authoritative and the app keeps running unpersisted.
func (s *TaskService) persist(ctx context.Context) {
	if err := s.snapshots.Save(ctx, s.store.List()); err != nil {
		s.log.Warn().Err(err).Msg("snapshot save failed, keeping in-memory state")
	}
}
