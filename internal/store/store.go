package store

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	dom "github.com/akankshasoni024/My-Tasks-App/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("task not found")
	ErrEmptyText = errors.New("task text is empty")
)

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Text        *string
	Description *string
	Priority    *dom.Priority
}

// Store holds the task collection and enforces its ordering. It is the
// only owner of the collection; every mutation re-sorts.
type Store struct {
	mu    sync.RWMutex
	tasks []dom.Task
	now   func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// Add creates a task from the trimmed text with default fields and
// inserts it into the collection.
func (s *Store) Add(text string) (dom.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return dom.Task{}, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	t := dom.Task{
		ID:        uuid.NewString(),
		Text:      text,
		Priority:  dom.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks = append(s.tasks, t)
	s.resort()
	return t, nil
}

// Update applies the patch to the task with the given id.
func (s *Store) Update(id string, p Patch) (dom.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.index(id)
	if err != nil {
		return dom.Task{}, err
	}
	t := &s.tasks[i]
	if p.Text != nil {
		text := strings.TrimSpace(*p.Text)
		if text == "" {
			return dom.Task{}, ErrEmptyText
		}
		t.Text = text
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	t.UpdatedAt = s.now().UTC()
	out := *t
	s.resort()
	return out, nil
}

// ToggleCompleted flips the completion flag. Flipping to completed also
// drops the reminder fields: a done task never keeps a live handle.
func (s *Store) ToggleCompleted(id string) (dom.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.index(id)
	if err != nil {
		return dom.Task{}, err
	}
	t := &s.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		t.ReminderAt = nil
		t.NotificationHandle = ""
	}
	t.UpdatedAt = s.now().UTC()
	out := *t
	s.resort()
	return out, nil
}

// Remove deletes the task with the given id.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (dom.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, err := s.index(id)
	if err != nil {
		return dom.Task{}, err
	}
	return s.tasks[i], nil
}

// List returns a copy of the collection in display order.
func (s *Store) List() []dom.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]dom.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// SetReminder records the trigger moment and notification handle on the
// task. Used only by the reminder scheduler.
func (s *Store) SetReminder(id string, at time.Time, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.tasks[i].ReminderAt = &at
	s.tasks[i].NotificationHandle = handle
	s.tasks[i].UpdatedAt = s.now().UTC()
	return nil
}

// ClearReminder drops the reminder fields from the task. Used only by
// the reminder scheduler.
func (s *Store) ClearReminder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.tasks[i].ReminderAt = nil
	s.tasks[i].NotificationHandle = ""
	return nil
}

// Replace installs the given tasks as the whole collection, re-sorting.
// Used when loading a snapshot at startup.
func (s *Store) Replace(tasks []dom.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make([]dom.Task, len(tasks))
	copy(s.tasks, tasks)
	s.resort()
}

func (s *Store) index(id string) (int, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i, nil
		}
	}
	return 0, ErrNotFound
}

// resort applies the display ordering. The sort is stable so slice
// position keeps acting as the insertion-order tie-break, and sorting
// an already-sorted collection changes nothing.
func (s *Store) resort() {
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return dom.Less(s.tasks[i], s.tasks[j])
	})
}
