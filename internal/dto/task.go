package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dom "github.com/akankshasoni024/My-Tasks-App/internal/domain"
	"github.com/akankshasoni024/My-Tasks-App/internal/reminder"
)

// TimeOfDay parses reminder_at from JSON as a wall-clock time with no
// date: "09:00", "21:30", or "9:00 PM".
type TimeOfDay struct{ tod *reminder.TimeOfDay }

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		t.tod = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"15:04",    // 24-hour
		"15:04:05", // with seconds, ignored below
		"3:04 PM",  // 12-hour
		"3:04PM",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.tod = &reminder.TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}
			return nil
		}
	}
	return fmt.Errorf("reminder_at: use HH:MM (24-hour) or H:MM AM/PM")
}

// Ptr returns the parsed time of day for the service layer.
func (t TimeOfDay) Ptr() *reminder.TimeOfDay { return t.tod }

// Priority parses and validates the priority field from JSON.
type Priority struct{ p *dom.Priority }

func (p *Priority) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		p.p = nil
		return nil
	}
	parsed, err := dom.ParsePriority(strings.TrimSpace(*raw))
	if err != nil {
		return err
	}
	p.p = &parsed
	return nil
}

func (p Priority) Ptr() *dom.Priority { return p.p }

type CreateTaskRequest struct {
	Text string `json:"text" binding:"max=120"`
}

type UpdateTaskRequest struct {
	Text        *string    `json:"text" binding:"omitempty,max=120"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	Priority    *Priority  `json:"priority"`
	ReminderAt  *TimeOfDay `json:"reminder_at"` // nil = leave alone, value = schedule
}

type OpenedNotificationRequest struct {
	TaskID   string `json:"task_id" binding:"required"`
	TaskName string `json:"task_name"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Completed   bool       `json:"completed"`
	ReminderAt  *time.Time `json:"reminder_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EditTaskResponse reports a possibly-partial edit: the task with its
// committed field changes, plus the reminder rejection message if the
// reminder part of the same edit was refused.
type EditTaskResponse struct {
	Task          TaskResponse `json:"task"`
	ReminderError string       `json:"reminder_error,omitempty"`
}

type ListTasksResponse struct {
	Items []TaskResponse `json:"items"`
}
