package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Local delivers alerts from in-process timers. Handles are UUIDs,
// permission is always granted. Timers do not survive a restart; the
// service re-arms pending reminders from the snapshot on startup.
type Local struct {
	mu        sync.Mutex
	timers    map[string]*time.Timer
	delivered func(handle string, p Payload)
	log       zerolog.Logger
}

func NewLocal(log zerolog.Logger) *Local {
	return &Local{
		timers: make(map[string]*time.Timer),
		log:    log.With().Str("component", "notify").Logger(),
	}
}

// SetDeliveredHandler registers the delivery callback. Called once at
// process start, before any alert is scheduled; the handler reads
// current state at fire time instead of capturing a snapshot.
func (l *Local) SetDeliveredHandler(f func(handle string, p Payload)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.delivered = f
}

func (l *Local) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

func (l *Local) ScheduleOneShot(ctx context.Context, p Payload, at time.Time) (string, error) {
	handle := uuid.NewString()

	l.mu.Lock()
	defer l.mu.Unlock()

	d := time.Until(at)
	if d < 0 {
		d = 0
	}
	l.timers[handle] = time.AfterFunc(d, func() { l.fire(handle, p) })
	l.log.Debug().Str("handle", handle).Time("at", at).Str("task_id", p.TaskID).Msg("alert scheduled")
	return handle, nil
}

func (l *Local) Cancel(ctx context.Context, handle string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.timers[handle]; ok {
		t.Stop()
		delete(l.timers, handle)
		l.log.Debug().Str("handle", handle).Msg("alert cancelled")
	}
}

// Close stops all pending timers.
func (l *Local) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for h, t := range l.timers {
		t.Stop()
		delete(l.timers, h)
	}
}

func (l *Local) fire(handle string, p Payload) {
	l.mu.Lock()
	delete(l.timers, handle)
	handler := l.delivered
	l.mu.Unlock()

	l.log.Info().Str("task_id", p.TaskID).Str("task", p.TaskName).Msg("reminder fired")
	if handler != nil {
		handler(handle, p)
	}
}
