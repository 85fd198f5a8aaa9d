package repo

import (
	"context"
	"encoding/json"
	"sync"

	dom "github.com/akankshasoni024/My-Tasks-App/internal/domain"
)

// SnapshotRepo persists the whole task collection as one opaque blob.
// Best-effort: the in-memory collection stays authoritative, a failed
// Save is logged by the caller and otherwise ignored.
type SnapshotRepo interface {
	// Load returns the last saved collection. ok is false when no
	// snapshot has ever been saved.
	Load(ctx context.Context) (tasks []dom.Task, ok bool, err error)

	// Save overwrites the snapshot with the given collection.
	Save(ctx context.Context, tasks []dom.Task) error
}

// MemorySnapshotRepo is an in-memory SnapshotRepo for tests and the
// "memory" driver. It round-trips through JSON so it exercises the same
// codec as the real backends.
type MemorySnapshotRepo struct {
	mu   sync.Mutex
	data []byte
}

func NewMemorySnapshotRepo() *MemorySnapshotRepo {
	return &MemorySnapshotRepo{}
}

func (r *MemorySnapshotRepo) Load(ctx context.Context) ([]dom.Task, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.data == nil {
		return nil, false, nil
	}
	var tasks []dom.Task
	if err := json.Unmarshal(r.data, &tasks); err != nil {
		return nil, false, err
	}
	return tasks, true, nil
}

func (r *MemorySnapshotRepo) Save(ctx context.Context, tasks []dom.Task) error {
	b, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = b
	return nil
}
