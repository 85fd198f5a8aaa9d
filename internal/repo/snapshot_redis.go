package repo

import (
	"context"
	"encoding/json"

	dom "github.com/akankshasoni024/My-Tasks-App/internal/domain"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "tasks:snapshot"

// RedisSnapshotRepo keeps the snapshot as a JSON blob under a single
// Redis key, no TTL.
type RedisSnapshotRepo struct {
	rdb *redis.Client
}

func NewRedisSnapshotRepo(rdb *redis.Client) *RedisSnapshotRepo {
	return &RedisSnapshotRepo{rdb: rdb}
}

func (r *RedisSnapshotRepo) Load(ctx context.Context) ([]dom.Task, bool, error) {
	b, err := r.rdb.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var tasks []dom.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, false, err
	}
	return tasks, true, nil
}

func (r *RedisSnapshotRepo) Save(ctx context.Context, tasks []dom.Task) error {
	b, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, snapshotKey, b, 0).Err()
}
