package repo

import (
	"context"
	"encoding/json"
	"errors"

	dom "github.com/akankshasoni024/My-Tasks-App/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// snapshotRow is the fixed primary key of the single snapshot row.
const snapshotRow = 1

// PGSnapshotRepo keeps the snapshot as a jsonb blob in one Postgres
// row. The table is created by the goose migrations.
type PGSnapshotRepo struct {
	db *pgxpool.Pool
}

func NewPGSnapshotRepo(db *pgxpool.Pool) *PGSnapshotRepo {
	return &PGSnapshotRepo{db: db}
}

func (r *PGSnapshotRepo) Load(ctx context.Context) ([]dom.Task, bool, error) {
	var data []byte
	err := r.db.QueryRow(ctx,
		`SELECT data FROM task_snapshots WHERE id = $1`, snapshotRow,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var tasks []dom.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, false, err
	}
	return tasks, true, nil
}

func (r *PGSnapshotRepo) Save(ctx context.Context, tasks []dom.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO task_snapshots (id, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		snapshotRow, data)
	return err
}
