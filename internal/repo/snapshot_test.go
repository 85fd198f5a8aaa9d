package repo

import (
	"context"
	"testing"
	"time"

	dom "github.com/akankshasoni024/My-Tasks-App/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySnapshotRepo_EmptyUntilFirstSave(t *testing.T) {
	r := NewMemorySnapshotRepo()

	_, ok, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemorySnapshotRepo_RoundTrip(t *testing.T) {
	r := NewMemorySnapshotRepo()
	ctx := context.Background()

	at := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	in := []dom.Task{
		{ID: "a", Text: "walk dog", Priority: dom.PriorityHigh, ReminderAt: &at},
		{ID: "b", Text: "file taxes", Priority: dom.PriorityLow, Completed: true},
	}
	require.NoError(t, r.Save(ctx, in))

	out, ok, err := r.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, out, 2)
	assert.Equal(t, "walk dog", out[0].Text)
	assert.Equal(t, dom.PriorityHigh, out[0].Priority)
	require.NotNil(t, out[0].ReminderAt)
	assert.True(t, out[0].ReminderAt.Equal(at))
	assert.True(t, out[1].Completed)
}

func TestMemorySnapshotRepo_HandleIsNotPersisted(t *testing.T) {
	r := NewMemorySnapshotRepo()
	ctx := context.Background()

	in := []dom.Task{{ID: "a", Text: "armed", NotificationHandle: "h-123"}}
	require.NoError(t, r.Save(ctx, in))

	out, ok, err := r.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, out, 1)
	// Handles are process-local, the codec drops them.
	assert.Empty(t, out[0].NotificationHandle)
}

func TestMemorySnapshotRepo_SaveOverwrites(t *testing.T) {
	r := NewMemorySnapshotRepo()
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, []dom.Task{{ID: "a", Text: "one"}}))
	require.NoError(t, r.Save(ctx, []dom.Task{}))

	out, ok, err := r.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, out)
}
