package notify

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_DeliversScheduledAlert(t *testing.T) {
	l := NewLocal(zerolog.Nop())
	defer l.Close()

	type delivery struct {
		handle  string
		payload Payload
	}
	delivered := make(chan delivery, 1)
	l.SetDeliveredHandler(func(h string, p Payload) { delivered <- delivery{h, p} })

	p := Payload{TaskID: "t1", TaskName: "buy milk"}
	handle, err := l.ScheduleOneShot(context.Background(), p, time.Now().Add(10*time.Millisecond))
	require.NoError(t, err)
	assert.NotEmpty(t, handle)

	select {
	case got := <-delivered:
		assert.Equal(t, handle, got.handle)
		assert.Equal(t, p, got.payload)
	case <-time.After(2 * time.Second):
		t.Fatal("alert was not delivered")
	}
}

func TestLocal_PastTriggerFiresImmediately(t *testing.T) {
	l := NewLocal(zerolog.Nop())
	defer l.Close()

	delivered := make(chan Payload, 1)
	l.SetDeliveredHandler(func(h string, p Payload) { delivered <- p })

	_, err := l.ScheduleOneShot(context.Background(), Payload{TaskID: "t1"}, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("past trigger should fire immediately")
	}
}

func TestLocal_CancelStopsDelivery(t *testing.T) {
	l := NewLocal(zerolog.Nop())
	defer l.Close()

	delivered := make(chan Payload, 1)
	l.SetDeliveredHandler(func(h string, p Payload) { delivered <- p })

	handle, err := l.ScheduleOneShot(context.Background(), Payload{TaskID: "t1"}, time.Now().Add(50*time.Millisecond))
	require.NoError(t, err)
	l.Cancel(context.Background(), handle)

	select {
	case <-delivered:
		t.Fatal("cancelled alert must not be delivered")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestLocal_CancelUnknownHandleIsNoop(t *testing.T) {
	l := NewLocal(zerolog.Nop())
	defer l.Close()

	l.Cancel(context.Background(), "no-such-handle")
	l.Cancel(context.Background(), "")
}

func TestLocal_UniqueHandles(t *testing.T) {
	l := NewLocal(zerolog.Nop())
	defer l.Close()

	far := time.Now().Add(time.Hour)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		h, err := l.ScheduleOneShot(context.Background(), Payload{}, far)
		require.NoError(t, err)
		assert.False(t, seen[h])
		seen[h] = true
	}
}

func TestLocal_PermissionAlwaysGranted(t *testing.T) {
	l := NewLocal(zerolog.Nop())
	defer l.Close()

	ok, err := l.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}
