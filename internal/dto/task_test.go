package dto

import (
	"encoding/json"
	"testing"

	dom "github.com/akankshasoni024/My-Tasks-App/internal/domain"
	"github.com/akankshasoni024/My-Tasks-App/internal/reminder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDay_Unmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want reminder.TimeOfDay
	}{
		{`"09:00"`, reminder.TimeOfDay{Hour: 9, Minute: 0}},
		{`"21:30"`, reminder.TimeOfDay{Hour: 21, Minute: 30}},
		{`"21:30:45"`, reminder.TimeOfDay{Hour: 21, Minute: 30}},
		{`"9:05 PM"`, reminder.TimeOfDay{Hour: 21, Minute: 5}},
		{`"9:05AM"`, reminder.TimeOfDay{Hour: 9, Minute: 5}},
	}
	for _, c := range cases {
		var tod TimeOfDay
		require.NoError(t, json.Unmarshal([]byte(c.in), &tod), "input %s", c.in)
		require.NotNil(t, tod.Ptr(), "input %s", c.in)
		assert.Equal(t, c.want, *tod.Ptr(), "input %s", c.in)
	}
}

func TestTimeOfDay_NullAndEmptyMeanUnset(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`null`), &tod))
	assert.Nil(t, tod.Ptr())

	require.NoError(t, json.Unmarshal([]byte(`""`), &tod))
	assert.Nil(t, tod.Ptr())
}

func TestTimeOfDay_Invalid(t *testing.T) {
	for _, in := range []string{`"25:00"`, `"nine"`, `"12"`, `"12:60"`} {
		var tod TimeOfDay
		assert.Error(t, json.Unmarshal([]byte(in), &tod), "input %s", in)
	}
}

func TestPriority_Unmarshal(t *testing.T) {
	var p Priority
	require.NoError(t, json.Unmarshal([]byte(`"High"`), &p))
	require.NotNil(t, p.Ptr())
	assert.Equal(t, dom.PriorityHigh, *p.Ptr())

	require.NoError(t, json.Unmarshal([]byte(`null`), &p))
	assert.Nil(t, p.Ptr())
}

func TestPriority_Invalid(t *testing.T) {
	var p Priority
	assert.Error(t, json.Unmarshal([]byte(`"urgent"`), &p))
}

func TestUpdateTaskRequest_Decode(t *testing.T) {
	var req UpdateTaskRequest
	body := `{"text":"new text","priority":"Low","reminder_at":"08:15"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.NotNil(t, req.Text)
	assert.Equal(t, "new text", *req.Text)
	assert.Nil(t, req.Description)
	require.NotNil(t, req.Priority)
	assert.Equal(t, dom.PriorityLow, *req.Priority.Ptr())
	require.NotNil(t, req.ReminderAt)
	assert.Equal(t, reminder.TimeOfDay{Hour: 8, Minute: 15}, *req.ReminderAt.Ptr())
}
