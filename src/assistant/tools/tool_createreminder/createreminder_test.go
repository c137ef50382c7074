package tool_createreminder

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/elee1766/pocketllm/src/aisdk"
	"github.com/elee1766/pocketllm/src/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReminderStore struct {
	calls []calendar.Reminder
	ok    bool
	err   error
}

func (f *fakeReminderStore) EnsureAccess(ctx context.Context) (bool, error) { return true, nil }

func (f *fakeReminderStore) CreateReminder(ctx context.Context, r calendar.Reminder) (bool, error) {
	f.calls = append(f.calls, r)
	return f.ok, f.err
}

func run(t *testing.T, store *fakeReminderStore, args map[string]interface{}) *aisdk.ToolResponse {
	t.Helper()
	tool, err := Tool(Options{Store: store, Location: time.UTC})
	require.NoError(t, err)

	argsJSON, err := json.Marshal(args)
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: Name, Arguments: argsJSON},
	})
	require.NoError(t, err)
	return resp
}

func TestMediumPriorityWithoutDueDate(t *testing.T) {
	store := &fakeReminderStore{ok: true}
	resp := run(t, store, map[string]interface{}{"title": "Water plants", "priority": "medium"})

	assert.False(t, resp.IsError)
	assert.Equal(t, "Successfully created reminder 'Water plants'.", resp.Text())
	assert.NotContains(t, resp.Text(), " due ")

	require.Len(t, store.calls, 1)
	assert.Equal(t, 5, store.calls[0].Priority)
	assert.Nil(t, store.calls[0].Due)
	assert.Nil(t, store.calls[0].Notes)
	assert.Equal(t, calendar.DefaultReminderList, store.calls[0].ListName)
}

func TestCreateReminderTool(t *testing.T) {
	tests := []struct {
		name      string
		store     *fakeReminderStore
		args      map[string]interface{}
		want      string
		wantError bool
		noCall    bool
		check     func(t *testing.T, r calendar.Reminder)
	}{
		{
			name:  "due date and notes",
			store: &fakeReminderStore{ok: true},
			args: map[string]interface{}{
				"title":    "Pay rent",
				"dueDate":  "2026-03-01T15:04:00",
				"priority": "HIGH",
				"notes":    "transfer from savings",
				"listName": "Bills",
			},
			want: "Successfully created reminder 'Pay rent' due Mar 1, 2026 at 3:04 PM.",
			check: func(t *testing.T, r calendar.Reminder) {
				require.NotNil(t, r.Due)
				assert.True(t, time.Date(2026, 3, 1, 15, 4, 0, 0, time.UTC).Equal(*r.Due))
				assert.Equal(t, 1, r.Priority)
				require.NotNil(t, r.Notes)
				assert.Equal(t, "transfer from savings", *r.Notes)
				assert.Equal(t, "Bills", r.ListName)
			},
		},
		{
			name:  "unknown priority maps to none",
			store: &fakeReminderStore{ok: true},
			args:  map[string]interface{}{"title": "Stretch", "priority": "urgent"},
			want:  "Successfully created reminder 'Stretch'.",
			check: func(t *testing.T, r calendar.Reminder) {
				assert.Equal(t, 0, r.Priority)
			},
		},
		{
			name:  "low priority",
			store: &fakeReminderStore{ok: true},
			args:  map[string]interface{}{"title": "Read", "priority": "low", "dueDate": ""},
			want:  "Successfully created reminder 'Read'.",
			check: func(t *testing.T, r calendar.Reminder) {
				assert.Equal(t, 9, r.Priority)
				assert.Nil(t, r.Due)
			},
		},
		{
			name:      "bad due date is not dropped",
			store:     &fakeReminderStore{ok: true},
			args:      map[string]interface{}{"title": "Call", "dueDate": "next tuesday"},
			want:      "Failed to parse due date. Expected format: yyyy-MM-ddTHH:mm:ss",
			wantError: true,
			noCall:    true,
		},
		{
			name:      "store reports false",
			store:     &fakeReminderStore{ok: false},
			args:      map[string]interface{}{"title": "Lost"},
			want:      "Failed to create reminder 'Lost'.",
			wantError: true,
		},
		{
			name:      "no writable source",
			store:     &fakeReminderStore{err: calendar.ErrNoWritableSource},
			args:      map[string]interface{}{"title": "Nowhere"},
			want:      "Failed to create reminder 'Nowhere': no writable source",
			wantError: true,
		},
		{
			name:      "missing title",
			store:     &fakeReminderStore{ok: true},
			args:      map[string]interface{}{"priority": "high"},
			want:      "Invalid arguments for createReminder: field 'title' is required",
			wantError: true,
			noCall:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := run(t, tt.store, tt.args)
			assert.Equal(t, tt.want, resp.Text())
			assert.Equal(t, tt.wantError, resp.IsError)
			if tt.check != nil {
				require.Len(t, tt.store.calls, 1)
				tt.check(t, tt.store.calls[0])
			}
			if tt.noCall {
				assert.Empty(t, tt.store.calls)
			}
		})
	}
}

func TestCreateReminderSchema(t *testing.T) {
	tool, err := Tool(Options{Store: &fakeReminderStore{}})
	require.NoError(t, err)

	schema := tool.GetParameters()
	assert.Equal(t, []string{"title"}, schema.Required)
	for _, field := range []string{"title", "dueDate", "priority", "notes", "listName"} {
		assert.Contains(t, schema.Properties, field)
	}
}
