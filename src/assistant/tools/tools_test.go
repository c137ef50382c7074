package tools

import (
	"context"
	"testing"
	"time"

	"github.com/elee1766/pocketllm/src/aisdk"
	"github.com/elee1766/pocketllm/src/calendar"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopStore struct{}

func (nopStore) EnsureAccess(ctx context.Context) (bool, error) { return true, nil }
func (nopStore) CreateEvent(ctx context.Context, title string, start, end time.Time, calendarName string) (bool, error) {
	return true, nil
}
func (nopStore) CreateReminder(ctx context.Context, r calendar.Reminder) (bool, error) {
	return true, nil
}

func testDeps() Deps {
	return Deps{
		Events:    nopStore{},
		Reminders: nopStore{},
		Fs:        afero.NewMemMapFs(),
		NotesDir:  "/notes",
	}
}

func TestNewToolboxOrder(t *testing.T) {
	tb, err := NewToolbox(testDeps())
	require.NoError(t, err)

	assert.Equal(t, []string{"createEvent", "createNote", "createReminder"}, tb.Names())
	assert.Equal(t, Names, tb.Names())

	for _, tool := range tb.Tools() {
		assert.NotEmpty(t, tool.GetDescription(), tool.GetName())
		require.NotNil(t, tool.GetParameters(), tool.GetName())
		assert.Contains(t, tool.GetParameters().Required, "title", tool.GetName())
	}
}

func TestNewToolboxDispatch(t *testing.T) {
	tb, err := NewToolbox(testDeps())
	require.NoError(t, err)

	resp, err := tb.ExecuteTool(context.Background(), &aisdk.ToolCall{Function: aisdk.FunctionCall{
		Name:      CreateReminderName,
		Arguments: []byte(`{"title":"Stretch","priority":"low"}`),
	}})
	require.NoError(t, err)
	assert.False(t, resp.IsError)
	assert.Equal(t, "Successfully created reminder 'Stretch'.", resp.Text())
}

func TestNewToolboxMissingDeps(t *testing.T) {
	d := testDeps()
	d.Events = nil
	_, err := NewToolbox(d)
	assert.Error(t, err)

	d = testDeps()
	d.NotesDir = ""
	_, err = NewToolbox(d)
	assert.Error(t, err)
}
