package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestExtractUpMigration(t *testing.T) {
	content := `-- +goose Up
-- +goose StatementBegin
CREATE TABLE a (id TEXT);
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
DROP TABLE a;
-- +goose StatementEnd`

	assert.Equal(t, "CREATE TABLE a (id TEXT);", extractUpMigration(content))
}

func TestOpenAppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pocketllm.db")

	db, err := Open(path)
	require.NoError(t, err)
	status, err := db.MigrationStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, status, 1)
	assert.True(t, status[0].Applied)
	assert.Equal(t, "initial_schema", status[0].Name)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	sources, err := ListSources(context.Background(), db.DB())
	require.NoError(t, err)
	require.Len(t, sources, 1, "seeded local source must not be duplicated")
	assert.Equal(t, "local", sources[0].SourceType)
}

func TestPragmasSurviveConnectionRecycling(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	// No idle connections: every query below runs on a freshly opened one.
	db.DB().SetMaxIdleConns(0)

	for range 3 {
		var fk, timeout int
		require.NoError(t, db.DB().QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
		require.NoError(t, db.DB().QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
		assert.Equal(t, 1, fk)
		assert.Equal(t, 5000, timeout)
	}
}

func TestAppendMessageAssignsSequence(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	chat := &Chat{}
	require.NoError(t, CreateChat(ctx, db.DB(), chat))

	for i, content := range []string{"hello", "hi there", "make a note"} {
		msg := &Message{ChatID: chat.ID, Content: content, IsFromUser: i%2 == 0}
		require.NoError(t, AppendMessage(ctx, db.DB(), msg))
		assert.Equal(t, int64(i+1), msg.Seq)
	}

	msgs, err := ListMessages(ctx, db.DB(), chat.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.True(t, msgs[0].IsFromUser)
	assert.Equal(t, "hi there", msgs[1].Content)
	assert.False(t, msgs[1].IsFromUser)
	assert.Equal(t, int64(3), msgs[2].Seq)
}

func TestToolExecutions(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, CreateToolExecution(ctx, db.DB(), &ToolExecution{
		ToolName: "createEvent", Input: `{}`, Output: "ok", DurationMs: 3,
		CreatedAt: time.Now().Add(-time.Minute),
	}))
	require.NoError(t, CreateToolExecution(ctx, db.DB(), &ToolExecution{
		ToolName: "createNote", Input: `{}`, Output: "Failed to create note: boom", Failed: true,
	}))

	execs, err := ListToolExecutions(ctx, db.DB(), 10)
	require.NoError(t, err)
	require.Len(t, execs, 2)
	assert.Equal(t, "createNote", execs[0].ToolName)
	assert.True(t, execs[0].Failed)
	assert.Equal(t, "createEvent", execs[1].ToolName)
	assert.Equal(t, int64(3), execs[1].DurationMs)
}

func TestSourcesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	cloud := &Source{Title: "iCloud", SourceType: "caldav"}
	require.NoError(t, CreateSource(ctx, db.DB(), cloud))
	subscribed := &Source{Title: "Holidays", SourceType: "subscribed"}
	require.NoError(t, CreateSource(ctx, db.DB(), subscribed))

	sources, err := ListSources(ctx, db.DB())
	require.NoError(t, err)
	require.Len(t, sources, 3)
	assert.Equal(t, "local", sources[0].ID)
	assert.Equal(t, cloud.ID, sources[1].ID)
	assert.Equal(t, subscribed.ID, sources[2].ID)

	err = CreateSource(ctx, db.DB(), &Source{Title: "bad", SourceType: "carrier-pigeon"})
	assert.Error(t, err)

	removed, err := DeleteSource(ctx, db.DB(), subscribed.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = DeleteSource(ctx, db.DB(), subscribed.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestEnsureCalendarConverges(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	var wg sync.WaitGroup
	ids := make([]string, 8)
	errs := make([]error, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cal, err := EnsureCalendar(ctx, db.DB(), &Calendar{
				SourceID: "local", EntityType: EntityEvent, Title: "LLM_TEST_CALENDAR", Writable: true,
			})
			errs[i] = err
			if cal != nil {
				ids[i] = cal.ID
			}
		}(i)
	}
	wg.Wait()

	for i := range ids {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	cals, err := ListCalendars(ctx, db.DB(), EntityEvent)
	require.NoError(t, err)
	assert.Len(t, cals, 1)

	found, err := FindWritableCalendar(ctx, db.DB(), EntityEvent, "LLM_TEST_CALENDAR")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, ids[0], found.ID)

	missing, err := FindWritableCalendar(ctx, db.DB(), EntityReminder, "LLM_TEST_CALENDAR")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEventsAndReminders(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	cal, err := EnsureCalendar(ctx, db.DB(), &Calendar{SourceID: "local", EntityType: EntityEvent, Title: "Work", Writable: true})
	require.NoError(t, err)
	list, err := EnsureCalendar(ctx, db.DB(), &Calendar{SourceID: "local", EntityType: EntityReminder, Title: "Todo", Writable: true})
	require.NoError(t, err)

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, CreateEvent(ctx, db.DB(), &Event{CalendarID: cal.ID, Title: "Standup", StartsAt: start, EndsAt: start.Add(time.Hour)}))

	events, err := ListEvents(ctx, db.DB(), cal.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Standup", events[0].Title)
	assert.True(t, start.Equal(events[0].StartsAt))

	notes := "bring milk"
	due := start.Add(24 * time.Hour)
	require.NoError(t, CreateReminder(ctx, db.DB(), &Reminder{CalendarID: list.ID, Title: "Shop", Priority: 5, Notes: &notes, DueAt: &due}))
	require.NoError(t, CreateReminder(ctx, db.DB(), &Reminder{CalendarID: list.ID, Title: "Call mom"}))

	reminders, err := ListReminders(ctx, db.DB(), list.ID)
	require.NoError(t, err)
	require.Len(t, reminders, 2)
	assert.Equal(t, 5, reminders[0].Priority)
	require.NotNil(t, reminders[0].Notes)
	assert.Equal(t, "bring milk", *reminders[0].Notes)
	require.NotNil(t, reminders[0].DueAt)
	assert.True(t, due.Equal(*reminders[0].DueAt))
	assert.Nil(t, reminders[1].DueAt)
	assert.Nil(t, reminders[1].Notes)
}
