package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEvents(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	events := store.Events(granted)

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	_, err := events.CreateEvent(ctx, "Late", start.Add(2*time.Hour), start.Add(3*time.Hour), "")
	require.NoError(t, err)
	_, err = events.CreateEvent(ctx, "Early", start, start.Add(time.Hour), "")
	require.NoError(t, err)
	_, err = events.CreateEvent(ctx, "Offsite", start, start.Add(time.Hour), "Work")
	require.NoError(t, err)

	all, err := store.ListEvents(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	only, err := store.ListEvents(ctx, DefaultEventCalendar)
	require.NoError(t, err)
	require.Len(t, only, 1)
	require.Len(t, only[0].Events, 2)
	assert.Equal(t, "Early", only[0].Events[0].Title)
	assert.Equal(t, "Late", only[0].Events[1].Title)

	none, err := store.ListEvents(ctx, "Missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListReminders(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	reminders := store.Reminders(granted)

	for _, title := range []string{"first", "second"} {
		_, err := reminders.CreateReminder(ctx, Reminder{Title: title})
		require.NoError(t, err)
	}

	lists, err := store.ListReminders(ctx, "")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, DefaultReminderList, lists[0].List.Title)
	require.Len(t, lists[0].Reminders, 2)
	assert.Equal(t, "first", lists[0].Reminders[0].Title)
	assert.Equal(t, "second", lists[0].Reminders[1].Title)
}

func TestRemoveSourceDropsItsCalendars(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	cloud, err := store.AddSource(ctx, "iCloud", SourceCalDAV)
	require.NoError(t, err)
	start := time.Now()
	_, err = store.Events(granted).CreateEvent(ctx, "Sync", start, start.Add(time.Minute), "Shared")
	require.NoError(t, err)

	require.NoError(t, store.RemoveSource(ctx, cloud.ID))

	listed, err := store.ListEvents(ctx, "Shared")
	require.NoError(t, err)
	assert.Empty(t, listed)

	sources, err := store.Sources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, SourceLocal, sources[0].Type)

	assert.ErrorIs(t, store.RemoveSource(ctx, cloud.ID), ErrSourceNotFound)
}
