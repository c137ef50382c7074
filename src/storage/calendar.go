package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

// ListSources returns sources in their configured order
func ListSources(ctx context.Context, db sqlscan.Querier) ([]Source, error) {
	query := `SELECT id, title, source_type, position, created_at FROM sources ORDER BY position, created_at`
	var sources []Source
	if err := sqlscan.Select(ctx, db, &sources, query); err != nil {
		return nil, err
	}
	return sources, nil
}

// CreateSource appends a source after the existing ones
func CreateSource(ctx context.Context, db ExecQuerier, source *Source) error {
	if source.ID == "" {
		source.ID = uuid.New().String()
	}
	if source.CreatedAt.IsZero() {
		source.CreatedAt = time.Now()
	}

	query := `INSERT INTO sources (id, title, source_type, position, created_at)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM sources), ?)
		RETURNING position`
	return sqlscan.Get(ctx, db, &source.Position, query, source.ID, source.Title, source.SourceType, source.CreatedAt)
}

// DeleteSource removes a source and everything it owns
func DeleteSource(ctx context.Context, db Execer, id string) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM sources WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// FindWritableCalendar returns the first writable calendar with the given
// title, or nil when there is none.
func FindWritableCalendar(ctx context.Context, db sqlscan.Querier, entityType, title string) (*Calendar, error) {
	query := `SELECT c.id, c.source_id, c.entity_type, c.title, c.color, c.writable, c.created_at
		FROM calendars c JOIN sources s ON s.id = c.source_id
		WHERE c.entity_type = ? AND c.title = ? AND c.writable = 1
		ORDER BY s.position, c.created_at LIMIT 1`
	var c Calendar
	if err := sqlscan.Get(ctx, db, &c, query, entityType, title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// EnsureCalendar inserts the calendar unless one with the same entity type,
// source and title already exists, then returns the stored row. Concurrent
// callers converge on a single row.
func EnsureCalendar(ctx context.Context, db ExecQuerier, calendar *Calendar) (*Calendar, error) {
	if calendar.ID == "" {
		calendar.ID = uuid.New().String()
	}
	if calendar.CreatedAt.IsZero() {
		calendar.CreatedAt = time.Now()
	}

	insert := `INSERT INTO calendars (id, source_id, entity_type, title, color, writable, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity_type, source_id, title) DO NOTHING`
	if _, err := db.ExecContext(ctx, insert,
		calendar.ID, calendar.SourceID, calendar.EntityType, calendar.Title, calendar.Color, calendar.Writable, calendar.CreatedAt,
	); err != nil {
		return nil, err
	}

	query := `SELECT id, source_id, entity_type, title, color, writable, created_at FROM calendars
		WHERE entity_type = ? AND source_id = ? AND title = ?`
	var stored Calendar
	if err := sqlscan.Get(ctx, db, &stored, query, calendar.EntityType, calendar.SourceID, calendar.Title); err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListCalendars returns calendars of one entity type
func ListCalendars(ctx context.Context, db sqlscan.Querier, entityType string) ([]Calendar, error) {
	query := `SELECT id, source_id, entity_type, title, color, writable, created_at FROM calendars WHERE entity_type = ? ORDER BY created_at, title`
	var out []Calendar
	if err := sqlscan.Select(ctx, db, &out, query, entityType); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateEvent creates a new event in the database
func CreateEvent(ctx context.Context, db Execer, event *Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	query := `INSERT INTO events (id, calendar_id, title, starts_at, ends_at, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, event.ID, event.CalendarID, event.Title, event.StartsAt, event.EndsAt, event.CreatedAt)
	return err
}

// ListEvents returns the events of a calendar ordered by start time
func ListEvents(ctx context.Context, db sqlscan.Querier, calendarID string) ([]Event, error) {
	query := `SELECT id, calendar_id, title, starts_at, ends_at, created_at FROM events WHERE calendar_id = ? ORDER BY starts_at`
	var out []Event
	if err := sqlscan.Select(ctx, db, &out, query, calendarID); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReminder creates a new reminder in the database
func CreateReminder(ctx context.Context, db Execer, reminder *Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now()
	}

	query := `INSERT INTO reminders (id, calendar_id, title, due_at, priority, notes, completed, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		reminder.ID,
		reminder.CalendarID,
		reminder.Title,
		reminder.DueAt,
		reminder.Priority,
		reminder.Notes,
		reminder.Completed,
		reminder.CreatedAt,
	)
	return err
}

// ListReminders returns the reminders of a list in creation order
func ListReminders(ctx context.Context, db sqlscan.Querier, calendarID string) ([]Reminder, error) {
	query := `SELECT id, calendar_id, title, due_at, priority, notes, completed, created_at FROM reminders WHERE calendar_id = ? ORDER BY created_at, rowid`
	var out []Reminder
	if err := sqlscan.Select(ctx, db, &out, query, calendarID); err != nil {
		return nil, err
	}
	return out, nil
}
