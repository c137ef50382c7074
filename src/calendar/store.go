package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/elee1766/pocketllm/src/storage"
)

const (
	DefaultEventCalendar = "LLM_TEST_CALENDAR"
	DefaultReminderList  = "LLM Reminders"
	DefaultCloudBrand    = "iCloud"

	eventCalendarColor = "#007AFF"
	reminderListColor  = "#FF9500"
)

// EventStore creates calendar events.
type EventStore interface {
	EnsureAccess(ctx context.Context) (bool, error)
	CreateEvent(ctx context.Context, title string, start, end time.Time, calendarName string) (bool, error)
}

// Reminder is a reminder to be created. Due and Notes are optional.
type Reminder struct {
	Title    string
	Due      *time.Time
	Priority int
	Notes    *string
	ListName string
}

// ReminderStore creates reminders.
type ReminderStore interface {
	EnsureAccess(ctx context.Context) (bool, error)
	CreateReminder(ctx context.Context, r Reminder) (bool, error)
}

type Options struct {
	// CloudBrand is matched against CalDAV source titles when picking where
	// new calendars go.
	CloudBrand string
	Logger     *slog.Logger
}

// Store is the sqlite backed home of sources, calendars, events and
// reminders. One Store should be shared by every writer so container
// resolution is serialized.
type Store struct {
	db     storage.ExecQuerier
	brand  string
	logger *slog.Logger

	mu sync.Mutex
}

func NewStore(db storage.ExecQuerier, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		brand:  opts.CloudBrand,
		logger: logger,
	}
}

// Sources lists the configured sources in priority order.
func (s *Store) Sources(ctx context.Context) ([]Source, error) {
	rows, err := storage.ListSources(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	out := make([]Source, 0, len(rows))
	for _, r := range rows {
		out = append(out, Source{ID: r.ID, Title: r.Title, Type: SourceType(r.SourceType)})
	}
	return out, nil
}

// AddSource registers a new source after the existing ones.
func (s *Store) AddSource(ctx context.Context, title string, typ SourceType) (Source, error) {
	row := &storage.Source{Title: title, SourceType: string(typ)}
	if err := storage.CreateSource(ctx, s.db, row); err != nil {
		return Source{}, &SaveError{Op: "source", Err: err}
	}
	return Source{ID: row.ID, Title: row.Title, Type: typ}, nil
}

// ResolveContainer returns the writable calendar (or list) with the given
// title, creating it in the preferred writable source when missing.
func (s *Store) ResolveContainer(ctx context.Context, entityType, title string) (*storage.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := storage.FindWritableCalendar(ctx, s.db, entityType, title)
	if err != nil {
		return nil, fmt.Errorf("find %s container %q: %w", entityType, title, err)
	}
	if existing != nil {
		return existing, nil
	}

	sources, err := s.Sources(ctx)
	if err != nil {
		return nil, err
	}
	source, err := ResolveWritableSource(sources, s.brand)
	if err != nil {
		return nil, err
	}

	color := eventCalendarColor
	op := "calendar"
	if entityType == storage.EntityReminder {
		color = reminderListColor
		op = "list"
	}

	created, err := storage.EnsureCalendar(ctx, s.db, &storage.Calendar{
		SourceID:   source.ID,
		EntityType: entityType,
		Title:      title,
		Color:      color,
		Writable:   true,
	})
	if err != nil {
		return nil, &SaveError{Op: op, Err: err}
	}
	s.logger.Info("created container", "type", entityType, "title", title, "source", source.Title)
	return created, nil
}

// Events returns the event store view of s.
func (s *Store) Events(access Access) *Events {
	return &Events{store: s, access: access}
}

// Reminders returns the reminder store view of s.
func (s *Store) Reminders(access Access) *Reminders {
	return &Reminders{store: s, access: access}
}

type Events struct {
	store  *Store
	access Access
}

var _ EventStore = (*Events)(nil)

func (e *Events) EnsureAccess(ctx context.Context) (bool, error) {
	return e.access.Ensure(ctx)
}

func (e *Events) CreateEvent(ctx context.Context, title string, start, end time.Time, calendarName string) (bool, error) {
	if !end.After(start) {
		return false, ErrInvalidDateRange
	}
	granted, err := e.EnsureAccess(ctx)
	if err != nil {
		return false, err
	}
	if !granted {
		return false, ErrUnauthorized
	}

	if calendarName == "" {
		calendarName = DefaultEventCalendar
	}
	cal, err := e.store.ResolveContainer(ctx, storage.EntityEvent, calendarName)
	if err != nil {
		return false, err
	}

	if err := storage.CreateEvent(ctx, e.store.db, &storage.Event{
		CalendarID: cal.ID,
		Title:      title,
		StartsAt:   start,
		EndsAt:     end,
	}); err != nil {
		return false, &SaveError{Op: "event", Err: err}
	}
	return true, nil
}

type Reminders struct {
	store  *Store
	access Access
}

var _ ReminderStore = (*Reminders)(nil)

func (r *Reminders) EnsureAccess(ctx context.Context) (bool, error) {
	return r.access.Ensure(ctx)
}

func (r *Reminders) CreateReminder(ctx context.Context, rem Reminder) (bool, error) {
	granted, err := r.EnsureAccess(ctx)
	if err != nil {
		return false, err
	}
	if !granted {
		return false, ErrUnauthorized
	}

	listName := rem.ListName
	if listName == "" {
		listName = DefaultReminderList
	}
	list, err := r.store.ResolveContainer(ctx, storage.EntityReminder, listName)
	if err != nil {
		return false, err
	}

	row := &storage.Reminder{
		CalendarID: list.ID,
		Title:      rem.Title,
		Priority:   rem.Priority,
		Notes:      rem.Notes,
	}
	if rem.Due != nil {
		// Reminders keep minute precision.
		due := rem.Due.Truncate(time.Minute)
		row.DueAt = &due
	}
	if err := storage.CreateReminder(ctx, r.store.db, row); err != nil {
		return false, &SaveError{Op: "reminder", Err: err}
	}
	r.store.logger.Debug("reminder saved", "title", rem.Title, "list", listName, "priority", rem.Priority)
	return true, nil
}
