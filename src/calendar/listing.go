package calendar

import (
	"context"
	"fmt"

	"github.com/elee1766/pocketllm/src/storage"
)

// EventListing is one event calendar and its events, earliest first.
type EventListing struct {
	Calendar storage.Calendar
	Events   []storage.Event
}

// ReminderListing is one reminder list and its reminders in creation order.
type ReminderListing struct {
	List      storage.Calendar
	Reminders []storage.Reminder
}

// ListEvents returns every event calendar with its events. A non-empty title
// keeps only calendars with that title.
func (s *Store) ListEvents(ctx context.Context, title string) ([]EventListing, error) {
	cals, err := s.containers(ctx, storage.EntityEvent, title)
	if err != nil {
		return nil, err
	}
	out := make([]EventListing, 0, len(cals))
	for _, c := range cals {
		events, err := storage.ListEvents(ctx, s.db, c.ID)
		if err != nil {
			return nil, fmt.Errorf("list events of %q: %w", c.Title, err)
		}
		out = append(out, EventListing{Calendar: c, Events: events})
	}
	return out, nil
}

// ListReminders returns every reminder list with its reminders. A non-empty
// title keeps only lists with that title.
func (s *Store) ListReminders(ctx context.Context, title string) ([]ReminderListing, error) {
	lists, err := s.containers(ctx, storage.EntityReminder, title)
	if err != nil {
		return nil, err
	}
	out := make([]ReminderListing, 0, len(lists))
	for _, l := range lists {
		reminders, err := storage.ListReminders(ctx, s.db, l.ID)
		if err != nil {
			return nil, fmt.Errorf("list reminders of %q: %w", l.Title, err)
		}
		out = append(out, ReminderListing{List: l, Reminders: reminders})
	}
	return out, nil
}

func (s *Store) containers(ctx context.Context, entityType, title string) ([]storage.Calendar, error) {
	all, err := storage.ListCalendars(ctx, s.db, entityType)
	if err != nil {
		return nil, fmt.Errorf("list %s containers: %w", entityType, err)
	}
	if title == "" {
		return all, nil
	}
	var out []storage.Calendar
	for _, c := range all {
		if c.Title == title {
			out = append(out, c)
		}
	}
	return out, nil
}

// RemoveSource deletes a source together with its calendars and their items.
func (s *Store) RemoveSource(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := storage.DeleteSource(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("remove source %s: %w", id, err)
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, id)
	}
	s.logger.Info("removed source", "id", id)
	return nil
}
