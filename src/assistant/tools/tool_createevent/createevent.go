package tool_createevent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elee1766/pocketllm/src/agent"
	"github.com/elee1766/pocketllm/src/assistant/toolsutil"
	"github.com/elee1766/pocketllm/src/calendar"
)

// Tool name constant
const Name = "createEvent"

// CreateEventInput represents the parameters for createEvent
type CreateEventInput struct {
	Title     string `json:"title" required:"true" description:"The title of the event" validate:"required"`
	StartDate string `json:"startDate" required:"true" description:"The start date and time of the event in yyyy-MM-ddTHH:mm:ss format. Use dates relative to today's date." validate:"required"`
	EndDate   string `json:"endDate" required:"true" description:"The end date and time of the event in yyyy-MM-ddTHH:mm:ss format" validate:"required"`
}

type Options struct {
	Store        calendar.EventStore
	CalendarName string
	Location     *time.Location
	Now          func() time.Time
}

// Tool returns the createEvent tool definition
func Tool(opts Options) (agent.Tool, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("%s: event store is required", Name)
	}
	if opts.CalendarName == "" {
		opts.CalendarName = calendar.DefaultEventCalendar
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return agent.NewTool(Name, describe(opts), makeCreateEventHandler(opts))
}

func describe(opts Options) agent.Describer {
	return func() string {
		today := opts.Now().In(opts.Location).Format("2006-01-02")
		return fmt.Sprintf("Creates a calendar event. Today's date is %s. When creating events, use dates relative to today or in the future unless the user specifically requests a past date.", today)
	}
}

func makeCreateEventHandler(opts Options) agent.Handler[CreateEventInput] {
	return func(ctx context.Context, input CreateEventInput) agent.Result {
		start, err := toolsutil.ParseTimestamp(input.StartDate, opts.Location)
		if err != nil {
			return parseFailure()
		}
		end, err := toolsutil.ParseTimestamp(input.EndDate, opts.Location)
		if err != nil {
			return parseFailure()
		}

		if !end.After(start) {
			return agent.Failure("End date must be after start date.")
		}

		toolsutil.GetLogger().Info("creating event", "title", input.Title, "start", start, "end", end, "calendar", opts.CalendarName)

		ok, err := opts.Store.CreateEvent(ctx, input.Title, start, end, opts.CalendarName)
		switch {
		case errors.Is(err, calendar.ErrInvalidDateRange):
			return agent.Failure("End date must be after start date.")
		case err != nil:
			toolsutil.GetLogger().Error("failed to create event", "title", input.Title, "error", err)
			return agent.Failure("Failed to create the event '%s': %v", input.Title, err)
		case !ok:
			return agent.Failure("Failed to create the event '%s'.", input.Title)
		}

		return agent.Success("Successfully created the event '%s' from %s to %s.", input.Title, input.StartDate, input.EndDate)
	}
}

func parseFailure() agent.Result {
	return agent.Failure("Failed to parse the event start or end time. Expected format: %s", toolsutil.TimestampFormatHint)
}
