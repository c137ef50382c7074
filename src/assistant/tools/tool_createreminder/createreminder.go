package tool_createreminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/elee1766/pocketllm/src/agent"
	"github.com/elee1766/pocketllm/src/assistant/toolsutil"
	"github.com/elee1766/pocketllm/src/calendar"
)

// Tool name constant
const Name = "createReminder"

// CreateReminderInput represents the parameters for createReminder
type CreateReminderInput struct {
	Title    string `json:"title" required:"true" description:"The title/task of the reminder" validate:"required"`
	DueDate  string `json:"dueDate,omitempty" description:"Optional: Due date and time in yyyy-MM-ddTHH:mm:ss format. Leave empty for no due date."`
	Priority string `json:"priority,omitempty" description:"Optional: Priority level - 'high', 'medium', 'low', or 'none'. Default is 'none'."`
	Notes    string `json:"notes,omitempty" description:"Optional: Additional notes or details about the reminder"`
	ListName string `json:"listName,omitempty" description:"Optional: List name for the reminder. If not specified, uses the default list."`
}

type Options struct {
	Store       calendar.ReminderStore
	DefaultList string
	Location    *time.Location
	Now         func() time.Time
}

// Tool returns the createReminder tool definition
func Tool(opts Options) (agent.Tool, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("%s: reminder store is required", Name)
	}
	if opts.DefaultList == "" {
		opts.DefaultList = calendar.DefaultReminderList
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return agent.NewTool(Name, describe(opts), makeCreateReminderHandler(opts))
}

func describe(opts Options) agent.Describer {
	return func() string {
		today := opts.Now().In(opts.Location).Format("2006-01-02")
		return fmt.Sprintf("Creates a reminder. Today's date is %s. Use this for tasks, to-dos, and things the user needs to remember. Can set due dates and times.", today)
	}
}

func makeCreateReminderHandler(opts Options) agent.Handler[CreateReminderInput] {
	return func(ctx context.Context, input CreateReminderInput) agent.Result {
		var due *time.Time
		if s := strings.TrimSpace(input.DueDate); s != "" {
			parsed, err := toolsutil.ParseTimestamp(s, opts.Location)
			if err != nil {
				return agent.Failure("Failed to parse due date. Expected format: %s", toolsutil.TimestampFormatHint)
			}
			due = &parsed
		}

		reminder := calendar.Reminder{
			Title:    input.Title,
			Due:      due,
			Priority: toolsutil.PriorityFromString(input.Priority),
			ListName: input.ListName,
		}
		if reminder.ListName == "" {
			reminder.ListName = opts.DefaultList
		}
		if input.Notes != "" {
			notes := input.Notes
			reminder.Notes = &notes
		}

		toolsutil.GetLogger().Info("creating reminder", "title", reminder.Title, "priority", reminder.Priority, "list", reminder.ListName, "has_due", due != nil)

		ok, err := opts.Store.CreateReminder(ctx, reminder)
		if err != nil {
			toolsutil.GetLogger().Error("failed to create reminder", "title", input.Title, "error", err)
			return agent.Failure("Failed to create reminder '%s': %v", input.Title, err)
		}
		if !ok {
			return agent.Failure("Failed to create reminder '%s'.", input.Title)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Successfully created reminder '%s'", input.Title)
		if due != nil {
			fmt.Fprintf(&b, " due %s", toolsutil.FormatDueDate(*due))
		}
		b.WriteString(".")
		return agent.Success("%s", b.String())
	}
}
