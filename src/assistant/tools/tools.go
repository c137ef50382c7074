package tools

// This file provides barrel-style re-exports for all tools and builds the
// fixed registry handed to every model session.

import (
	"fmt"
	"time"

	"github.com/elee1766/pocketllm/src/agent"
	tool_createevent "github.com/elee1766/pocketllm/src/assistant/tools/tool_createevent"
	tool_createnote "github.com/elee1766/pocketllm/src/assistant/tools/tool_createnote"
	tool_createreminder "github.com/elee1766/pocketllm/src/assistant/tools/tool_createreminder"
	"github.com/elee1766/pocketllm/src/calendar"
	"github.com/spf13/afero"
)

// Tool name constants - re-exported from individual packages
const (
	CreateEventName    = tool_createevent.Name
	CreateNoteName     = tool_createnote.Name
	CreateReminderName = tool_createreminder.Name
)

// Names lists the registry in declaration order.
var Names = []string{CreateEventName, CreateNoteName, CreateReminderName}

// Deps are the collaborators the tools write through.
type Deps struct {
	Events    calendar.EventStore
	Reminders calendar.ReminderStore
	Fs        afero.Fs
	NotesDir  string

	EventCalendar string
	ReminderList  string

	Location *time.Location
	Now      func() time.Time
}

func CreateEventTool(d Deps) (agent.Tool, error) {
	return tool_createevent.Tool(tool_createevent.Options{
		Store:        d.Events,
		CalendarName: d.EventCalendar,
		Location:     d.Location,
		Now:          d.Now,
	})
}

func CreateNoteTool(d Deps) (agent.Tool, error) {
	return tool_createnote.Tool(tool_createnote.Options{
		Fs:       d.Fs,
		Dir:      d.NotesDir,
		Location: d.Location,
		Now:      d.Now,
	})
}

func CreateReminderTool(d Deps) (agent.Tool, error) {
	return tool_createreminder.Tool(tool_createreminder.Options{
		Store:       d.Reminders,
		DefaultList: d.ReminderList,
		Location:    d.Location,
		Now:         d.Now,
	})
}

// All builds every tool in declaration order.
func All(d Deps) ([]agent.Tool, error) {
	builders := []func(Deps) (agent.Tool, error){
		CreateEventTool,
		CreateNoteTool,
		CreateReminderTool,
	}
	out := make([]agent.Tool, 0, len(builders))
	for _, build := range builders {
		tool, err := build(d)
		if err != nil {
			return nil, err
		}
		out = append(out, tool)
	}
	return out, nil
}

// NewToolbox registers every tool in a fresh toolbox.
func NewToolbox(d Deps) (*agent.DefaultToolbox, error) {
	all, err := All(d)
	if err != nil {
		return nil, err
	}
	tb := agent.NewToolbox[agent.Tool]()
	for _, tool := range all {
		if err := tb.RegisterTool(tool); err != nil {
			return nil, fmt.Errorf("register %s: %w", tool.GetName(), err)
		}
	}
	return tb, nil
}
