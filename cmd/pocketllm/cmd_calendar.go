package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/elee1766/pocketllm/src/assistant/toolsutil"
	"github.com/elee1766/pocketllm/src/calendar"
	"github.com/elee1766/pocketllm/src/theme"
)

// EventsCmd shows what the createEvent tool has written
type EventsCmd struct {
	List EventsListCmd `cmd:"" default:"1" help:"List events by calendar"`
}

type EventsListCmd struct {
	Calendar string `short:"n" help:"Only show this calendar"`
}

func (c *EventsListCmd) Run(ctx *kong.Context, cli *CLI) error {
	cctx := context.Background()
	a, err := openApp(cctx, cli, appParams{})
	if err != nil {
		return err
	}
	defer a.Close()

	listings, err := a.Calendar.ListEvents(cctx, c.Calendar)
	if err != nil {
		return err
	}
	return printEvents(ctx.Stdout, listings)
}

func printEvents(out io.Writer, listings []calendar.EventListing) error {
	if len(listings) == 0 {
		fmt.Fprintln(out, theme.Status("no calendars yet"))
		return nil
	}
	for _, l := range listings {
		fmt.Fprintln(out, theme.Heading(l.Calendar.Title))
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tSTARTS\tENDS")
		for _, e := range l.Events {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Title, toolsutil.FormatDueDate(e.StartsAt), toolsutil.FormatDueDate(e.EndsAt))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// RemindersCmd shows what the createReminder tool has written
type RemindersCmd struct {
	List RemindersListCmd `cmd:"" default:"1" help:"List reminders by list"`
}

type RemindersListCmd struct {
	List string `short:"l" help:"Only show this reminder list"`
}

func (c *RemindersListCmd) Run(ctx *kong.Context, cli *CLI) error {
	cctx := context.Background()
	a, err := openApp(cctx, cli, appParams{})
	if err != nil {
		return err
	}
	defer a.Close()

	listings, err := a.Calendar.ListReminders(cctx, c.List)
	if err != nil {
		return err
	}
	return printReminders(ctx.Stdout, listings)
}

func printReminders(out io.Writer, listings []calendar.ReminderListing) error {
	if len(listings) == 0 {
		fmt.Fprintln(out, theme.Status("no reminder lists yet"))
		return nil
	}
	for _, l := range listings {
		fmt.Fprintln(out, theme.Heading(l.List.Title))
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tDUE\tPRIORITY\tNOTES")
		for _, r := range l.Reminders {
			due := "-"
			if r.DueAt != nil {
				due = toolsutil.FormatDueDate(*r.DueAt)
			}
			priority := "-"
			if r.Priority != 0 {
				priority = strconv.Itoa(r.Priority)
			}
			notes := ""
			if r.Notes != nil {
				notes = firstLine(*r.Notes)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Title, due, priority, notes)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
