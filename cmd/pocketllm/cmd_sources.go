package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/elee1766/pocketllm/src/calendar"
	"github.com/elee1766/pocketllm/src/theme"
)

// SourcesCmd manages the accounts calendars and reminder lists live in
type SourcesCmd struct {
	List   SourcesListCmd   `cmd:"" default:"1" help:"List sources in priority order"`
	Add    SourcesAddCmd    `cmd:"" help:"Add a source"`
	Remove SourcesRemoveCmd `cmd:"" help:"Remove a source with its calendars, lists and items"`
}

type SourcesListCmd struct{}

func (c *SourcesListCmd) Run(ctx *kong.Context, cli *CLI) error {
	cctx := context.Background()
	a, err := openApp(cctx, cli, appParams{})
	if err != nil {
		return err
	}
	defer a.Close()

	sources, err := a.Calendar.Sources(cctx)
	if err != nil {
		return err
	}

	preferred, resolveErr := calendar.ResolveWritableSource(sources, a.Config.Calendar.CloudBrand)

	fmt.Fprintln(ctx.Stdout, theme.Heading("Sources"))
	w := tabwriter.NewWriter(ctx.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tTYPE\tWRITABLE\tID")
	for _, s := range sources {
		writable := "yes"
		if s.ReadOnly() {
			writable = "no"
		}
		if resolveErr == nil && s.ID == preferred.ID {
			writable += " (preferred)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Title, s.Type, writable, s.ID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if resolveErr != nil {
		fmt.Fprintln(ctx.Stdout, theme.ErrorLine(resolveErr.Error()))
	}
	return nil
}

type SourcesAddCmd struct {
	Title string `arg:"" help:"Display name, e.g. 'iCloud'"`
	Type  string `short:"t" default:"caldav" help:"Source type (local, caldav, exchange, subscribed, birthdays)"`
}

func (c *SourcesAddCmd) Run(ctx *kong.Context, cli *CLI) error {
	typ, err := calendar.ParseSourceType(c.Type)
	if err != nil {
		return err
	}

	cctx := context.Background()
	a, err := openApp(cctx, cli, appParams{})
	if err != nil {
		return err
	}
	defer a.Close()

	src, err := a.Calendar.AddSource(cctx, c.Title, typ)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout, "Added %s source %q (%s)\n", src.Type, src.Title, src.ID)
	return nil
}

type SourcesRemoveCmd struct {
	ID string `arg:"" help:"Source id, as shown by 'sources list'"`
}

func (c *SourcesRemoveCmd) Run(ctx *kong.Context, cli *CLI) error {
	cctx := context.Background()
	a, err := openApp(cctx, cli, appParams{})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Calendar.RemoveSource(cctx, c.ID); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout, "Removed source %s\n", c.ID)
	return nil
}
