package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/x/ansi"
	"github.com/elee1766/pocketllm/src/agent"
	"github.com/elee1766/pocketllm/src/aisdk"
	"github.com/elee1766/pocketllm/src/storage"
	"github.com/elee1766/pocketllm/src/theme"
	"github.com/google/uuid"
)

// ToolsCmd represents all tool-related commands
type ToolsCmd struct {
	List    ToolsListCmd    `cmd:"" default:"1" help:"List available tools"`
	Show    ToolsShowCmd    `cmd:"" help:"Show a tool's argument schema"`
	Exec    ToolsExecCmd    `cmd:"" help:"Execute a tool directly"`
	History ToolsHistoryCmd `cmd:"" help:"Show recent tool executions"`
}

// ToolsListCmd lists available tools
type ToolsListCmd struct {
	Format string `short:"f" enum:"table,json" default:"table" help:"Output format"`
}

func (c *ToolsListCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := openApp(context.Background(), cli, appParams{})
	if err != nil {
		return err
	}
	defer a.Close()

	if c.Format == "json" {
		enc := json.NewEncoder(ctx.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(agent.ToChatTools(a.Toolbox.Tools()))
	}

	fmt.Fprintln(ctx.Stdout, theme.Heading("Tools"))
	w := tabwriter.NewWriter(ctx.Stdout, 0, 0, 2, ' ', 0)
	for _, tool := range a.Toolbox.Tools() {
		fmt.Fprintf(w, "%s\t%s\n", tool.GetName(), ansi.Truncate(firstLine(tool.GetDescription()), 72, "..."))
	}
	return w.Flush()
}

// ToolsShowCmd shows a tool's description and schema
type ToolsShowCmd struct {
	Name string `arg:"" help:"Tool name"`
}

func (c *ToolsShowCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := openApp(context.Background(), cli, appParams{})
	if err != nil {
		return err
	}
	defer a.Close()

	tool, ok := a.Toolbox.GetTool(c.Name)
	if !ok {
		return unknownToolError(c.Name, a.Toolbox.Names())
	}
	schema, err := json.MarshalIndent(tool.GetParameters(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Stdout, theme.Heading(tool.GetName()))
	fmt.Fprintln(ctx.Stdout, tool.GetDescription())
	fmt.Fprintln(ctx.Stdout)
	fmt.Fprintln(ctx.Stdout, string(schema))
	return nil
}

// ToolsExecCmd runs one tool call without a model
type ToolsExecCmd struct {
	Name string `arg:"" help:"Tool name"`
	Args string `arg:"" optional:"" default:"{}" help:"JSON arguments"`
}

func (c *ToolsExecCmd) Run(ctx *kong.Context, cli *CLI) error {
	if !json.Valid([]byte(c.Args)) {
		return fmt.Errorf("invalid JSON arguments: %s", c.Args)
	}

	cctx := context.Background()
	a, err := openApp(cctx, cli, appParams{})
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.Toolbox.HasTool(c.Name) {
		return unknownToolError(c.Name, a.Toolbox.Names())
	}

	resp, err := a.Toolbox.ExecuteTool(cctx, &aisdk.ToolCall{
		ID:   uuid.New().String(),
		Type: "function",
		Function: aisdk.FunctionCall{
			Name:      c.Name,
			Arguments: json.RawMessage(c.Args),
		},
	})
	if err != nil {
		return err
	}
	if resp.IsError {
		fmt.Fprintln(ctx.Stdout, theme.ErrorLine(resp.Text()))
		return nil
	}
	fmt.Fprintln(ctx.Stdout, resp.Text())
	return nil
}

// ToolsHistoryCmd prints the tool execution ledger
type ToolsHistoryCmd struct {
	Limit int `short:"n" default:"20" help:"Number of executions to show"`
}

func (c *ToolsHistoryCmd) Run(ctx *kong.Context, cli *CLI) error {
	cctx := context.Background()
	a, err := openApp(cctx, cli, appParams{})
	if err != nil {
		return err
	}
	defer a.Close()

	execs, err := storage.ListToolExecutions(cctx, a.Store.DB(), c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list tool executions: %w", err)
	}

	w := tabwriter.NewWriter(ctx.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tTOOL\tSTATUS\tDURATION\tOUTPUT")
	for _, e := range execs {
		status := "ok"
		if e.Failed {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dms\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.ToolName,
			status,
			e.DurationMs,
			ansi.Truncate(firstLine(e.Output), 60, "..."),
		)
	}
	return w.Flush()
}
