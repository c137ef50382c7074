package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	Config    string `short:"c" type:"path" help:"Config file (overrides the user config)"`
	LogLevel  string `help:"Log level (debug, info, warn, error)"`
	ModelName string `short:"m" name:"model" help:"Model to use"`
	OllamaURL string `name:"ollama-url" help:"Ollama server URL"`
	DBPath    string `name:"db" type:"path" help:"Database path"`

	// Chat is the default command - interactive conversation
	Chat ChatCmd `cmd:"" default:"1" help:"Start an interactive chat (default)"`

	Prompt    PromptCmd    `cmd:"" help:"Send a single prompt"`
	Tools     ToolsCmd     `cmd:"" help:"Inspect and run tools"`
	Events    EventsCmd    `cmd:"" help:"Show saved events"`
	Reminders RemindersCmd `cmd:"" help:"Show saved reminders"`
	Sources   SourcesCmd   `cmd:"" help:"Manage calendar sources"`
	Runtime   ModelCmd     `cmd:"" help:"Model runtime information"`
	Migrate   MigrateCmd   `cmd:"" help:"Database migrations"`
	MCP       MCPCmd       `cmd:"" name:"mcp" help:"Model Context Protocol server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pocketllm"),
		kong.Description("Chat with a local model that can create events, notes and reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
