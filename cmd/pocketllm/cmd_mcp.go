package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/elee1766/pocketllm/src/mcpserver"
)

// version is stamped at build time.
var version = "dev"

// MCPCmd groups the MCP subcommands
type MCPCmd struct {
	Serve MCPServeCmd `cmd:"" help:"Serve the tools over MCP stdio"`
}

type MCPServeCmd struct{}

func (c *MCPServeCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := openApp(context.Background(), cli, appParams{FileLogging: true})
	if err != nil {
		return err
	}
	defer a.Close()

	srv, err := mcpserver.New(mcpserver.Config{
		Name:    "pocketllm",
		Version: version,
		Toolbox: a.Toolbox,
		Logger:  a.Logger.With("component", "mcp"),
	})
	if err != nil {
		return err
	}
	return srv.ServeStdio()
}
