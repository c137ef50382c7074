package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/elee1766/pocketllm/src/app"
	"github.com/elee1766/pocketllm/src/llm"
)

// ModelCmd reports on the model runtime
type ModelCmd struct {
	Status ModelStatusCmd `cmd:"" default:"1" help:"Check whether the configured model can answer"`
}

type ModelStatusCmd struct{}

func (c *ModelStatusCmd) Run(ctx *kong.Context, cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	logger := createCLILogger(cfg.Logging.Level, cfg.Logging.Format)

	rt, err := app.NewRuntime(cfg.Model, logger)
	if err != nil {
		return err
	}

	avail := rt.Availability(context.Background())
	fmt.Fprintf(ctx.Stdout, "Runtime: %s\nURL:     %s\nModel:   %s\n", cfg.Model.Runtime, cfg.Model.BaseURL, cfg.Model.Name)
	fmt.Fprintln(ctx.Stdout, avail.Explain())
	if !avail.Available {
		return &llm.UnavailableError{Availability: avail}
	}
	return nil
}
