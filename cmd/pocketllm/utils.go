package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/elee1766/pocketllm/src/app"
	"github.com/elee1766/pocketllm/src/config"
	"github.com/elee1766/pocketllm/src/llm"
)

// loadConfig loads the configuration and applies CLI flag overrides
func loadConfig(cli *CLI) (*config.Config, error) {
	precedence := config.GetConfigPaths()
	if cli.Config != "" {
		precedence.UserConfig = cli.Config
	}

	loader := config.NewLoader(precedence)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}

	overrideConfigFromCLI(cfg, cli)
	if err := loader.Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}
	return cfg, nil
}

// overrideConfigFromCLI overrides configuration values with CLI flags
func overrideConfigFromCLI(cfg *config.Config, cli *CLI) {
	if cli.ModelName != "" {
		cfg.Model.Name = cli.ModelName
	}
	if cli.OllamaURL != "" {
		cfg.Model.BaseURL = cli.OllamaURL
	}
	if cli.DBPath != "" {
		cfg.Storage.DatabasePath = cli.DBPath
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
}

type appParams struct {
	Conversation  bool
	FileLogging   bool
	OnStateChange func(llm.SessionState)
}

// openApp loads config and builds the application
func openApp(ctx context.Context, cli *CLI, p appParams) (*app.App, error) {
	cfg, err := loadConfig(cli)
	if err != nil {
		return nil, err
	}

	var logger *slog.Logger
	if p.FileLogging {
		logger = createFileLogger(cfg.Logging.Level)
	} else {
		logger = createCLILogger(cfg.Logging.Level, cfg.Logging.Format)
	}

	return app.New(ctx, app.Options{
		Config:        cfg,
		Logger:        logger,
		Conversation:  p.Conversation,
		OnStateChange: p.OnStateChange,
	})
}
