package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/elee1766/pocketllm/src/storage"
)

// MigrateCmd manages database migrations
type MigrateCmd struct {
	Up     MigrateUpCmd     `cmd:"" help:"Run pending migrations"`
	Status MigrateStatusCmd `cmd:"" help:"Show migration status"`
}

// MigrateUpCmd runs pending migrations
type MigrateUpCmd struct{}

// Run executes the migrate up command
func (c *MigrateUpCmd) Run(ctx *kong.Context, cli *CLI) error {
	db, err := openDatabase(cli)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(ctx.Stdout, "Database migrated: %s\n", db.Path())
	return nil
}

// MigrateStatusCmd shows migration status
type MigrateStatusCmd struct{}

// Run executes the migrate status command
func (c *MigrateStatusCmd) Run(ctx *kong.Context, cli *CLI) error {
	db, err := openDatabase(cli)
	if err != nil {
		return err
	}
	defer db.Close()

	states, err := db.MigrationStatus(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}

	w := tabwriter.NewWriter(ctx.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED")
	for _, s := range states {
		fmt.Fprintf(w, "%03d\t%s\t%t\n", s.Version, s.Name, s.Applied)
	}
	return w.Flush()
}

// openDatabase opens (and migrates) the configured database
func openDatabase(cli *CLI) (*storage.DB, error) {
	cfg, err := loadConfig(cli)
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
