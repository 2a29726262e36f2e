package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mcfadden20/Swim-meet-timer/internal/config"
	"github.com/mcfadden20/Swim-meet-timer/internal/database"
	"github.com/mcfadden20/Swim-meet-timer/migrations"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, status, down)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, status, down")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	pool, err := database.NewPool(context.Background(), cfg.PoolSettings())
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx := context.Background()
	if args[0] == "up" {
		PrintHeader("Applying migrations")
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Migrations applied")
		return nil
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(database.MigrationDialect); err != nil {
		return err
	}

	switch args[0] {
	case "status":
		return goose.StatusContext(ctx, db, database.MigrationDir)
	case "down":
		PrintWarning("Rolling back the latest migration")
		return goose.DownContext(ctx, db, database.MigrationDir)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}
