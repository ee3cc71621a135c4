package db

import (
	"context"
	"embed"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrateCommands lists the goose commands Migrate accepts.
var MigrateCommands = []string{"up", "down", "redo", "status", "version"}

// Migrate runs a goose command against the migrations embedded in the
// binary. "up" applies all pending migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, command string) error {
	if !slices.Contains(MigrateCommands, command) {
		return fmt.Errorf("unknown migrate command %q, want one of %v", command, MigrateCommands)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	return nil
}
