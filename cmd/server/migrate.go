package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"

	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/platform/migrations"
	"github.com/phrazzld/scry-decks/internal/platform/postgres"
	"github.com/phrazzld/scry-decks/internal/platform/sqlite"
)

// runMigrations executes a migration command against the configured SQL
// backend. The memory and file backends have no schema.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if !slices.Contains(migrations.Commands, command) {
		return fmt.Errorf("unknown migration command %q", command)
	}

	var (
		db      *sql.DB
		dialect string
		fsys    fs.FS
		err     error
	)
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		db, err = sql.Open("sqlite", sqlite.DSN(cfg.Store.SQLitePath))
		dialect, fsys = "sqlite3", sqlite.Migrations()
	case config.BackendPostgres:
		db, err = postgres.OpenDB(ctx, cfg.Database.URL, logger)
		dialect, fsys = "postgres", postgres.Migrations()
	default:
		return fmt.Errorf("backend %q has no migrations", cfg.Store.Backend)
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close database", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrations.Run(ctx, db, dialect, fsys, command, logger); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	logger.Info("migration command completed", slog.String("command", command))
	return nil
}
