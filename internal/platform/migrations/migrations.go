// Package migrations runs embedded goose migrations against a database.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
)

// TableName is the goose version table used by every backend.
const TableName = "schema_migrations"

// Supported commands.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandReset   = "reset"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// Commands lists every command accepted by Run.
var Commands = []string{CommandUp, CommandDown, CommandReset, CommandStatus, CommandVersion}

// goose keeps its dialect, base FS and logger in package state.
var gooseMu sync.Mutex

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error
// Note: Unlike the standard Fatalf behavior, this does NOT call os.Exit
// to allow main.go to handle application exit consistently
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Up applies all pending migrations in fsys.
func Up(ctx context.Context, db *sql.DB, dialect string, fsys fs.FS, logger *slog.Logger) error {
	return Run(ctx, db, dialect, fsys, CommandUp, logger)
}

// Run executes a goose command using the migrations found at the root of fsys.
func Run(
	ctx context.Context,
	db *sql.DB,
	dialect string,
	fsys fs.FS,
	command string,
	logger *slog.Logger,
) error {
	if logger == nil {
		logger = slog.Default()
	}
	migrationLogger := logger.With(
		slog.String("component", "migrations"),
		slog.String("dialect", dialect),
		slog.String("command", command))

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	goose.SetTableName(TableName)
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	start := time.Now()
	var err error
	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, db, ".")
	case CommandDown:
		err = goose.DownContext(ctx, db, ".")
	case CommandReset:
		err = goose.ResetContext(ctx, db, ".")
	case CommandStatus:
		err = goose.StatusContext(ctx, db, ".")
	case CommandVersion:
		err = goose.VersionContext(ctx, db, ".")
	default:
		return fmt.Errorf(
			"unknown migration command: %s (expected one of %v)",
			command,
			Commands,
		)
	}
	if err != nil {
		migrationLogger.Error("migration command failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	migrationLogger.Debug("migration command completed",
		slog.Duration("duration", time.Since(start)))
	return nil
}
