package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/scry-decks/internal/platform/migrations"
	"github.com/phrazzld/scry-decks/internal/platform/sqlkv"
)

//go:embed migrations/*.sql
var embedded embed.FS

// Migrations returns the embedded migration files.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		// ALLOW-PANIC: the embedded directory is fixed at compile time
		panic(err)
	}
	return sub
}

// Dialect is sqlkv.Postgres with PostgreSQL error mapping.
func Dialect() sqlkv.Dialect {
	d := sqlkv.Postgres
	d.MapError = MapError
	return d
}

// OpenDB establishes a connection to the database and configures connection pools.
func OpenDB(ctx context.Context, databaseURL string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool with reasonable defaults
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		slog.String("url", MaskDatabaseURL(databaseURL)))
	return db, nil
}

// Open connects to databaseURL, applies pending migrations and returns a
// ready store.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*sqlkv.Store, error) {
	db, err := OpenDB(ctx, databaseURL, logger)
	if err != nil {
		return nil, err
	}

	if err := migrations.Up(ctx, db, "postgres", Migrations(), logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return sqlkv.New(db, Dialect(), logger), nil
}

// MaskDatabaseURL masks the password in a database URL for safe logging.
func MaskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		if _, hasPassword := parsedURL.User.Password(); !hasPassword {
			return dbURL
		}
		// url.UserPassword would escape the mask as %2A. The username is
		// escaped, so the first @ is the userinfo separator.
		parsedURL.User = url.User(parsedURL.User.Username())
		return strings.Replace(parsedURL.String(), "@", ":****@", 1)
	}

	return dbURL
}
