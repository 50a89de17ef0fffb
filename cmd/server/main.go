// Package main implements the entry point for the scry-decks server, which
// serves users' flashcard decks and schedules their reviews with spaced
// repetition.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/platform/migrations"
	flag "github.com/spf13/pflag"
)

// options are the command-line flags of the server.
type options struct {
	configPath string
	migrate    string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("scry-decks", flag.ContinueOnError)
	fs.StringVarP(&opts.configPath, "config", "c", "", "path to a config file (default: ./config.yaml if present)")
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a migration command ("+strings.Join(migrations.Commands, ", ")+") and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "scry-decks: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_backend", cfg.Store.Backend)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.migrate != "" {
		return runMigrations(ctx, cfg, opts.migrate, log)
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("server stopped with error", slog.String("error", err.Error()))
		return err
	}
	return nil
}
