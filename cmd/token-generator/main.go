// Command token-generator mints an access token for a user id using the
// server's auth configuration. It is meant for local development and
// scripted API calls.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/service/auth"
	flag "github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "token-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token-generator", flag.ContinueOnError)
	userID := fs.StringP("user", "u", "", "user id to place in the token subject (required)")
	configPath := fs.StringP("config", "c", "", "path to a config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID == "" {
		return fmt.Errorf("--user is required")
	}

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	svc, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	token, err := svc.GenerateToken(context.Background(), *userID)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
