package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"--config", "prod.yaml", "--migrate", "status"})
	require.NoError(t, err)
	assert.Equal(t, "prod.yaml", opts.configPath)
	assert.Equal(t, "status", opts.migrate)

	opts, err = parseFlags([]string{"-c", "dev.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "dev.yaml", opts.configPath)
	assert.Empty(t, opts.migrate)

	_, err = parseFlags([]string{"--bogus"})
	assert.Error(t, err)
}

func TestRunMigrations(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	cfg := testConfig(config.BackendSQLite)
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "scry.db")
	ctx := context.Background()

	require.NoError(t, runMigrations(ctx, cfg, "up", log))
	require.NoError(t, runMigrations(ctx, cfg, "status", log))
	require.NoError(t, runMigrations(ctx, cfg, "down", log))

	assert.Error(t, runMigrations(ctx, cfg, "sideways", log))
	assert.Error(t, runMigrations(ctx, testConfig(config.BackendMemory), "up", log))
}

func TestStartHTTPServerStopsOnCancel(t *testing.T) {
	app := newTestApp(t, testConfig(config.BackendMemory))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- app.startHTTPServer(ctx, app.setupRouter()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
