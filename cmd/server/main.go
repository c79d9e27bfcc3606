// Package main implements the entry point for the Cardholder API server,
// which manages users and the payment cards they hold, and fronts the
// PostgreSQL store with a Redis cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	migrateCmd := flag.String("migrate", "", "Run a database migration command (up, down, status, reset, version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd, flag.Args()); err != nil {
		log.Printf("cardholder-api: %v", err)
		stop()
		os.Exit(1)
	}
}

// run loads configuration, sets up logging and either executes a migration
// command or starts the HTTP server until ctx is canceled.
func run(ctx context.Context, migrateCmd string, args []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing database connection", slog.String("error", err.Error()))
			}
		}()
		return handleMigrations(ctx, db.DB, logger, migrateCmd, args...)
	}

	redisClient, err := setupAppCache(ctx, cfg, logger)
	if err != nil {
		_ = db.Close()
		return err
	}

	app, err := newApplication(cfg, logger, db, redisClient)
	if err != nil {
		_ = db.Close()
		_ = redisClient.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
