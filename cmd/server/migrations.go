package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/cardholder-api/internal/platform/postgres"
)

// handleMigrations executes a goose migration command against db.
// It's called from run() when the -migrate flag is set.
func handleMigrations(
	ctx context.Context,
	db *sql.DB,
	logger *slog.Logger,
	migrateCmd string,
	args ...string,
) error {
	logger.Info("Executing migrations", "command", migrateCmd, "args", args)
	return postgres.Migrate(ctx, db, logger, migrateCmd, args...)
}
