//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/cardholder-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// GetTestDatabaseURL returns the database URL for tests.
// It checks DATABASE_URL and CARDHOLDER_TEST_DB_URL in that order.
func GetTestDatabaseURL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}
	return os.Getenv("CARDHOLDER_TEST_DB_URL")
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// GetTestDBWithT returns a migrated database connection whose tables are
// empty. It skips the test when no database URL is configured and closes the
// connection when the test finishes.
func GetTestDBWithT(t *testing.T) *sqlx.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("DATABASE_URL or CARDHOLDER_TEST_DB_URL not set - skipping integration test")
	}

	sqlDB, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open database connection")

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, sqlDB.PingContext(ctx), "Database ping failed")

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	require.NoError(t, postgres.Migrate(context.Background(), sqlDB, nil, "up"), "Failed to apply migrations")

	db := sqlx.NewDb(sqlDB, "pgx")
	ResetTables(t, db)
	return db
}

// ResetTables removes every row from the application tables and restarts
// their id sequences.
func ResetTables(t *testing.T, db *sqlx.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	_, err := db.ExecContext(ctx, `TRUNCATE TABLE payment_cards, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "Failed to truncate tables")
}
