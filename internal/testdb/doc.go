//go:build integration

// Package testdb provides helpers for integration tests that need a live
// PostgreSQL database.
//
// Tests call GetTestDBWithT to obtain a migrated connection; the test is
// skipped when no database URL is configured. Because card creation opens its
// own transaction, tests isolate themselves by truncating the tables with
// ResetTables instead of running inside a rolled-back transaction, so tests
// sharing a database must not run in parallel.
//
// # Environment Variables
//
// - DATABASE_URL: primary connection string
// - CARDHOLDER_TEST_DB_URL: alternative connection string
package testdb
