// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles query construction, execution, and data mapping between domain
// entities and database records, and embeds the schema migrations applied
// with goose.
package postgres
