package store

import (
	"github.com/jmoiron/sqlx"
)

// DBTX abstracts the database access layer. It is implemented by both
// *sqlx.DB and *sqlx.Tx, so store code runs unchanged inside or outside a
// transaction and works with sqlx.GetContext and sqlx.SelectContext.
type DBTX interface {
	sqlx.ExtContext
}

var (
	_ DBTX = (*sqlx.DB)(nil)
	_ DBTX = (*sqlx.Tx)(nil)
)
