package postgres

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqlx.NewDb(db, "pgx"), mock
}

// q turns a literal SQL fragment into a sqlmock matcher pattern.
func q(sql string) string {
	return regexp.QuoteMeta(sql)
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns)
}

func cardRows() *sqlmock.Rows {
	return sqlmock.NewRows(cardColumns)
}

func addCard(rows *sqlmock.Rows, id int64, number string, active bool, userID int64) *sqlmock.Rows {
	return rows.AddRow(id, number, "Ada Lovelace",
		time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
		active, userID, testTime, testTime)
}
