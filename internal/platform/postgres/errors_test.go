package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/cardholder-api/internal/store"
	"github.com/stretchr/testify/assert"
)

type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, nil }

func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"email unique", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: usersEmailKey}, store.ErrEmailExists},
		{"card number unique", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: paymentCardsNumKey}, store.ErrCardNumberExists},
		{"other unique", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "x"}, store.ErrDuplicate},
		{"card owner fk", &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: paymentCardsUserFK}, store.ErrUserNotFound},
		{"other fk", &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "x"}, store.ErrInvalidEntity},
		{"check", &pgconn.PgError{Code: checkViolationCode}, store.ErrInvalidEntity},
		{"not null", &pgconn.PgError{Code: notNullViolationCode}, store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapError(tt.err), tt.want)
		})
	}

	assert.NoError(t, MapError(nil))
	plain := errors.New("connection reset")
	assert.Same(t, plain, MapError(plain))
}

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	unique := fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: uniqueViolationCode})
	fk := &pgconn.PgError{Code: foreignKeyViolationCode}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrCardNotFound))
	assert.ErrorIs(t, CheckRowsAffected(mockResult{}, store.ErrCardNotFound), store.ErrCardNotFound)
	assert.ErrorIs(t, CheckRowsAffected(mockResult{}, nil), store.ErrNotFound)
	assert.Error(t, CheckRowsAffected(nil, nil))

	rowsErr := errors.New("driver does not support rows affected")
	assert.ErrorIs(t, CheckRowsAffected(mockResult{err: rowsErr}, nil), rowsErr)
}
