package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lockOwner  = `SELECT id FROM users WHERE id = $1 FOR UPDATE`
	countCards = `SELECT COUNT(*) FROM payment_cards WHERE user_id = $1`
	insertCard = `INSERT INTO payment_cards`
)

func newTestCard() *domain.Card {
	return &domain.Card{
		Number:         "1234123412341234",
		Holder:         "Ada Lovelace",
		ExpirationDate: civil.Date{Year: 2030, Month: time.January, Day: 1},
		Active:         true,
		UserID:         7,
		CreatedAt:      testTime,
		UpdatedAt:      testTime,
	}
}

func TestPostgresCardStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("inserts under the limit", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, nil)
		card := newTestCard()

		mock.ExpectBegin()
		mock.ExpectQuery(q(lockOwner)).WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectQuery(q(countCards)).WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
		mock.ExpectQuery(q(insertCard)).
			WithArgs("1234123412341234", "Ada Lovelace",
				time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
				true, int64(7), testTime, testTime).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectCommit()

		require.NoError(t, s.Create(context.Background(), card, 5))
		assert.Equal(t, int64(11), card.ID)
	})

	t.Run("limit reached", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, nil)

		mock.ExpectBegin()
		mock.ExpectQuery(q(lockOwner)).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectQuery(q(countCards)).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
		mock.ExpectRollback()

		err := s.Create(context.Background(), newTestCard(), 5)
		assert.ErrorIs(t, err, store.ErrCardLimitExceeded)
	})

	t.Run("owner missing", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, nil)

		mock.ExpectBegin()
		mock.ExpectQuery(q(lockOwner)).WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := s.Create(context.Background(), newTestCard(), 5)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("duplicate number", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, nil)

		mock.ExpectBegin()
		mock.ExpectQuery(q(lockOwner)).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectQuery(q(countCards)).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(q(insertCard)).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: paymentCardsNumKey})
		mock.ExpectRollback()

		err := s.Create(context.Background(), newTestCard(), 5)
		assert.ErrorIs(t, err, store.ErrCardNumberExists)
	})

	t.Run("invalid card", func(t *testing.T) {
		t.Parallel()
		db, _ := newMockDB(t)
		s := NewPostgresCardStore(db, nil)

		card := newTestCard()
		card.Number = "123"

		err := s.Create(context.Background(), card, 5)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("begin failure", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, nil)

		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		err := s.Create(context.Background(), newTestCard(), 5)
		assert.ErrorIs(t, err, store.ErrTransactionFailed)
	})
}

func TestPostgresCardStore_Update(t *testing.T) {
	t.Parallel()

	t.Run("updates mutable columns", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, nil)
		card := newTestCard()
		card.ID = 11
		card.Active = false

		mock.ExpectExec(q("UPDATE payment_cards")).
			WithArgs("1234123412341234", sqlmock.AnyArg(), false, testTime, int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Update(context.Background(), card))
	})

	t.Run("missing row", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, nil)
		card := newTestCard()
		card.ID = 11

		mock.ExpectExec(q("UPDATE payment_cards")).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Update(context.Background(), card), store.ErrCardNotFound)
	})

	t.Run("number taken", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, nil)
		card := newTestCard()
		card.ID = 11

		mock.ExpectExec(q("UPDATE payment_cards")).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: paymentCardsNumKey})

		assert.ErrorIs(t, s.Update(context.Background(), card), store.ErrCardNumberExists)
	})
}

func TestPostgresCardStore_Lookups(t *testing.T) {
	t.Parallel()

	t.Run("by id", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, nil)

		mock.ExpectQuery(q("FROM payment_cards WHERE (id = $1) LIMIT 1")).
			WithArgs(int64(11)).
			WillReturnRows(addCard(cardRows(), 11, "1234123412341234", true, 7))

		card, err := s.GetByID(context.Background(), 11)
		require.NoError(t, err)
		assert.Equal(t, int64(7), card.UserID)
		assert.Equal(t, "Ada Lovelace", card.Holder)
	})

	t.Run("by number not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, nil)

		mock.ExpectQuery(q("FROM payment_cards WHERE (number = $1) LIMIT 1")).
			WithArgs("000011112222").
			WillReturnRows(cardRows())

		_, err := s.GetByNumber(context.Background(), "000011112222")
		assert.ErrorIs(t, err, store.ErrCardNotFound)
	})

	t.Run("by user", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, nil)

		mock.ExpectQuery(q("FROM payment_cards WHERE (user_id = $1) ORDER BY id")).
			WithArgs(int64(7)).
			WillReturnRows(addCard(addCard(cardRows(), 1, "111122223333", true, 7), 2, "444455556666", true, 7))

		cards, err := s.FindByUserID(context.Background(), 7)
		require.NoError(t, err)
		assert.Len(t, cards, 2)
	})

	t.Run("by user with no cards", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := NewPostgresCardStore(db, nil)

		mock.ExpectQuery(q("FROM payment_cards WHERE (user_id = $1)")).WillReturnRows(cardRows())

		cards, err := s.FindByUserID(context.Background(), 7)
		require.NoError(t, err)
		assert.NotNil(t, cards)
		assert.Empty(t, cards)
	})
}

func TestPostgresCardStore_Delete(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewPostgresCardStore(db, nil)

	mock.ExpectExec(q("DELETE FROM payment_cards WHERE id = $1")).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Delete(context.Background(), 11), store.ErrCardNotFound)
}

func TestPostgresCardStore_FindPage(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewPostgresCardStore(db, nil)

	active := true
	after := civil.Date{Year: 2029, Month: time.June, Day: 30}
	pred := store.CardFilter{Active: &active, ExpiresAfter: &after}.Predicate()

	mock.ExpectQuery(q("SELECT COUNT(*) FROM payment_cards WHERE (active = $1 AND expiration_date > $2)")).
		WithArgs(true, time.Date(2029, time.June, 30, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(q(`FROM payment_cards WHERE (active = $1 AND expiration_date > $2) ORDER BY "id" ASC LIMIT 20 OFFSET 0`)).
		WithArgs(true, sqlmock.AnyArg()).
		WillReturnRows(addCard(cardRows(), 1, "111122223333", true, 7))

	page, err := s.FindPage(context.Background(), pred, domain.NewPageRequest(0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, 1, page.TotalPages())
	require.Len(t, page.Content, 1)
	assert.True(t, page.Content[0].Active)
}
