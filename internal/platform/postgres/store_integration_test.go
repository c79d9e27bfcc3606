//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/platform/postgres"
	"github.com/phrazzld/cardholder-api/internal/store"
	"github.com/phrazzld/cardholder-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUser(t *testing.T, s *postgres.PostgresUserStore, email string) *domain.User {
	t.Helper()
	u, err := domain.NewUser("Ada", "Lovelace", civil.Date{Year: 1990, Month: time.May, Day: 17}, email)
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), u))
	return u
}

func mustCard(t *testing.T, s *postgres.PostgresCardStore, owner *domain.User, number string) *domain.Card {
	t.Helper()
	c, err := domain.NewCard(owner, number, civil.Date{Year: 2031, Month: time.March, Day: 1})
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), c, 5))
	return c
}

func TestIntegration_ActiveFilterCountsOnlyMatches(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	users := postgres.NewPostgresUserStore(db, nil)
	cards := postgres.NewPostgresCardStore(db, nil)
	ctx := context.Background()

	owner := mustUser(t, users, "owner@example.com")
	mustCard(t, cards, owner, "111122223333")
	inactive := mustCard(t, cards, owner, "444455556666")
	inactive.SetActive(false)
	require.NoError(t, cards.Update(ctx, inactive))

	active := true
	page, err := cards.FindPage(ctx, store.CardFilter{Active: &active}.Predicate(), domain.NewPageRequest(0, 20))
	require.NoError(t, err)

	assert.Equal(t, int64(1), page.TotalElements)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "111122223333", page.Content[0].Number)
}

func TestIntegration_UserLifecycle(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	users := postgres.NewPostgresUserStore(db, nil)
	cards := postgres.NewPostgresCardStore(db, nil)
	ctx := context.Background()

	u := mustUser(t, users, "ada@example.com")
	c := mustCard(t, cards, u, "999988887777")

	got, err := users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, got.Cards, 1)
	assert.Equal(t, "Ada Lovelace", got.Cards[0].Holder)

	_, err = users.GetByEmail(ctx, "ADA@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound, "email lookup is case-sensitive")

	dup, err := domain.NewUser("Other", "Person", civil.Date{Year: 1980, Month: 1, Day: 1}, "ada@example.com")
	require.NoError(t, err)
	assert.ErrorIs(t, users.Create(ctx, dup), store.ErrEmailExists)

	require.NoError(t, users.Delete(ctx, u.ID))
	_, err = cards.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, store.ErrCardNotFound, "cards are removed with their owner")
}

func TestIntegration_CardLimitHoldsUnderConcurrency(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	users := postgres.NewPostgresUserStore(db, nil)
	cards := postgres.NewPostgresCardStore(db, nil)

	owner := mustUser(t, users, "busy@example.com")

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := domain.NewCard(owner, fmt.Sprintf("5000%08d", i), civil.Date{Year: 2031, Month: 1, Day: 1})
			if err != nil {
				errs[i] = err
				return
			}
			errs[i] = cards.Create(context.Background(), c, 5)
		}(i)
	}
	wg.Wait()

	created, limited := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case store.IsLimitExceededError(err):
			limited++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 5, created)
	assert.Equal(t, attempts-5, limited)

	owned, err := cards.FindByUserID(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 5)
}

func TestIntegration_UserFilterIsCaseInsensitive(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	users := postgres.NewPostgresUserStore(db, nil)

	mustUser(t, users, "a@example.com")
	other, err := domain.NewUser("Grace", "Hopper", civil.Date{Year: 1906, Month: 12, Day: 9}, "g@example.com")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), other))

	name := "LOVE"
	page, err := users.FindPage(context.Background(),
		store.UserFilter{Surname: &name}.Predicate(), domain.NewPageRequest(0, 20))
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Lovelace", page.Content[0].Surname)
}
