package service_test

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alicebob/miniredis/v2"
	"github.com/phrazzld/cardholder-api/internal/cache"
	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newRedisCache returns a cache backed by an in-memory Redis server.
func newRedisCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c, err := cache.NewRedisCache(client, cache.Policy{
		cache.RegionUser:      10 * time.Minute,
		cache.RegionCard:      10 * time.Minute,
		cache.RegionUserCards: 5 * time.Minute,
	}, testLogger())
	require.NoError(t, err)
	return c, mr
}

// recorder collects the order in which mocked calls happen.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(name string) func(mock.Arguments) {
	return func(mock.Arguments) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, name)
	}
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func ptr[T any](v T) *T { return &v }

func testUser(id int64, cards ...domain.Card) *domain.User {
	if cards == nil {
		cards = []domain.Card{}
	}
	return &domain.User{
		ID:        id,
		Name:      "Ada",
		Surname:   "Lovelace",
		BirthDate: civil.Date{Year: 1990, Month: time.May, Day: 17},
		Email:     "ada@example.com",
		Active:    true,
		Cards:     cards,
	}
}

func testCard(id, userID int64) domain.Card {
	return domain.Card{
		ID:             id,
		Number:         fmt.Sprintf("4000000000%06d", id),
		Holder:         "Ada Lovelace",
		ExpirationDate: civil.Date{Year: 2031, Month: time.March, Day: 1},
		Active:         true,
		UserID:         userID,
	}
}

func nextYear() civil.Date {
	return civil.DateOf(time.Now().AddDate(1, 0, 0))
}
