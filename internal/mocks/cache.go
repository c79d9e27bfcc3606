package mocks

import (
	"context"
	"encoding/json"

	"github.com/phrazzld/cardholder-api/internal/cache"
	"github.com/stretchr/testify/mock"
)

// Cache is a mock of cache.Cache. A Get expectation may return a value as its
// third result; it is copied into dest through JSON, the way a real cache
// decodes entries.
type Cache struct {
	mock.Mock
}

var _ cache.Cache = (*Cache)(nil)

// Get is a mock implementation of cache.Cache.Get
func (m *Cache) Get(ctx context.Context, region cache.Region, key string, dest any) (bool, error) {
	args := m.Called(ctx, region, key, dest)
	if len(args) > 2 && args.Get(2) != nil {
		data, err := json.Marshal(args.Get(2))
		if err != nil {
			return false, err
		}
		if err := json.Unmarshal(data, dest); err != nil {
			return false, err
		}
	}
	return args.Bool(0), args.Error(1)
}

// Put is a mock implementation of cache.Cache.Put
func (m *Cache) Put(ctx context.Context, region cache.Region, key string, value any) error {
	args := m.Called(ctx, region, key, value)
	return args.Error(0)
}

// Evict is a mock implementation of cache.Cache.Evict
func (m *Cache) Evict(ctx context.Context, region cache.Region, key string) error {
	args := m.Called(ctx, region, key)
	return args.Error(0)
}
