// Package cache provides the keyed, region-scoped cache that services use to
// serve repeated reads of single users, single cards and per-user card lists
// without hitting the store.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"
)

// Region names a logical partition of the cache with its own expiry policy.
type Region string

// Cache regions.
const (
	// RegionUser holds one user response per user id.
	RegionUser Region = "user"
	// RegionCard holds one card response per card id.
	RegionCard Region = "card"
	// RegionUserCards holds the card list of one user, keyed by user id.
	RegionUserCards Region = "cards"
)

// ErrUnknownRegion is returned when an entry is written to a region without
// an expiry policy.
var ErrUnknownRegion = errors.New("unknown cache region")

// Cache stores JSON-serializable values by region and key.
type Cache interface {
	// Get loads the entry for key into dest. It reports false, with a nil
	// error, when the entry is absent or expired.
	Get(ctx context.Context, region Region, key string, dest any) (bool, error)

	// Put stores value under key with the region's time-to-live.
	Put(ctx context.Context, region Region, key string, value any) error

	// Evict removes the entry for key. Evicting an absent entry is not an error.
	Evict(ctx context.Context, region Region, key string) error
}

// Key renders an entity id as a cache key.
func Key(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Policy maps each region to the lifetime of its entries.
type Policy map[Region]time.Duration

// TTL returns the lifetime configured for region.
func (p Policy) TTL(region Region) (time.Duration, error) {
	ttl, ok := p[region]
	if !ok || ttl <= 0 {
		return 0, ErrUnknownRegion
	}
	return ttl, nil
}
