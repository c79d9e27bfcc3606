package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/cardholder-api/internal/cache"
	"github.com/phrazzld/cardholder-api/internal/redact"
	"golang.org/x/sync/singleflight"
)

// entryCache wraps a cache.Cache with the service ordering rules. Reads that
// miss for the same entry at the same time share one store load.
type entryCache struct {
	cache cache.Cache
	group singleflight.Group
}

func newEntryCache(c cache.Cache) *entryCache {
	return &entryCache{cache: c}
}

// readThrough serves the entry for id in region, calling load and populating
// the entry on a miss. A failing cache read is logged and treated as a miss.
func readThrough[T any](
	ctx context.Context,
	c *entryCache,
	log *slog.Logger,
	region cache.Region,
	id int64,
	load func(context.Context) (T, error),
) (T, error) {
	key := cache.Key(id)

	var hit T
	found, err := c.cache.Get(ctx, region, key, &hit)
	switch {
	case err != nil:
		log.Warn("cache read failed, loading from store",
			slog.String("region", string(region)),
			slog.String("key", key),
			slog.String("error", redact.Error(err)))
	case found:
		log.Debug("cache hit",
			slog.String("region", string(region)),
			slog.String("key", key))
		return hit, nil
	}

	v, err, shared := c.group.Do(string(region)+"::"+key, func() (any, error) {
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.put(ctx, log, region, id, val)
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	log.Debug("cache miss served from store",
		slog.String("region", string(region)),
		slog.String("key", key),
		slog.Bool("shared", shared))

	return v.(T), nil
}

// put stores value after a successful store write. The write has already
// happened, so a failure is logged and left to the region TTL.
func (c *entryCache) put(ctx context.Context, log *slog.Logger, region cache.Region, id int64, value any) {
	if err := c.cache.Put(ctx, region, cache.Key(id), value); err != nil {
		log.Warn("failed to populate cache entry",
			slog.String("region", string(region)),
			slog.Int64("id", id),
			slog.String("error", redact.Error(err)))
	}
}

// evict removes an entry ahead of a store write. The caller aborts on error.
func (c *entryCache) evict(ctx context.Context, region cache.Region, id int64) error {
	return c.cache.Evict(ctx, region, cache.Key(id))
}

// evictAfterWrite removes an entry once the store write has succeeded.
func (c *entryCache) evictAfterWrite(ctx context.Context, log *slog.Logger, region cache.Region, id int64) {
	if err := c.evict(ctx, region, id); err != nil {
		log.Warn("failed to evict cache entry",
			slog.String("region", string(region)),
			slog.Int64("id", id),
			slog.String("error", redact.Error(err)))
	}
}
