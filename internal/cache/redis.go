package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/cardholder-api/internal/platform/logger"
	"github.com/redis/go-redis/v9"
)

// Client is the subset of the go-redis client used by RedisCache.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisCache implements Cache on Redis. Entries are stored as JSON under
// "{region}::{key}" and expire after the region's TTL.
type RedisCache struct {
	client Client
	policy Policy
	logger *slog.Logger
}

// NewRedisCache creates a RedisCache using client and the per-region policy.
// If logger is nil, a default logger will be used.
func NewRedisCache(client Client, policy Policy, logger *slog.Logger) (*RedisCache, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if len(policy) == 0 {
		return nil, errors.New("cache policy cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RedisCache{
		client: client,
		policy: policy,
		logger: logger.With(slog.String("component", "redis_cache")),
	}, nil
}

var _ Cache = (*RedisCache)(nil)

func redisKey(region Region, key string) string {
	return string(region) + "::" + key
}

// Get implements Cache.Get
func (c *RedisCache) Get(ctx context.Context, region Region, key string, dest any) (bool, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)
	rk := redisKey(region, key)

	raw, err := c.client.Get(ctx, rk).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			log.Debug("cache miss", slog.String("key", rk))
			return false, nil
		}
		log.Error("cache read failed", slog.String("key", rk), slog.String("error", err.Error()))
		return false, fmt.Errorf("cache get %s: %w", rk, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Error("cache entry is not valid JSON", slog.String("key", rk), slog.String("error", err.Error()))
		return false, fmt.Errorf("cache decode %s: %w", rk, err)
	}

	log.Debug("cache hit", slog.String("key", rk))
	return true, nil
}

// Put implements Cache.Put
func (c *RedisCache) Put(ctx context.Context, region Region, key string, value any) error {
	log := logger.FromContextOrDefault(ctx, c.logger)
	rk := redisKey(region, key)

	ttl, err := c.policy.TTL(region)
	if err != nil {
		return fmt.Errorf("cache put %s: %w", rk, err)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", rk, err)
	}

	if err := c.client.Set(ctx, rk, raw, ttl).Err(); err != nil {
		log.Error("cache write failed", slog.String("key", rk), slog.String("error", err.Error()))
		return fmt.Errorf("cache put %s: %w", rk, err)
	}

	log.Debug("cache put", slog.String("key", rk), slog.Duration("ttl", ttl))
	return nil
}

// Evict implements Cache.Evict
func (c *RedisCache) Evict(ctx context.Context, region Region, key string) error {
	log := logger.FromContextOrDefault(ctx, c.logger)
	rk := redisKey(region, key)

	if err := c.client.Del(ctx, rk).Err(); err != nil {
		log.Error("cache evict failed", slog.String("key", rk), slog.String("error", err.Error()))
		return fmt.Errorf("cache evict %s: %w", rk, err)
	}

	log.Debug("cache evict", slog.String("key", rk))
	return nil
}
