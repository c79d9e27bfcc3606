package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cardholder-api/internal/cache"
	"github.com/phrazzld/cardholder-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// setupAppCache connects to Redis and verifies the connection.
func setupAppCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Cache.RedisAddr, err)
	}

	logger.Info("Redis connection established", "addr", cfg.Cache.RedisAddr, "db", cfg.Cache.RedisDB)
	return client, nil
}

// cachePolicy maps the configured TTLs onto the cache regions.
func cachePolicy(cfg config.CacheTTLConfig) cache.Policy {
	return cache.Policy{
		cache.RegionUser:      cfg.User,
		cache.RegionCard:      cfg.Card,
		cache.RegionUserCards: cfg.Cards,
	}
}
