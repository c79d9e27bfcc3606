package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/cardholder-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"max_cards_per_user", cfg.Card.MaxLimit)

	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true)
	}
	if cfg.Cache.RedisPassword != "" {
		slog.Debug("Cache configuration", "redis_password_present", true)
	}

	return cfg, nil
}
