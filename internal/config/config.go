package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache" validate:"required"`
	Card     CardConfig     `mapstructure:"card" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// CacheConfig contains the Redis connection and the per-region expiry policy.
type CacheConfig struct {
	RedisAddr     string         `mapstructure:"redis_addr" validate:"required,hostname_port"`
	RedisPassword string         `mapstructure:"redis_password"`
	RedisDB       int            `mapstructure:"redis_db" validate:"gte=0"`
	TTL           CacheTTLConfig `mapstructure:"ttl" validate:"required"`
}

// CacheTTLConfig holds the time-to-live of each cache region.
type CacheTTLConfig struct {
	User  time.Duration `mapstructure:"user" validate:"gt=0"`
	Card  time.Duration `mapstructure:"card" validate:"gt=0"`
	Cards time.Duration `mapstructure:"cards" validate:"gt=0"`
}

// CardConfig contains card issuing rules.
type CardConfig struct {
	MaxLimit int `mapstructure:"max_limit" validate:"required,gt=0"`
}
