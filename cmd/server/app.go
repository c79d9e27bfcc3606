package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/cardholder-api/internal/cache"
	"github.com/phrazzld/cardholder-api/internal/config"
	"github.com/phrazzld/cardholder-api/internal/platform/postgres"
	"github.com/phrazzld/cardholder-api/internal/service"
	"github.com/phrazzld/cardholder-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger *slog.Logger
	db     *sqlx.DB
	redis  *redis.Client

	userStore store.UserStore
	cardStore store.CardStore
	cache     cache.Cache

	userService service.UserService
	cardService service.CardService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, database connection and
// Redis client that must be established before application initialization.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sqlx.DB,
	redisClient *redis.Client,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	var err error
	app.cache, err = cache.NewRedisCache(redisClient, cachePolicy(cfg.Cache.TTL), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)

	app.userService, err = service.NewUserService(app.userStore, app.cache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.cardService, err = service.NewCardService(
		app.cardStore,
		app.userService,
		app.cache,
		cfg.Card.MaxLimit,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	logger.Info("Application initialized successfully",
		"user_ttl", cfg.Cache.TTL.User.String(),
		"card_ttl", cfg.Cache.TTL.Card.String(),
		"cards_ttl", cfg.Cache.TTL.Cards.String())
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
