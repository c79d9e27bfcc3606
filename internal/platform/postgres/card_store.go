package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/platform/logger"
	"github.com/phrazzld/cardholder-api/internal/redact"
	"github.com/phrazzld/cardholder-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// Card creation runs its own transaction, so a connection pool is required
// rather than a transaction handle.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db *sqlx.DB, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// Create implements store.CardStore.Create
// The owner row is locked FOR UPDATE before its cards are counted, which
// serializes concurrent creations for the same owner.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card, maxCards int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create", slog.String("error", redact.Error(err)))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var ownerID int64
		err := tx.QueryRowxContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, card.UserID).
			Scan(&ownerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrUserNotFound
			}
			return MapError(err)
		}

		if maxCards > 0 {
			var count int
			err = sqlx.GetContext(ctx, tx, &count,
				`SELECT COUNT(*) FROM payment_cards WHERE user_id = $1`, card.UserID)
			if err != nil {
				return MapError(err)
			}
			if count >= maxCards {
				return store.ErrCardLimitExceeded
			}
		}

		query := `
			INSERT INTO payment_cards (number, holder, expiration_date, active, user_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		err = tx.QueryRowxContext(
			ctx,
			query,
			card.Number,
			card.Holder,
			dateValue(card.ExpirationDate),
			card.Active,
			card.UserID,
			card.CreatedAt,
			card.UpdatedAt,
		).Scan(&card.ID)
		if err != nil {
			if IsUniqueViolation(err) {
				return fmt.Errorf("%w: %v", store.ErrCardNumberExists, err)
			}
			return MapError(err)
		}
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) || store.IsDuplicateError(err) || store.IsLimitExceededError(err) {
			log.Debug("card create rejected",
				slog.Int64("user_id", card.UserID),
				slog.String("reason", redact.Error(err)))
		} else {
			log.Error("failed to create card",
				slog.Int64("user_id", card.UserID),
				slog.String("error", redact.Error(err)))
		}
		return err
	}

	log.Info("card created",
		slog.Int64("card_id", card.ID),
		slog.Int64("user_id", card.UserID))
	return nil
}

// Update implements store.CardStore.Update
// The owner and holder columns are never rewritten.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.Int64("card_id", card.ID),
			slog.String("error", redact.Error(err)))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE payment_cards
		SET number = $1, expiration_date = $2, active = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		card.Number,
		dateValue(card.ExpirationDate),
		card.Active,
		card.UpdatedAt,
		card.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrCardNumberExists, err)
		}
		log.Error("failed to update card",
			slog.Int64("card_id", card.ID),
			slog.String("error", redact.Error(err)))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		log.Debug("card not found for update", slog.Int64("card_id", card.ID))
		return err
	}

	log.Info("card updated", slog.Int64("card_id", card.ID))
	return nil
}

// GetByID implements store.CardStore.GetByID
func (s *PostgresCardStore) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	logger.FromContextOrDefault(ctx, s.logger).Debug("retrieving card by ID", slog.Int64("card_id", id))
	return s.findOne(ctx, store.Predicate{store.Eq("id", id)})
}

// GetByNumber implements store.CardStore.GetByNumber
func (s *PostgresCardStore) GetByNumber(ctx context.Context, number string) (*domain.Card, error) {
	logger.FromContextOrDefault(ctx, s.logger).Debug("retrieving card by number")
	return s.findOne(ctx, store.Predicate{store.Eq("number", number)})
}

// findOne loads the single card matching pred.
func (s *PostgresCardStore) findOne(ctx context.Context, pred store.Predicate) (*domain.Card, error) {
	query, args, err := psql.Select(cardColumns...).From("payment_cards").Where(pred).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build card query: %w", err)
	}

	var row cardRow
	if err := sqlx.GetContext(ctx, s.db, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get card",
			slog.String("error", redact.Error(err)))
		return nil, notFoundAs(MapError(err), store.ErrCardNotFound)
	}

	card := row.toDomain()
	return &card, nil
}

// Delete implements store.CardStore.Delete
func (s *PostgresCardStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM payment_cards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.Int64("card_id", id),
			slog.String("error", redact.Error(err)))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		log.Debug("card not found for delete", slog.Int64("card_id", id))
		return err
	}

	log.Info("card deleted", slog.Int64("card_id", id))
	return nil
}

// FindByUserID implements store.CardStore.FindByUserID
func (s *PostgresCardStore) FindByUserID(ctx context.Context, userID int64) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Select(cardColumns...).
		From("payment_cards").
		Where(store.Predicate{store.Eq("user_id", userID)}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build card query: %w", err)
	}

	var rows []cardRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, args...); err != nil {
		log.Error("failed to list user cards",
			slog.Int64("user_id", userID),
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}

	return cardsFromRows(rows), nil
}

// FindPage implements store.CardStore.FindPage
func (s *PostgresCardStore) FindPage(
	ctx context.Context,
	pred store.Predicate,
	page domain.PageRequest,
) (domain.Page[domain.Card], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	result := domain.Page[domain.Card]{Content: []domain.Card{}, Number: page.Page, Size: page.Size}

	var rows []cardRow
	total, err := selectPage(ctx, s.db, "payment_cards", cardColumns, cardSortColumns, pred, page, &rows)
	if err != nil {
		log.Warn("failed to list cards", slog.String("error", redact.Error(err)))
		return result, err
	}

	result.TotalElements = total
	result.Content = cardsFromRows(rows)

	log.Debug("listed cards",
		slog.Int("page", page.Page),
		slog.Int("returned", len(result.Content)),
		slog.Int64("total", total))
	return result, nil
}
