package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/platform/logger"
	"github.com/phrazzld/cardholder-api/internal/redact"
	"github.com/phrazzld/cardholder-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create", slog.String("error", redact.Error(err)))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO users (name, surname, birth_date, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := s.db.QueryRowxContext(
		ctx,
		query,
		user.Name,
		user.Surname,
		dateValue(user.BirthDate),
		user.Email,
		user.Active,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already in use")
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}
		log.Error("failed to create user", slog.String("error", redact.Error(err)))
		return MapError(err)
	}

	if user.Cards == nil {
		user.Cards = []domain.Card{}
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	return nil
}

// Update implements store.UserStore.Update
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.Int64("user_id", user.ID),
			slog.String("error", redact.Error(err)))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE users
		SET name = $1, surname = $2, birth_date = $3, email = $4, active = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		user.Name,
		user.Surname,
		dateValue(user.BirthDate),
		user.Email,
		user.Active,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}
		log.Error("failed to update user",
			slog.Int64("user_id", user.ID),
			slog.String("error", redact.Error(err)))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		log.Debug("user not found for update", slog.Int64("user_id", user.ID))
		return err
	}

	log.Info("user updated", slog.Int64("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving user by ID", slog.Int64("user_id", id))

	return s.findOne(ctx, store.Predicate{store.Eq("id", id)})
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving user by email")

	return s.findOne(ctx, store.Predicate{store.Eq("email", email)})
}

// findOne loads the single user matching pred, with its cards.
func (s *PostgresUserStore) findOne(ctx context.Context, pred store.Predicate) (*domain.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(pred).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}

	var row userRow
	if err := sqlx.GetContext(ctx, s.db, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}

	cards, err := s.cardsFor(ctx, []int64{row.ID})
	if err != nil {
		return nil, err
	}

	user := row.toDomain(cards[row.ID])
	return &user, nil
}

// Delete implements store.UserStore.Delete
// Cards owned by the user are removed by the ON DELETE CASCADE foreign key.
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.Int64("user_id", id),
			slog.String("error", redact.Error(err)))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		log.Debug("user not found for delete", slog.Int64("user_id", id))
		return err
	}

	log.Info("user deleted", slog.Int64("user_id", id))
	return nil
}

// FindPage implements store.UserStore.FindPage
func (s *PostgresUserStore) FindPage(
	ctx context.Context,
	pred store.Predicate,
	page domain.PageRequest,
) (domain.Page[domain.User], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	result := domain.Page[domain.User]{Content: []domain.User{}, Number: page.Page, Size: page.Size}

	var rows []userRow
	total, err := selectPage(ctx, s.db, "users", userColumns, userSortColumns, pred, page, &rows)
	if err != nil {
		log.Warn("failed to list users", slog.String("error", redact.Error(err)))
		return result, err
	}
	result.TotalElements = total
	if len(rows) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	cards, err := s.cardsFor(ctx, ids)
	if err != nil {
		return result, err
	}

	for _, r := range rows {
		result.Content = append(result.Content, r.toDomain(cards[r.ID]))
	}

	log.Debug("listed users",
		slog.Int("page", page.Page),
		slog.Int("returned", len(result.Content)),
		slog.Int64("total", total))
	return result, nil
}

// cardsFor loads the cards of the given users in one query, grouped by owner.
func (s *PostgresUserStore) cardsFor(ctx context.Context, userIDs []int64) (map[int64][]domain.Card, error) {
	query, args, err := psql.Select(cardColumns...).
		From("payment_cards").
		Where(sq.Eq{"user_id": userIDs}).
		OrderBy("user_id", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build card query: %w", err)
	}

	var rows []cardRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, args...); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load user cards",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}

	byUser := make(map[int64][]domain.Card, len(userIDs))
	for _, r := range rows {
		byUser[r.UserID] = append(byUser[r.UserID], r.toDomain())
	}
	return byUser, nil
}
