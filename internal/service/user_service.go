package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cardholder-api/internal/cache"
	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/dto"
	"github.com/phrazzld/cardholder-api/internal/mapper"
	"github.com/phrazzld/cardholder-api/internal/platform/logger"
	"github.com/phrazzld/cardholder-api/internal/redact"
	"github.com/phrazzld/cardholder-api/internal/store"
)

const entityUser = "user"

// UserFinder loads a user straight from the store, bypassing the cache.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// UserService provides user-related operations
type UserService interface {
	UserFinder

	// Create registers a new active user with no cards.
	// Returns store.ErrEmailExists if the email is taken.
	Create(ctx context.Context, in dto.UserCreate) (*dto.UserResponse, error)

	// Update applies the present fields of in to user id. The card
	// collection is never touched.
	// Returns ErrIDMismatch if in.ID differs from id.
	Update(ctx context.Context, id int64, in dto.UserUpdate) (*dto.UserResponse, error)

	// Delete removes a user and, by cascade, its cards.
	Delete(ctx context.Context, id int64) error

	// ChangeStatus activates or deactivates a user.
	// Returns ErrStatusUnchanged if the user already has that status.
	ChangeStatus(ctx context.Context, id int64, active bool) (*dto.UserResponse, error)

	// FindDtoByID returns the cached view of a user, loading it on a miss.
	FindDtoByID(ctx context.Context, id int64) (*dto.UserResponse, error)

	// FindDtoByEmail looks a user up by exact email. Never cached.
	FindDtoByEmail(ctx context.Context, email string) (*dto.UserResponse, error)

	// FindAll returns one page of the users matching filter. Never cached.
	FindAll(ctx context.Context, filter store.UserFilter, page domain.PageRequest) (*dto.PageResponse[dto.UserResponse], error)
}

type userServiceImpl struct {
	users  store.UserStore
	cache  *entryCache
	logger *slog.Logger
}

var _ UserService = (*userServiceImpl)(nil)

// NewUserService creates a new UserService
// It returns an error if any of the required dependencies are nil.
func NewUserService(users store.UserStore, c cache.Cache, logger *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if c == nil {
		return nil, domain.NewValidationError("cache", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		users:  users,
		cache:  newEntryCache(c),
		logger: logger.With(slog.String("component", "user_service")),
	}, nil
}

// Create implements UserService.Create
func (s *userServiceImpl) Create(ctx context.Context, in dto.UserCreate) (*dto.UserResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.ensureEmailFree(ctx, "create", in.Email); err != nil {
		return nil, err
	}

	user := mapper.ToUser(in)
	if err := user.Validate(); err != nil {
		return nil, NewServiceError(entityUser, "create", "invalid user", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, s.storeFailure(log, "create", user.ID, in.Email, err)
	}

	resp := mapper.ToUserResponse(user)
	s.cache.put(ctx, log, cache.RegionUser, user.ID, resp)

	log.Info("user created", slog.Int64("user_id", user.ID))
	return &resp, nil
}

// Update implements UserService.Update
func (s *userServiceImpl) Update(ctx context.Context, id int64, in dto.UserUpdate) (*dto.UserResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if in.ID == nil || *in.ID != id {
		return nil, NewServiceError(entityUser, "update",
			fmt.Sprintf("id in body does not match id=%d", id), ErrIDMismatch)
	}

	user, err := s.load(ctx, log, "update", id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		if err := s.ensureEmailFree(ctx, "update", *in.Email); err != nil {
			return nil, err
		}
	}

	mapper.ApplyUserUpdate(user, in)
	if err := user.Validate(); err != nil {
		return nil, NewServiceError(entityUser, "update", "invalid user", err)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, s.storeFailure(log, "update", id, user.Email, err)
	}

	resp := mapper.ToUserResponse(user)
	s.cache.put(ctx, log, cache.RegionUser, id, resp)

	log.Info("user updated", slog.Int64("user_id", id))
	return &resp, nil
}

// Delete implements UserService.Delete
// Every cache entry that mirrors the user or its cards is evicted before the
// row is removed.
func (s *userServiceImpl) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.load(ctx, log, "delete", id)
	if err != nil {
		return err
	}

	if err := s.cache.evict(ctx, cache.RegionUser, id); err != nil {
		return NewServiceError(entityUser, "delete", "failed to delete user", err)
	}
	if err := s.cache.evict(ctx, cache.RegionUserCards, id); err != nil {
		return NewServiceError(entityUser, "delete", "failed to delete user", err)
	}
	for _, card := range user.Cards {
		if err := s.cache.evict(ctx, cache.RegionCard, card.ID); err != nil {
			return NewServiceError(entityUser, "delete", "failed to delete user", err)
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return s.storeFailure(log, "delete", id, "", err)
	}

	log.Info("user deleted",
		slog.Int64("user_id", id),
		slog.Int("card_count", user.CardCount()))
	return nil
}

// ChangeStatus implements UserService.ChangeStatus
func (s *userServiceImpl) ChangeStatus(ctx context.Context, id int64, active bool) (*dto.UserResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.load(ctx, log, "change status", id)
	if err != nil {
		return nil, err
	}

	if user.Active == active {
		return nil, NewServiceError(entityUser, "change status",
			fmt.Sprintf("User with id=%d already has active=%t", id, active), ErrStatusUnchanged)
	}

	user.SetActive(active)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, s.storeFailure(log, "change status", id, "", err)
	}

	resp := mapper.ToUserResponse(user)
	s.cache.put(ctx, log, cache.RegionUser, id, resp)

	log.Info("user status changed",
		slog.Int64("user_id", id),
		slog.Bool("active", active))
	return &resp, nil
}

// FindByID implements UserFinder.FindByID
// It always reads the store so callers see the latest persisted state.
func (s *userServiceImpl) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.load(ctx, logger.FromContextOrDefault(ctx, s.logger), "find", id)
}

// FindDtoByID implements UserService.FindDtoByID
func (s *userServiceImpl) FindDtoByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	resp, err := readThrough(ctx, s.cache, log, cache.RegionUser, id,
		func(ctx context.Context) (dto.UserResponse, error) {
			user, err := s.FindByID(ctx, id)
			if err != nil {
				return dto.UserResponse{}, err
			}
			return mapper.ToUserResponse(user), nil
		})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindDtoByEmail implements UserService.FindDtoByEmail
func (s *userServiceImpl) FindDtoByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, NewServiceError(entityUser, "find",
				fmt.Sprintf("User with email=%s not found", email), err)
		}
		log.Error("failed to retrieve user by email", slog.String("error", redact.Error(err)))
		return nil, NewServiceError(entityUser, "find", "failed to retrieve user", err)
	}

	resp := mapper.ToUserResponse(user)
	return &resp, nil
}

// FindAll implements UserService.FindAll
func (s *userServiceImpl) FindAll(
	ctx context.Context,
	filter store.UserFilter,
	page domain.PageRequest,
) (*dto.PageResponse[dto.UserResponse], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.users.FindPage(ctx, filter.Predicate(), page)
	if err != nil {
		if errors.Is(err, store.ErrInvalidSort) {
			return nil, NewServiceError(entityUser, "list", err.Error(), err)
		}
		log.Error("failed to list users", slog.String("error", redact.Error(err)))
		return nil, NewServiceError(entityUser, "list", "failed to list users", err)
	}

	resp := mapper.ToPageResponse(result, mapper.ToUserResponse)
	return &resp, nil
}

// load reads a user from the store, translating a miss into a client message.
func (s *userServiceImpl) load(ctx context.Context, log *slog.Logger, op string, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeFailure(log, op, id, "", err)
	}
	return user, nil
}

// ensureEmailFree fails with store.ErrEmailExists when email is already used.
func (s *userServiceImpl) ensureEmailFree(ctx context.Context, op, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return NewServiceError(entityUser, op,
			fmt.Sprintf("User with email=%s already exists", email), store.ErrEmailExists)
	case errors.Is(err, store.ErrUserNotFound):
		return nil
	default:
		return NewServiceError(entityUser, op, "failed to check email", err)
	}
}

// storeFailure wraps a store error with the message clients will see.
func (s *userServiceImpl) storeFailure(log *slog.Logger, op string, id int64, email string, err error) error {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		log.Debug("user not found", slog.Int64("user_id", id))
		return NewServiceError(entityUser, op, fmt.Sprintf("User with id=%d not found", id), err)
	case errors.Is(err, store.ErrEmailExists):
		return NewServiceError(entityUser, op, fmt.Sprintf("User with email=%s already exists", email), err)
	case errors.Is(err, store.ErrInvalidEntity):
		return NewServiceError(entityUser, op, "invalid user", err)
	default:
		log.Error("user store operation failed",
			slog.String("operation", op),
			slog.Int64("user_id", id),
			slog.String("error", redact.Error(err)))
		return NewServiceError(entityUser, op, fmt.Sprintf("failed to %s user", op), err)
	}
}
