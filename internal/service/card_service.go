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

const entityCard = "card"

// CardService provides payment card operations
type CardService interface {
	// Create issues a card to an existing user. The holder is the owner's
	// full name at this moment.
	// Returns store.ErrCardNumberExists, store.ErrUserNotFound or
	// store.ErrCardLimitExceeded.
	Create(ctx context.Context, in dto.CardCreate) (*dto.CardResponse, error)

	// Update applies the present fields of in to card id. The owner and the
	// holder are never changed.
	// Returns ErrIDMismatch if in.ID differs from id.
	Update(ctx context.Context, id int64, in dto.CardUpdate) (*dto.CardResponse, error)

	// Delete removes a card.
	Delete(ctx context.Context, id int64) error

	// ChangeStatus activates or deactivates a card.
	// Returns ErrStatusUnchanged if the card already has that status.
	ChangeStatus(ctx context.Context, id int64, active bool) (*dto.CardResponse, error)

	// FindByID loads a card from the store, bypassing the cache.
	FindByID(ctx context.Context, id int64) (*domain.Card, error)

	// FindDtoByID returns the cached view of a card, loading it on a miss.
	FindDtoByID(ctx context.Context, id int64) (*dto.CardResponse, error)

	// FindAllByUserID returns the cached card list of a user, loading it on
	// a miss. An unknown user yields an empty list.
	FindAllByUserID(ctx context.Context, userID int64) ([]dto.CardResponse, error)

	// FindAll returns one page of the cards matching filter. Never cached.
	FindAll(ctx context.Context, filter store.CardFilter, page domain.PageRequest) (*dto.PageResponse[dto.CardResponse], error)
}

type cardServiceImpl struct {
	cards    store.CardStore
	users    UserFinder
	cache    *entryCache
	maxCards int
	logger   *slog.Logger
}

var _ CardService = (*cardServiceImpl)(nil)

// NewCardService creates a new CardService. maxCards caps the cards one user
// may hold; zero or less means no cap.
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	cards store.CardStore,
	users UserFinder,
	c cache.Cache,
	maxCards int,
	logger *slog.Logger,
) (CardService, error) {
	if cards == nil {
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if c == nil {
		return nil, domain.NewValidationError("cache", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cards:    cards,
		users:    users,
		cache:    newEntryCache(c),
		maxCards: maxCards,
		logger:   logger.With(slog.String("component", "card_service")),
	}, nil
}

// Create implements CardService.Create
func (s *cardServiceImpl) Create(ctx context.Context, in dto.CardCreate) (*dto.CardResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.ensureNumberFree(ctx, "create", in.Number); err != nil {
		return nil, err
	}

	var userID int64
	if in.UserID != nil {
		userID = *in.UserID
	}
	owner, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.maxCards > 0 && owner.CardCount() >= s.maxCards {
		return nil, s.limitError(userID, store.ErrCardLimitExceeded)
	}

	card := mapper.ToCard(in, owner)
	if err := card.Validate(); err != nil {
		return nil, NewServiceError(entityCard, "create", "invalid card", err)
	}

	// The store repeats the uniqueness and limit checks under a row lock.
	if err := s.cards.Create(ctx, card, s.maxCards); err != nil {
		switch {
		case errors.Is(err, store.ErrCardLimitExceeded):
			return nil, s.limitError(userID, err)
		case errors.Is(err, store.ErrUserNotFound):
			return nil, NewServiceError(entityCard, "create",
				fmt.Sprintf("User with id=%d not found", userID), err)
		}
		return nil, s.storeFailure(log, "create", card.ID, in.Number, err)
	}

	resp := mapper.ToCardResponse(card)
	s.cache.put(ctx, log, cache.RegionCard, card.ID, resp)
	s.cache.evictAfterWrite(ctx, log, cache.RegionUserCards, userID)

	log.Info("card created",
		slog.Int64("card_id", card.ID),
		slog.Int64("user_id", userID))
	return &resp, nil
}

// Update implements CardService.Update
func (s *cardServiceImpl) Update(ctx context.Context, id int64, in dto.CardUpdate) (*dto.CardResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if in.ID == nil || *in.ID != id {
		return nil, NewServiceError(entityCard, "update",
			fmt.Sprintf("id in body does not match id=%d", id), ErrIDMismatch)
	}

	card, err := s.load(ctx, log, "update", id)
	if err != nil {
		return nil, err
	}

	if in.Number != nil && *in.Number != card.Number {
		if err := s.ensureNumberFree(ctx, "update", *in.Number); err != nil {
			return nil, err
		}
	}

	mapper.ApplyCardUpdate(card, in)
	if err := card.Validate(); err != nil {
		return nil, NewServiceError(entityCard, "update", "invalid card", err)
	}

	if err := s.cards.Update(ctx, card); err != nil {
		return nil, s.storeFailure(log, "update", id, card.Number, err)
	}

	resp := mapper.ToCardResponse(card)
	s.cache.put(ctx, log, cache.RegionCard, id, resp)
	s.cache.evictAfterWrite(ctx, log, cache.RegionUserCards, card.UserID)

	log.Info("card updated", slog.Int64("card_id", id))
	return &resp, nil
}

// Delete implements CardService.Delete
// The owner id is taken from the card before it is removed.
func (s *cardServiceImpl) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.load(ctx, log, "delete", id)
	if err != nil {
		return err
	}
	ownerID := card.UserID

	if err := s.cache.evict(ctx, cache.RegionCard, id); err != nil {
		return NewServiceError(entityCard, "delete", "failed to delete card", err)
	}
	if err := s.cache.evict(ctx, cache.RegionUserCards, ownerID); err != nil {
		return NewServiceError(entityCard, "delete", "failed to delete card", err)
	}

	if err := s.cards.Delete(ctx, id); err != nil {
		return s.storeFailure(log, "delete", id, "", err)
	}

	log.Info("card deleted",
		slog.Int64("card_id", id),
		slog.Int64("user_id", ownerID))
	return nil
}

// ChangeStatus implements CardService.ChangeStatus
func (s *cardServiceImpl) ChangeStatus(ctx context.Context, id int64, active bool) (*dto.CardResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.load(ctx, log, "change status", id)
	if err != nil {
		return nil, err
	}

	if card.Active == active {
		return nil, NewServiceError(entityCard, "change status",
			fmt.Sprintf("Card with id=%d already has active=%t", id, active), ErrStatusUnchanged)
	}

	card.SetActive(active)
	if err := s.cards.Update(ctx, card); err != nil {
		return nil, s.storeFailure(log, "change status", id, "", err)
	}

	resp := mapper.ToCardResponse(card)
	s.cache.put(ctx, log, cache.RegionCard, id, resp)
	s.cache.evictAfterWrite(ctx, log, cache.RegionUserCards, card.UserID)

	log.Info("card status changed",
		slog.Int64("card_id", id),
		slog.Bool("active", active))
	return &resp, nil
}

// FindByID implements CardService.FindByID
func (s *cardServiceImpl) FindByID(ctx context.Context, id int64) (*domain.Card, error) {
	return s.load(ctx, logger.FromContextOrDefault(ctx, s.logger), "find", id)
}

// FindDtoByID implements CardService.FindDtoByID
func (s *cardServiceImpl) FindDtoByID(ctx context.Context, id int64) (*dto.CardResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	resp, err := readThrough(ctx, s.cache, log, cache.RegionCard, id,
		func(ctx context.Context) (dto.CardResponse, error) {
			card, err := s.FindByID(ctx, id)
			if err != nil {
				return dto.CardResponse{}, err
			}
			return mapper.ToCardResponse(card), nil
		})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindAllByUserID implements CardService.FindAllByUserID
func (s *cardServiceImpl) FindAllByUserID(ctx context.Context, userID int64) ([]dto.CardResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return readThrough(ctx, s.cache, log, cache.RegionUserCards, userID,
		func(ctx context.Context) ([]dto.CardResponse, error) {
			cards, err := s.cards.FindByUserID(ctx, userID)
			if err != nil {
				log.Error("failed to list cards of user",
					slog.Int64("user_id", userID),
					slog.String("error", redact.Error(err)))
				return nil, NewServiceError(entityCard, "list", "failed to list cards", err)
			}
			return mapper.ToCardResponses(cards), nil
		})
}

// FindAll implements CardService.FindAll
func (s *cardServiceImpl) FindAll(
	ctx context.Context,
	filter store.CardFilter,
	page domain.PageRequest,
) (*dto.PageResponse[dto.CardResponse], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.cards.FindPage(ctx, filter.Predicate(), page)
	if err != nil {
		if errors.Is(err, store.ErrInvalidSort) {
			return nil, NewServiceError(entityCard, "list", err.Error(), err)
		}
		log.Error("failed to list cards", slog.String("error", redact.Error(err)))
		return nil, NewServiceError(entityCard, "list", "failed to list cards", err)
	}

	resp := mapper.ToPageResponse(result, mapper.ToCardResponse)
	return &resp, nil
}

func (s *cardServiceImpl) load(ctx context.Context, log *slog.Logger, op string, id int64) (*domain.Card, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeFailure(log, op, id, "", err)
	}
	return card, nil
}

// ensureNumberFree fails with store.ErrCardNumberExists when number is
// already issued.
func (s *cardServiceImpl) ensureNumberFree(ctx context.Context, op, number string) error {
	_, err := s.cards.GetByNumber(ctx, number)
	switch {
	case err == nil:
		return NewServiceError(entityCard, op,
			fmt.Sprintf("Card with number=%s already exists", number), store.ErrCardNumberExists)
	case errors.Is(err, store.ErrCardNotFound):
		return nil
	default:
		return NewServiceError(entityCard, op, "failed to check card number", err)
	}
}

func (s *cardServiceImpl) limitError(userID int64, err error) error {
	return NewServiceError(entityCard, "create",
		fmt.Sprintf("User with id=%d already has the maximum of %d cards", userID, s.maxCards), err)
}

// storeFailure wraps a store error with the message clients will see.
func (s *cardServiceImpl) storeFailure(log *slog.Logger, op string, id int64, number string, err error) error {
	switch {
	case errors.Is(err, store.ErrCardNotFound):
		log.Debug("card not found", slog.Int64("card_id", id))
		return NewServiceError(entityCard, op, fmt.Sprintf("Card with id=%d not found", id), err)
	case errors.Is(err, store.ErrCardNumberExists):
		return NewServiceError(entityCard, op, fmt.Sprintf("Card with number=%s already exists", number), err)
	case errors.Is(err, store.ErrInvalidEntity):
		return NewServiceError(entityCard, op, "invalid card", err)
	default:
		log.Error("card store operation failed",
			slog.String("operation", op),
			slog.Int64("card_id", id),
			slog.String("error", redact.Error(err)))
		return NewServiceError(entityCard, op, fmt.Sprintf("failed to %s card", op), err)
	}
}
