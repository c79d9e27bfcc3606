package store

import (
	"context"

	"github.com/phrazzld/cardholder-api/internal/domain"
)

// CardStore defines the interface for payment card persistence.
type CardStore interface {
	// Create saves a new card for card.UserID and sets its ID and timestamps.
	// The owner row is locked while its cards are counted, so concurrent
	// creations cannot push the owner past maxCards.
	// Returns ErrUserNotFound if the owner does not exist.
	// Returns ErrCardLimitExceeded if the owner already holds maxCards cards.
	// Returns ErrCardNumberExists if the number is already taken.
	Create(ctx context.Context, card *domain.Card, maxCards int) error

	// Update persists the mutable fields of an existing card. The owner is
	// never reassigned.
	// Returns ErrCardNotFound if the card does not exist.
	// Returns ErrCardNumberExists if updating to a number that already exists.
	Update(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Card, error)

	// GetByNumber retrieves a card by exact number match.
	// Returns ErrCardNotFound if the card does not exist.
	GetByNumber(ctx context.Context, number string) (*domain.Card, error)

	// Delete removes a card.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id int64) error

	// FindByUserID returns every card owned by userID, ordered by ID.
	// An unknown user yields an empty slice.
	FindByUserID(ctx context.Context, userID int64) ([]domain.Card, error)

	// FindPage returns the cards matching pred, paged and sorted per page.
	// Returns ErrInvalidSort if page sorts by an unknown field.
	FindPage(ctx context.Context, pred Predicate, page domain.PageRequest) (domain.Page[domain.Card], error)
}
