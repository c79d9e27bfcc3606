package store

import (
	"context"

	"github.com/phrazzld/cardholder-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and sets its ID and timestamps.
	// Returns ErrEmailExists if the email is already taken.
	// Returns ErrInvalidEntity wrapping the validation error if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// Update persists the mutable fields of an existing user. The user's
	// cards are not touched.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user together with the cards it owns.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by exact, case-sensitive email match.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Delete removes a user and, by cascade, its cards.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// FindPage returns the users matching pred, paged and sorted per page,
	// with their cards loaded.
	// Returns ErrInvalidSort if page sorts by an unknown field.
	FindPage(ctx context.Context, pred Predicate, page domain.PageRequest) (domain.Page[domain.User], error)
}
