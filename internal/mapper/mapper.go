// Package mapper converts between domain entities and transfer types.
// Every function is pure: it never touches a store or a cache.
package mapper

import (
	"time"

	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/dto"
)

// ToUser builds an unsaved, active user with no cards from a create draft.
func ToUser(in dto.UserCreate) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		Name:      in.Name,
		Surname:   in.Surname,
		BirthDate: in.BirthDate,
		Email:     in.Email,
		Active:    true,
		Cards:     []domain.Card{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ToUserCreate rebuilds the create draft a user was made from.
func ToUserCreate(u *domain.User) dto.UserCreate {
	return dto.UserCreate{
		Name:      u.Name,
		Surname:   u.Surname,
		BirthDate: u.BirthDate,
		Email:     u.Email,
	}
}

// ToUserResponse converts a user and its cards to the client view.
func ToUserResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Surname:      u.Surname,
		BirthDate:    u.BirthDate,
		Email:        u.Email,
		Active:       u.Active,
		PaymentCards: ToCardResponses(u.Cards),
	}
}

// ApplyUserUpdate copies the present fields of in onto u. The id and the card
// collection are never touched.
func ApplyUserUpdate(u *domain.User, in dto.UserUpdate) {
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Surname != nil {
		u.Surname = *in.Surname
	}
	if in.BirthDate != nil {
		u.BirthDate = *in.BirthDate
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	u.UpdatedAt = time.Now().UTC()
}

// ToCard builds an unsaved, active card for owner from a create draft. The
// holder is the owner's full name.
func ToCard(in dto.CardCreate, owner *domain.User) *domain.Card {
	now := time.Now().UTC()
	return &domain.Card{
		Number:         in.Number,
		Holder:         owner.FullName(),
		ExpirationDate: in.ExpirationDate,
		Active:         true,
		UserID:         owner.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ToCardCreate rebuilds the create draft a card was made from.
func ToCardCreate(c *domain.Card) dto.CardCreate {
	userID := c.UserID
	return dto.CardCreate{
		Number:         c.Number,
		ExpirationDate: c.ExpirationDate,
		UserID:         &userID,
	}
}

// ToCardResponse converts a card to the client view.
func ToCardResponse(c *domain.Card) dto.CardResponse {
	return dto.CardResponse{
		ID:             c.ID,
		Number:         c.Number,
		Holder:         c.Holder,
		ExpirationDate: c.ExpirationDate,
		Active:         c.Active,
		UserID:         c.UserID,
	}
}

// ToCardResponses converts a card list; a nil list becomes an empty one.
func ToCardResponses(cards []domain.Card) []dto.CardResponse {
	out := make([]dto.CardResponse, 0, len(cards))
	for i := range cards {
		out = append(out, ToCardResponse(&cards[i]))
	}
	return out
}

// ApplyCardUpdate copies the present fields of in onto c. The owner and the
// holder are never touched.
func ApplyCardUpdate(c *domain.Card, in dto.CardUpdate) {
	if in.Number != nil {
		c.Number = *in.Number
	}
	if in.ExpirationDate != nil {
		c.ExpirationDate = *in.ExpirationDate
	}
	c.UpdatedAt = time.Now().UTC()
}

// ToPageResponse converts a page of entities with fn.
func ToPageResponse[E, D any](p domain.Page[E], fn func(*E) D) dto.PageResponse[D] {
	content := make([]D, 0, len(p.Content))
	for i := range p.Content {
		content = append(content, fn(&p.Content[i]))
	}
	return dto.PageResponse[D]{
		Content:       content,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
		Number:        p.Number,
		Size:          p.Size,
	}
}
