package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/civil"
)

// Card number and holder limits.
const (
	MinCardNumberLength = 12
	MaxCardNumberLength = 64
	MaxHolderLength     = 128
)

// Card is a payment card linked to exactly one User. The holder is derived
// from the owner's name when the card is issued and is not re-derived later.
type Card struct {
	ID             int64      `json:"id"`
	Number         string     `json:"number"`
	Holder         string     `json:"holder"`
	ExpirationDate civil.Date `json:"expiration_date"`
	Active         bool       `json:"active"`
	UserID         int64      `json:"user_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewCard issues an active card to owner. The holder is taken from the
// owner's full name at this moment.
// Returns an error if validation fails.
func NewCard(owner *User, number string, expirationDate civil.Date) (*Card, error) {
	if owner == nil || owner.ID <= 0 {
		return nil, NewValidationError("userId", "is required", ErrInvalidID)
	}

	now := time.Now().UTC()
	card := &Card{
		Number:         number,
		Holder:         owner.FullName(),
		ExpirationDate: expirationDate,
		Active:         true,
		UserID:         owner.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.UserID <= 0 {
		return NewValidationError("userId", "is required", ErrInvalidID)
	}

	n := utf8.RuneCountInString(c.Number)
	if strings.TrimSpace(c.Number) == "" {
		return NewValidationError("number", "is required", ErrValidation)
	}
	if n < MinCardNumberLength || n > MaxCardNumberLength {
		return NewValidationError("number", "length must be between 12 and 64 characters", ErrValidation)
	}

	if strings.TrimSpace(c.Holder) == "" {
		return NewValidationError("holder", "is required", ErrValidation)
	}
	if utf8.RuneCountInString(c.Holder) > MaxHolderLength {
		return NewValidationError("holder", "must not exceed 128 characters", ErrValidation)
	}

	if !c.ExpirationDate.IsValid() {
		return NewValidationError("expirationDate", "is required", ErrValidation)
	}

	return nil
}

// SetActive records a status change and bumps UpdatedAt.
func (c *Card) SetActive(active bool) {
	c.Active = active
	c.UpdatedAt = time.Now().UTC()
}
