package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/civil"
)

// Field length limits shared by domain validation and request validation.
const (
	MaxNameLength  = 64
	MaxEmailLength = 255
)

// User is an account holder. A user owns zero or more payment cards; deleting
// the user deletes the cards with it.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	BirthDate civil.Date `json:"birth_date"`
	Email     string     `json:"email"`
	Active    bool       `json:"active"`
	Cards     []Card     `json:"cards"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewUser creates an active User with no cards. The ID is left unset; it is
// assigned by the store on insert.
// Returns an error if validation fails.
func NewUser(name, surname string, birthDate civil.Date, email string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Name:      name,
		Surname:   surname,
		BirthDate: birthDate,
		Email:     email,
		Active:    true,
		Cards:     []Card{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns a *ValidationError naming the first offending field.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return NewValidationError("name", "is required", ErrValidation)
	}
	if utf8.RuneCountInString(u.Name) > MaxNameLength {
		return NewValidationError("name", "must not exceed 64 characters", ErrValidation)
	}

	if strings.TrimSpace(u.Surname) == "" {
		return NewValidationError("surname", "is required", ErrValidation)
	}
	if utf8.RuneCountInString(u.Surname) > MaxNameLength {
		return NewValidationError("surname", "must not exceed 64 characters", ErrValidation)
	}

	if !u.BirthDate.IsValid() {
		return NewValidationError("birthDate", "is required", ErrValidation)
	}

	if u.Email == "" {
		return NewValidationError("email", "is required", ErrValidation)
	}
	if utf8.RuneCountInString(u.Email) > MaxEmailLength {
		return NewValidationError("email", "must not exceed 255 characters", ErrValidation)
	}
	if !strings.Contains(u.Email, "@") {
		return NewValidationError("email", "must be valid", ErrInvalidEmail)
	}

	return nil
}

// FullName returns the name printed on cards issued to this user.
func (u *User) FullName() string {
	return u.Name + " " + u.Surname
}

// CardCount returns the number of cards currently owned by the user.
func (u *User) CardCount() int {
	return len(u.Cards)
}

// SetActive records a status change and bumps UpdatedAt.
func (u *User) SetActive(active bool) {
	u.Active = active
	u.UpdatedAt = time.Now().UTC()
}
