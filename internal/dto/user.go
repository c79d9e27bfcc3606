package dto

import "cloud.google.com/go/civil"

// UserCreate is the draft for registering a user.
type UserCreate struct {
	Name      string     `json:"name"      validate:"required,max=64"`
	Surname   string     `json:"surname"   validate:"required,max=64"`
	BirthDate civil.Date `json:"birthDate" validate:"required,past"`
	Email     string     `json:"email"     validate:"required,email,max=255"`
}

// UserUpdate is a partial update of a user. ID must match the path id; every
// other nil field is left unchanged.
type UserUpdate struct {
	ID        *int64      `json:"id"        validate:"required"`
	Name      *string     `json:"name"      validate:"omitnil,min=1,max=64"`
	Surname   *string     `json:"surname"   validate:"omitnil,min=1,max=64"`
	BirthDate *civil.Date `json:"birthDate" validate:"omitnil,past"`
	Email     *string     `json:"email"     validate:"omitnil,email,max=255"`
}

// UserResponse is the client view of a user, including its cards.
type UserResponse struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Surname      string         `json:"surname"`
	BirthDate    civil.Date     `json:"birthDate"`
	Email        string         `json:"email"`
	Active       bool           `json:"active"`
	PaymentCards []CardResponse `json:"paymentCards"`
}
