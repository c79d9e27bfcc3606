package dto

import "cloud.google.com/go/civil"

// CardCreate is the draft for issuing a card to an existing user. The holder
// is not accepted from clients; it is derived from the owner's name.
type CardCreate struct {
	Number         string     `json:"number"         validate:"required,min=12,max=64"`
	ExpirationDate civil.Date `json:"expirationDate" validate:"required,future"`
	UserID         *int64     `json:"userId"         validate:"required,gt=0"`
}

// CardUpdate is a partial update of a card. ID must match the path id; the
// owner cannot be changed.
type CardUpdate struct {
	ID             *int64      `json:"id"             validate:"required"`
	Number         *string     `json:"number"         validate:"omitnil,min=12,max=64"`
	ExpirationDate *civil.Date `json:"expirationDate" validate:"omitnil,future"`
}

// CardResponse is the client view of a card.
type CardResponse struct {
	ID             int64      `json:"id"`
	Number         string     `json:"number"`
	Holder         string     `json:"holder"`
	ExpirationDate civil.Date `json:"expirationDate"`
	Active         bool       `json:"active"`
	UserID         int64      `json:"userId"`
}
