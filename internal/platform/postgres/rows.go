package postgres

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/phrazzld/cardholder-api/internal/domain"
)

var userColumns = []string{
	"id", "name", "surname", "birth_date", "email", "active", "created_at", "updated_at",
}

var cardColumns = []string{
	"id", "number", "holder", "expiration_date", "active", "user_id", "created_at", "updated_at",
}

// userRow is the scan target for the users table.
type userRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Surname   string    `db:"surname"`
	BirthDate time.Time `db:"birth_date"`
	Email     string    `db:"email"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r userRow) toDomain(cards []domain.Card) domain.User {
	if cards == nil {
		cards = []domain.Card{}
	}
	return domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Surname:   r.Surname,
		BirthDate: civil.DateOf(r.BirthDate),
		Email:     r.Email,
		Active:    r.Active,
		Cards:     cards,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// cardRow is the scan target for the payment_cards table.
type cardRow struct {
	ID             int64     `db:"id"`
	Number         string    `db:"number"`
	Holder         string    `db:"holder"`
	ExpirationDate time.Time `db:"expiration_date"`
	Active         bool      `db:"active"`
	UserID         int64     `db:"user_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r cardRow) toDomain() domain.Card {
	return domain.Card{
		ID:             r.ID,
		Number:         r.Number,
		Holder:         r.Holder,
		ExpirationDate: civil.DateOf(r.ExpirationDate),
		Active:         r.Active,
		UserID:         r.UserID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func cardsFromRows(rows []cardRow) []domain.Card {
	cards := make([]domain.Card, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, r.toDomain())
	}
	return cards
}

// dateValue binds a calendar date to a DATE column.
func dateValue(d civil.Date) time.Time {
	return d.In(time.UTC)
}
