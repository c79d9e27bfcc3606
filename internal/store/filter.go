package store

import (
	"time"

	"cloud.google.com/go/civil"
)

// Filterable user columns.
const (
	UserColumnName      = "name"
	UserColumnSurname   = "surname"
	UserColumnBirthDate = "birth_date"
	UserColumnActive    = "active"
)

// Filterable card columns.
const (
	CardColumnActive         = "active"
	CardColumnExpirationDate = "expiration_date"
)

// UserFilter narrows a user listing. Nil fields are ignored.
type UserFilter struct {
	Name      *string
	Surname   *string
	BirthDate *civil.Date
	Active    *bool
}

// Predicate converts the filter into a predicate. Name and surname match as
// case-insensitive substrings; birth date and active match exactly.
func (f UserFilter) Predicate() Predicate {
	return Build(
		When(f.Name, func(v string) Condition { return ContainsFold(UserColumnName, v) }),
		When(f.Surname, func(v string) Condition { return ContainsFold(UserColumnSurname, v) }),
		When(f.BirthDate, func(v civil.Date) Condition { return Eq(UserColumnBirthDate, dateValue(v)) }),
		When(f.Active, func(v bool) Condition { return Eq(UserColumnActive, v) }),
	)
}

// CardFilter narrows a card listing. Nil fields are ignored.
type CardFilter struct {
	Active        *bool
	ExpiresAfter  *civil.Date
	ExpiresBefore *civil.Date
}

// Predicate converts the filter into a predicate. Expiration bounds are strict.
func (f CardFilter) Predicate() Predicate {
	return Build(
		When(f.Active, func(v bool) Condition { return Eq(CardColumnActive, v) }),
		When(f.ExpiresAfter, func(v civil.Date) Condition { return Gt(CardColumnExpirationDate, dateValue(v)) }),
		When(f.ExpiresBefore, func(v civil.Date) Condition { return Lt(CardColumnExpirationDate, dateValue(v)) }),
	)
}

// dateValue converts a calendar date to the midnight-UTC time the driver binds
// to DATE columns.
func dateValue(d civil.Date) time.Time {
	return d.In(time.UTC)
}
