package mapper

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUserDraftRoundTrip(t *testing.T) {
	t.Parallel()

	in := dto.UserCreate{
		Name:      "Ada",
		Surname:   "Lovelace",
		BirthDate: civil.Date{Year: 1990, Month: time.May, Day: 17},
		Email:     "ada@example.com",
	}

	u := ToUser(in)
	assert.True(t, u.Active)
	assert.NotNil(t, u.Cards)
	assert.Equal(t, in, ToUserCreate(u))
}

func TestCardDraftRoundTrip(t *testing.T) {
	t.Parallel()

	owner := &domain.User{ID: 9, Name: "Ada", Surname: "Lovelace"}
	in := dto.CardCreate{
		Number:         "1234123412341234",
		ExpirationDate: civil.Date{Year: 2031, Month: time.March, Day: 1},
		UserID:         ptr(int64(9)),
	}

	c := ToCard(in, owner)
	assert.Equal(t, "Ada Lovelace", c.Holder)
	assert.True(t, c.Active)
	assert.Equal(t, in, ToCardCreate(c))
}

func TestToUserResponse(t *testing.T) {
	t.Parallel()

	u := &domain.User{
		ID:        3,
		Name:      "Ada",
		Surname:   "Lovelace",
		BirthDate: civil.Date{Year: 1990, Month: time.May, Day: 17},
		Email:     "ada@example.com",
		Active:    true,
		Cards: []domain.Card{
			{ID: 1, Number: "111122223333", Holder: "Ada Lovelace", Active: true, UserID: 3},
		},
	}

	resp := ToUserResponse(u)
	assert.Equal(t, int64(3), resp.ID)
	require.Len(t, resp.PaymentCards, 1)
	assert.Equal(t, int64(3), resp.PaymentCards[0].UserID)

	u.Cards = nil
	assert.NotNil(t, ToUserResponse(u).PaymentCards)
}

func TestApplyUserUpdate_OnlyPresentFields(t *testing.T) {
	t.Parallel()

	cards := []domain.Card{{ID: 1}}
	u := &domain.User{ID: 3, Name: "Ada", Surname: "Lovelace", Email: "ada@example.com", Cards: cards}

	ApplyUserUpdate(u, dto.UserUpdate{ID: ptr(int64(3)), Email: ptr("countess@example.com")})

	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "Lovelace", u.Surname)
	assert.Equal(t, "countess@example.com", u.Email)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, cards, u.Cards)
	assert.False(t, u.UpdatedAt.IsZero())
}

func TestApplyCardUpdate_KeepsOwnerAndHolder(t *testing.T) {
	t.Parallel()

	c := &domain.Card{ID: 1, Number: "111122223333", Holder: "Ada Lovelace", UserID: 3}
	exp := civil.Date{Year: 2032, Month: time.April, Day: 2}

	ApplyCardUpdate(c, dto.CardUpdate{ID: ptr(int64(1)), ExpirationDate: &exp})

	assert.Equal(t, "111122223333", c.Number)
	assert.Equal(t, exp, c.ExpirationDate)
	assert.Equal(t, "Ada Lovelace", c.Holder)
	assert.Equal(t, int64(3), c.UserID)
}

func TestToPageResponse(t *testing.T) {
	t.Parallel()

	page := domain.Page[domain.Card]{
		Content:       []domain.Card{{ID: 1}, {ID: 2}},
		TotalElements: 5,
		Number:        1,
		Size:          2,
	}

	resp := ToPageResponse(page, ToCardResponse)
	assert.Len(t, resp.Content, 2)
	assert.Equal(t, int64(5), resp.TotalElements)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 1, resp.Number)
	assert.Equal(t, 2, resp.Size)

	empty := ToPageResponse(domain.Page[domain.Card]{Size: 20}, ToCardResponse)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
}
