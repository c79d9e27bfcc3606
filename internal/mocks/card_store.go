package mocks

import (
	"context"

	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// CardStore is a mock of store.CardStore.
type CardStore struct {
	mock.Mock
}

var _ store.CardStore = (*CardStore)(nil)

// Create is a mock implementation of store.CardStore.Create
func (m *CardStore) Create(ctx context.Context, card *domain.Card, maxCards int) error {
	args := m.Called(ctx, card, maxCards)
	return args.Error(0)
}

// Update is a mock implementation of store.CardStore.Update
func (m *CardStore) Update(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

// GetByID is a mock implementation of store.CardStore.GetByID
func (m *CardStore) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if card, ok := args.Get(0).(*domain.Card); ok {
		return card, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByNumber is a mock implementation of store.CardStore.GetByNumber
func (m *CardStore) GetByNumber(ctx context.Context, number string) (*domain.Card, error) {
	args := m.Called(ctx, number)
	if card, ok := args.Get(0).(*domain.Card); ok {
		return card, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.CardStore.Delete
func (m *CardStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// FindByUserID is a mock implementation of store.CardStore.FindByUserID
func (m *CardStore) FindByUserID(ctx context.Context, userID int64) ([]domain.Card, error) {
	args := m.Called(ctx, userID)
	if cards, ok := args.Get(0).([]domain.Card); ok {
		return cards, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindPage is a mock implementation of store.CardStore.FindPage
func (m *CardStore) FindPage(
	ctx context.Context,
	pred store.Predicate,
	page domain.PageRequest,
) (domain.Page[domain.Card], error) {
	args := m.Called(ctx, pred, page)
	if p, ok := args.Get(0).(domain.Page[domain.Card]); ok {
		return p, args.Error(1)
	}
	return domain.Page[domain.Card]{}, args.Error(1)
}
