package mocks

import (
	"context"

	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/dto"
	"github.com/phrazzld/cardholder-api/internal/service"
	"github.com/phrazzld/cardholder-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// CardService is a mock of service.CardService.
type CardService struct {
	mock.Mock
}

var _ service.CardService = (*CardService)(nil)

func cardResponse(args mock.Arguments) (*dto.CardResponse, error) {
	if resp, ok := args.Get(0).(*dto.CardResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of service.CardService.Create
func (m *CardService) Create(ctx context.Context, in dto.CardCreate) (*dto.CardResponse, error) {
	return cardResponse(m.Called(ctx, in))
}

// Update is a mock implementation of service.CardService.Update
func (m *CardService) Update(ctx context.Context, id int64, in dto.CardUpdate) (*dto.CardResponse, error) {
	return cardResponse(m.Called(ctx, id, in))
}

// Delete is a mock implementation of service.CardService.Delete
func (m *CardService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ChangeStatus is a mock implementation of service.CardService.ChangeStatus
func (m *CardService) ChangeStatus(ctx context.Context, id int64, active bool) (*dto.CardResponse, error) {
	return cardResponse(m.Called(ctx, id, active))
}

// FindByID is a mock implementation of service.CardService.FindByID
func (m *CardService) FindByID(ctx context.Context, id int64) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if card, ok := args.Get(0).(*domain.Card); ok {
		return card, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindDtoByID is a mock implementation of service.CardService.FindDtoByID
func (m *CardService) FindDtoByID(ctx context.Context, id int64) (*dto.CardResponse, error) {
	return cardResponse(m.Called(ctx, id))
}

// FindAllByUserID is a mock implementation of service.CardService.FindAllByUserID
func (m *CardService) FindAllByUserID(ctx context.Context, userID int64) ([]dto.CardResponse, error) {
	args := m.Called(ctx, userID)
	if cards, ok := args.Get(0).([]dto.CardResponse); ok {
		return cards, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindAll is a mock implementation of service.CardService.FindAll
func (m *CardService) FindAll(
	ctx context.Context,
	filter store.CardFilter,
	page domain.PageRequest,
) (*dto.PageResponse[dto.CardResponse], error) {
	args := m.Called(ctx, filter, page)
	if resp, ok := args.Get(0).(*dto.PageResponse[dto.CardResponse]); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}
