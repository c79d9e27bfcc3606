package mocks

import (
	"context"

	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/dto"
	"github.com/phrazzld/cardholder-api/internal/service"
	"github.com/phrazzld/cardholder-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// UserService is a mock of service.UserService.
type UserService struct {
	mock.Mock
}

var _ service.UserService = (*UserService)(nil)

func userResponse(args mock.Arguments) (*dto.UserResponse, error) {
	if resp, ok := args.Get(0).(*dto.UserResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of service.UserService.Create
func (m *UserService) Create(ctx context.Context, in dto.UserCreate) (*dto.UserResponse, error) {
	return userResponse(m.Called(ctx, in))
}

// Update is a mock implementation of service.UserService.Update
func (m *UserService) Update(ctx context.Context, id int64, in dto.UserUpdate) (*dto.UserResponse, error) {
	return userResponse(m.Called(ctx, id, in))
}

// Delete is a mock implementation of service.UserService.Delete
func (m *UserService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ChangeStatus is a mock implementation of service.UserService.ChangeStatus
func (m *UserService) ChangeStatus(ctx context.Context, id int64, active bool) (*dto.UserResponse, error) {
	return userResponse(m.Called(ctx, id, active))
}

// FindByID is a mock implementation of service.UserService.FindByID
func (m *UserService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindDtoByID is a mock implementation of service.UserService.FindDtoByID
func (m *UserService) FindDtoByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	return userResponse(m.Called(ctx, id))
}

// FindDtoByEmail is a mock implementation of service.UserService.FindDtoByEmail
func (m *UserService) FindDtoByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	return userResponse(m.Called(ctx, email))
}

// FindAll is a mock implementation of service.UserService.FindAll
func (m *UserService) FindAll(
	ctx context.Context,
	filter store.UserFilter,
	page domain.PageRequest,
) (*dto.PageResponse[dto.UserResponse], error) {
	args := m.Called(ctx, filter, page)
	if resp, ok := args.Get(0).(*dto.PageResponse[dto.UserResponse]); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}
