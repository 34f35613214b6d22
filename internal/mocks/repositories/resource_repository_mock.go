package repositories

import (
	"context"

	"community-events/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ResourceRepositoryMock struct {
	mock.Mock
}

func NewResourceRepositoryMock() *ResourceRepositoryMock {
	return &ResourceRepositoryMock{}
}

func (m *ResourceRepositoryMock) Search(ctx context.Context, filter model.ResourceFilter) ([]*model.Resource, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.Resource), args.Int(1), args.Error(2)
}

func (m *ResourceRepositoryMock) Count(ctx context.Context, filter model.ResourceFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *ResourceRepositoryMock) FindByID(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *ResourceRepositoryMock) Create(ctx context.Context, resource *model.Resource) (*model.Resource, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *ResourceRepositoryMock) Update(ctx context.Context, resource *model.Resource) (*model.Resource, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *ResourceRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
