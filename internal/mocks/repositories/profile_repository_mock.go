package repositories

import (
	"context"

	"community-events/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ProfileRepositoryMock struct {
	mock.Mock
}

func NewProfileRepositoryMock() *ProfileRepositoryMock {
	return &ProfileRepositoryMock{}
}

func (m *ProfileRepositoryMock) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *ProfileRepositoryMock) ListPublic(ctx context.Context) ([]*model.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Profile), args.Error(1)
}

func (m *ProfileRepositoryMock) Upsert(ctx context.Context, userID uuid.UUID, params model.UpdateProfileParams) (*model.Profile, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}
