package services

import (
	"context"

	"community-events/internal/model"
	"community-events/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ResourceQueryServiceMock struct {
	mock.Mock
}

func NewResourceQueryServiceMock() *ResourceQueryServiceMock {
	return &ResourceQueryServiceMock{}
}

func (m *ResourceQueryServiceMock) ListPage(ctx context.Context, q service.ResourcePageQuery) model.Page[*model.Resource] {
	args := m.Called(ctx, q)
	return args.Get(0).(model.Page[*model.Resource])
}

func (m *ResourceQueryServiceMock) TypeCounts(ctx context.Context, term string) model.ResourceTypeCounts {
	args := m.Called(ctx, term)
	return args.Get(0).(model.ResourceTypeCounts)
}

func (m *ResourceQueryServiceMock) Latest(ctx context.Context, limit int) []*model.Resource {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*model.Resource)
}

func (m *ResourceQueryServiceMock) Get(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}
