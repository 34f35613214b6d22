package services

import (
	"context"

	"community-events/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ResourceAdminServiceMock struct {
	mock.Mock
}

func NewResourceAdminServiceMock() *ResourceAdminServiceMock {
	return &ResourceAdminServiceMock{}
}

func (m *ResourceAdminServiceMock) Create(ctx context.Context, actor model.Permissions, input model.ResourceInput) (*model.Resource, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *ResourceAdminServiceMock) Update(ctx context.Context, actor model.Permissions, id uuid.UUID, input model.ResourceInput) (*model.Resource, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *ResourceAdminServiceMock) Delete(ctx context.Context, actor model.Permissions, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *ResourceAdminServiceMock) List(ctx context.Context, actor model.Permissions) ([]*model.Resource, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Resource), args.Error(1)
}

type CommunityServiceMock struct {
	mock.Mock
}

func NewCommunityServiceMock() *CommunityServiceMock {
	return &CommunityServiceMock{}
}

func (m *CommunityServiceMock) ListPublic(ctx context.Context, term string) ([]*model.Profile, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Profile), args.Error(1)
}

type UserAdminServiceMock struct {
	mock.Mock
}

func NewUserAdminServiceMock() *UserAdminServiceMock {
	return &UserAdminServiceMock{}
}

func (m *UserAdminServiceMock) List(ctx context.Context, actor model.Permissions) ([]*model.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *UserAdminServiceMock) ChangeRole(ctx context.Context, actor model.Permissions, id uuid.UUID, role model.Role) (*model.User, error) {
	args := m.Called(ctx, actor, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserAdminServiceMock) RoleCounts(ctx context.Context, actor model.Permissions) (model.RoleCounts, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(model.RoleCounts), args.Error(1)
}

type DashboardServiceMock struct {
	mock.Mock
}

func NewDashboardServiceMock() *DashboardServiceMock {
	return &DashboardServiceMock{}
}

func (m *DashboardServiceMock) Overview(ctx context.Context, actor model.Permissions) (*model.DashboardOverview, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardOverview), args.Error(1)
}

func (m *DashboardServiceMock) Analytics(ctx context.Context, actor model.Permissions) (*model.DashboardAnalytics, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardAnalytics), args.Error(1)
}
