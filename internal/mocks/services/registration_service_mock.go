package services

import (
	"context"

	"community-events/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type RegistrationServiceMock struct {
	mock.Mock
}

func NewRegistrationServiceMock() *RegistrationServiceMock {
	return &RegistrationServiceMock{}
}

func (m *RegistrationServiceMock) Availability(ctx context.Context, eventID uuid.UUID, userID *uuid.UUID) (*model.Availability, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Availability), args.Error(1)
}

func (m *RegistrationServiceMock) Register(ctx context.Context, req model.RegisterRequest) (*model.Registration, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

func (m *RegistrationServiceMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Registration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Registration), args.Error(1)
}

func (m *RegistrationServiceMock) ListAll(ctx context.Context, actor model.Permissions) ([]*model.Registration, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Registration), args.Error(1)
}

func (m *RegistrationServiceMock) UpdateStatus(ctx context.Context, actor model.Permissions, id uuid.UUID, status model.RegistrationStatus) error {
	args := m.Called(ctx, actor, id, status)
	return args.Error(0)
}

func (m *RegistrationServiceMock) StatusCounts(ctx context.Context, actor model.Permissions) (model.RegistrationStatusCounts, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(model.RegistrationStatusCounts), args.Error(1)
}
