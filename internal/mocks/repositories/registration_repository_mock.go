package repositories

import (
	"context"

	"community-events/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type RegistrationRepositoryMock struct {
	mock.Mock
}

func NewRegistrationRepositoryMock() *RegistrationRepositoryMock {
	return &RegistrationRepositoryMock{}
}

func (m *RegistrationRepositoryMock) CountRegistered(ctx context.Context, eventID uuid.UUID) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *RegistrationRepositoryMock) ExistsActive(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *RegistrationRepositoryMock) Create(ctx context.Context, registration *model.Registration) (*model.Registration, error) {
	args := m.Called(ctx, registration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

func (m *RegistrationRepositoryMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Registration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Registration), args.Error(1)
}

func (m *RegistrationRepositoryMock) ListAll(ctx context.Context) ([]*model.Registration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Registration), args.Error(1)
}

func (m *RegistrationRepositoryMock) UpdateStatus(ctx context.Context, id uuid.UUID, status model.RegistrationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *RegistrationRepositoryMock) StatusCounts(ctx context.Context) (model.RegistrationStatusCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.RegistrationStatusCounts), args.Error(1)
}

func (m *RegistrationRepositoryMock) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *RegistrationRepositoryMock) TopEvents(ctx context.Context, limit int) ([]*model.EventParticipation, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.EventParticipation), args.Error(1)
}
