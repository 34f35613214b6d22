package services

import (
	"context"

	"community-events/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type EventAdminServiceMock struct {
	mock.Mock
}

func NewEventAdminServiceMock() *EventAdminServiceMock {
	return &EventAdminServiceMock{}
}

func (m *EventAdminServiceMock) Create(ctx context.Context, actor model.Permissions, input model.EventInput) (*model.Event, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventAdminServiceMock) Update(ctx context.Context, actor model.Permissions, id uuid.UUID, input model.EventInput) (*model.Event, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventAdminServiceMock) UpdateStatus(ctx context.Context, actor model.Permissions, id uuid.UUID, status model.EventStatus) error {
	args := m.Called(ctx, actor, id, status)
	return args.Error(0)
}

func (m *EventAdminServiceMock) Delete(ctx context.Context, actor model.Permissions, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *EventAdminServiceMock) ListAll(ctx context.Context, actor model.Permissions) ([]*model.Event, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventAdminServiceMock) ListByOrganizer(ctx context.Context, actor model.Permissions) ([]*model.Event, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}
