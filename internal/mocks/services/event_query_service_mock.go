package services

import (
	"context"

	"community-events/internal/model"
	"community-events/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type EventQueryServiceMock struct {
	mock.Mock
}

func NewEventQueryServiceMock() *EventQueryServiceMock {
	return &EventQueryServiceMock{}
}

func (m *EventQueryServiceMock) ListPage(ctx context.Context, q service.EventPageQuery) model.Page[*model.Event] {
	args := m.Called(ctx, q)
	return args.Get(0).(model.Page[*model.Event])
}

func (m *EventQueryServiceMock) ListPhasePage(ctx context.Context, q service.EventPageQuery, when model.EventPhase) model.EventPhasePage {
	args := m.Called(ctx, q, when)
	return args.Get(0).(model.EventPhasePage)
}

func (m *EventQueryServiceMock) Upcoming(ctx context.Context, limit int, fallbackToPast bool) []*model.Event {
	args := m.Called(ctx, limit, fallbackToPast)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*model.Event)
}

func (m *EventQueryServiceMock) GetPublished(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}
