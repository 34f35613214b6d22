package repositories

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type FeedbackRepositoryMock struct {
	mock.Mock
}

func NewFeedbackRepositoryMock() *FeedbackRepositoryMock {
	return &FeedbackRepositoryMock{}
}

func (m *FeedbackRepositoryMock) Stats(ctx context.Context) (int, float64, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}
