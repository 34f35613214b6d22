package service

import (
	"context"
	"testing"

	"community-events/internal/mocks/repositories"
	"community-events/internal/model"
	apperrors "community-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func setupRegistration(max *int, registered int, already bool) (*repositories.RegistrationRepositoryMock, RegistrationService, model.RegisterRequest) {
	userID := uuid.New()
	event := &model.Event{ID: uuid.New(), Status: model.EventStatusPublished, MaxParticipants: max}

	eventRepo := repositories.NewEventRepositoryMock()
	eventRepo.On("FindByID", mock.Anything, event.ID).Return(event, nil)
	repo := repositories.NewRegistrationRepositoryMock()
	repo.On("CountRegistered", mock.Anything, event.ID).Return(registered, nil)
	repo.On("ExistsActive", mock.Anything, event.ID, userID).Return(already, nil)

	req := model.RegisterRequest{EventID: event.ID, UserID: &userID, FullName: " Ana ", Email: "ana@example.com"}
	return repo, NewRegistrationService(repo, eventRepo), req
}

func TestRegistrationService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, svc, req := setupRegistration(intPtr(10), 3, false)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Registration) bool {
			return r.FullName == "Ana" && r.TermsAccepted && r.PrivacyAccepted && !r.MarketingAccepted &&
				r.Status == model.RegistrationStatusRegistered
		})).Return(&model.Registration{ID: uuid.New()}, nil)

		reg, err := svc.Register(ctx, req)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, reg.ID)
		repo.AssertExpectations(t)
	})

	t.Run("NameAndEmailRequired", func(t *testing.T) {
		_, svc, req := setupRegistration(nil, 0, false)
		req.Email = ""

		_, err := svc.Register(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("MustBeSignedIn", func(t *testing.T) {
		_, svc, req := setupRegistration(nil, 0, false)
		req.UserID = nil

		_, err := svc.Register(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("EventFull", func(t *testing.T) {
		repo, svc, req := setupRegistration(intPtr(2), 2, false)

		_, err := svc.Register(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrEventFull)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("AlreadyRegisteredPreCheck", func(t *testing.T) {
		repo, svc, req := setupRegistration(nil, 5, true)

		_, err := svc.Register(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("UniqueViolationFromConcurrentInsert", func(t *testing.T) {
		repo, svc, req := setupRegistration(nil, 0, false)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.ErrAlreadyRegistered)

		_, err := svc.Register(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
	})
}

func TestRegistrationService_Availability(t *testing.T) {
	_, svc, req := setupRegistration(intPtr(5), 7, true)

	avail, err := svc.Availability(context.Background(), req.EventID, req.UserID)

	require.NoError(t, err)
	assert.Equal(t, 7, avail.Registered)
	require.NotNil(t, avail.SpotsLeft)
	assert.Equal(t, 0, *avail.SpotsLeft)
	assert.True(t, avail.AlreadyRegistered)

	anonymous, err := svc.Availability(context.Background(), req.EventID, nil)
	require.NoError(t, err)
	assert.False(t, anonymous.AlreadyRegistered)

	_, unlimitedSvc, unlimitedReq := setupRegistration(nil, 3, false)
	unlimited, err := unlimitedSvc.Availability(context.Background(), unlimitedReq.EventID, nil)
	require.NoError(t, err)
	assert.Nil(t, unlimited.SpotsLeft)
}
