package repository

import (
	"context"
	"testing"
	"time"

	"community-events/internal/model"
	apperrors "community-events/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationRepository(t *testing.T) {
	pool := setupTestWithTruncate(t)
	repo := NewRegistrationRepository(pool)
	ctx := context.Background()

	org := createTestUser(t, "org@example.com", model.RoleOrganizer)
	user := createTestUser(t, "ana@example.com", model.RoleParticipant)
	eventID := createTestEvent(t, org, "Go Meetup", time.Now().UTC().Add(24*time.Hour), model.EventStatusPublished, false)

	newReg := func() *model.Registration {
		return &model.Registration{
			EventID:         eventID,
			UserID:          &user,
			Email:           "ana@example.com",
			FullName:        "Ana",
			TermsAccepted:   true,
			PrivacyAccepted: true,
			Status:          model.RegistrationStatusRegistered,
		}
	}

	created, err := repo.Create(ctx, newReg())
	require.NoError(t, err)

	t.Run("DuplicateActiveRegistration", func(t *testing.T) {
		_, err := repo.Create(ctx, newReg())
		assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
	})

	t.Run("CountsAndExists", func(t *testing.T) {
		n, err := repo.CountRegistered(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		exists, err := repo.ExistsActive(ctx, eventID, user)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("ListByUserJoinsEvent", func(t *testing.T) {
		regs, err := repo.ListByUser(ctx, user)
		require.NoError(t, err)
		require.Len(t, regs, 1)
		require.NotNil(t, regs[0].EventTitle)
		assert.Equal(t, "Go Meetup", *regs[0].EventTitle)
	})

	t.Run("CancelFreesTheSlot", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, created.ID, model.RegistrationStatusCancelled))

		_, err := repo.Create(ctx, newReg())
		require.NoError(t, err)

		counts, err := repo.StatusCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.RegistrationStatusCounts{Registered: 1, Cancelled: 1}, counts)
	})

	t.Run("TopEvents", func(t *testing.T) {
		top, err := repo.TopEvents(ctx, 5)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, 2, top[0].Participants)
	})
}
