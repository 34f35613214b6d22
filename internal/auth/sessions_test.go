package auth

import (
	"context"
	"testing"
	"time"

	"community-events/internal/mocks/repositories"
	"community-events/internal/model"
	apperrors "community-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupSessions(t *testing.T, role model.Role) (*Sessions, *repositories.UserRepositoryMock, *repositories.ProfileRepositoryMock, *MemoryPermissionCache, *model.User) {
	t.Helper()
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	user := &model.User{ID: uuid.New(), Email: "ana@example.com", Role: role, PasswordHash: hash}

	users := repositories.NewUserRepositoryMock()
	profiles := repositories.NewProfileRepositoryMock()
	cache := NewMemoryPermissionCache(DefaultSnapshotTTL)
	provider := NewLocalProvider(users, NewTokenIssuer("test-secret", time.Hour))
	return NewSessions(provider, users, profiles, cache), users, profiles, cache, user
}

func TestSessions_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("FromSnapshot", func(t *testing.T) {
		s, users, profiles, cache, user := setupSessions(t, model.RoleAdmin)
		cache.Save(ctx, user.ID, SnapshotData{UserData: user})

		identity := s.Lookup(ctx, user.ID)

		assert.True(t, identity.Permissions.IsAdmin)
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		profiles.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
	})

	t.Run("MissFetchesAndSaves", func(t *testing.T) {
		s, users, profiles, cache, user := setupSessions(t, model.RoleOrganizer)
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil).Once()
		profiles.On("FindByUserID", mock.Anything, user.ID).Return(nil, apperrors.ErrProfileNotFound).Once()

		identity := s.Lookup(ctx, user.ID)
		again := s.Lookup(ctx, user.ID)

		assert.True(t, identity.Permissions.IsOrganizer)
		assert.Equal(t, identity.Permissions, again.Permissions)
		_, ok := cache.Load(ctx, user.ID)
		assert.True(t, ok)
		users.AssertExpectations(t)
	})
}

func TestSessions_SignInAndOut(t *testing.T) {
	ctx := context.Background()
	s, users, profiles, cache, user := setupSessions(t, model.RoleParticipant)
	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(user, nil)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	profiles.On("FindByUserID", mock.Anything, user.ID).Return(nil, apperrors.ErrProfileNotFound)

	session, identity, err := s.SignIn(ctx, "ana@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.Permissions.UserID)

	authed, err := s.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.UserID)

	require.NoError(t, s.SignOut(ctx, session))

	_, err = s.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	_, ok := cache.Load(ctx, user.ID)
	assert.False(t, ok)
}

func TestSessions_UpdateUserData(t *testing.T) {
	ctx := context.Background()
	s, users, _, cache, user := setupSessions(t, model.RoleParticipant)
	cache.Save(ctx, user.ID, SnapshotData{UserData: user})
	users.On("Update", mock.Anything, user.ID, mock.MatchedBy(func(p model.UpdateUserParams) bool {
		return p.Role == nil
	})).Return(user, nil)

	admin := model.RoleAdmin
	_, err := s.UpdateUserData(ctx, &Session{UserID: user.ID}, model.UpdateUserParams{Role: &admin})

	require.NoError(t, err)
	_, ok := cache.Load(ctx, user.ID)
	assert.False(t, ok)
	users.AssertExpectations(t)
}
