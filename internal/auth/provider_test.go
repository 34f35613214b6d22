package auth

import (
	"context"
	"sync"
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

type recordedEvent struct {
	event   AuthEvent
	session *Session
}

type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) listen(event AuthEvent, session *Session) {
	r.mu.Lock()
	r.events = append(r.events, recordedEvent{event: event, session: session})
	r.mu.Unlock()
}

func (r *eventRecorder) kinds() []AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]AuthEvent, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.event)
	}
	return out
}

func setupProvider(t *testing.T, password string) (*LocalProvider, *repositories.UserRepositoryMock, *model.User) {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	user := &model.User{ID: uuid.New(), Email: "ana@example.com", Role: model.RoleParticipant, PasswordHash: hash}

	users := repositories.NewUserRepositoryMock()
	users.On("FindByEmail", mock.Anything, "ana@example.com").Return(user, nil)
	users.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, apperrors.ErrUserNotFound)

	return NewLocalProvider(users, NewTokenIssuer("test-secret", time.Hour)), users, user
}

func TestLocalProvider_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		provider, _, user := setupProvider(t, "s3cret-pass")
		rec := &eventRecorder{}
		provider.OnAuthStateChange(rec.listen)

		session, err := provider.SignIn(ctx, "ana@example.com", "s3cret-pass")

		require.NoError(t, err)
		assert.Equal(t, user.ID, session.UserID)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, []AuthEvent{EventSignedIn}, rec.kinds())
	})

	t.Run("WrongPassword", func(t *testing.T) {
		provider, _, _ := setupProvider(t, "s3cret-pass")

		_, err := provider.SignIn(ctx, "ana@example.com", "nope")

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		provider, _, _ := setupProvider(t, "s3cret-pass")

		_, err := provider.SignIn(ctx, "who@example.com", "s3cret-pass")

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestLocalProvider_SignOut(t *testing.T) {
	ctx := context.Background()
	provider, _, _ := setupProvider(t, "s3cret-pass")
	rec := &eventRecorder{}
	unsubscribe := provider.OnAuthStateChange(rec.listen)

	session, err := provider.SignIn(ctx, "ana@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = provider.Session(ctx, session.Token)
	require.NoError(t, err)

	require.NoError(t, provider.SignOut(ctx, session.Token))

	_, err = provider.Session(ctx, session.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.Equal(t, []AuthEvent{EventSignedIn, EventSignedOut}, rec.kinds())

	// 第二次登出沒有事件
	require.NoError(t, provider.SignOut(ctx, session.Token))
	assert.Len(t, rec.kinds(), 2)

	unsubscribe()
	provider.NotifyUserUpdated(session)
	assert.Len(t, rec.kinds(), 2)
}

func TestLocalProvider_Session(t *testing.T) {
	provider, _, _ := setupProvider(t, "s3cret-pass")

	_, err := provider.Session(context.Background(), "")

	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
