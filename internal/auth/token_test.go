package auth

import (
	"testing"
	"time"

	"community-events/internal/model"
	apperrors "community-events/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(now time.Time) *TokenIssuer {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	issuer.now = func() time.Time { return now }
	return issuer
}

func TestTokenIssuer_IssueVerify(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	issuer := newTestIssuer(now)
	user := &model.User{ID: uuid.New(), Email: "ana@example.com", Role: model.RoleOrganizer}

	token, expiresAt, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	session, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, user.Email, session.Email)
	assert.Equal(t, model.RoleOrganizer, session.Role)
	assert.Equal(t, token, session.Token)
	assert.True(t, expiresAt.Equal(session.ExpiresAt))
}

func TestTokenIssuer_Verify(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	user := &model.User{ID: uuid.New(), Email: "ana@example.com", Role: model.RoleParticipant}

	t.Run("Expired", func(t *testing.T) {
		token, _, err := newTestIssuer(now.Add(-2 * time.Hour)).Issue(user)
		require.NoError(t, err)

		_, err = newTestIssuer(now).Verify(token)

		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenIssuer("other-secret", time.Hour)
		token, _, err := other.Issue(user)
		require.NoError(t, err)

		_, err = newTestIssuer(now).Verify(token)

		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("UnexpectedAlgorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: user.ID.String()})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = newTestIssuer(now).Verify(signed)

		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := newTestIssuer(now).Verify("not-a-token")

		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}
