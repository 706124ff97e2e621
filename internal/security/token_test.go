package security

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager(testSecret)
	sessionID := uuid.New()
	userID := uuid.New()

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := tm.GenerateSessionToken(sessionID, userID, "admin@example.com", true, time.Now().Add(time.Hour))
		require.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, sessionID, claims.SessionID())
		assert.Equal(t, "admin@example.com", claims.Email)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := tm.GenerateSessionToken(sessionID, userID, "a@b.de", false, time.Now().Add(-time.Minute))
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenManager("ffffffffffffffffffffffffffffffff")
		token, err := other.GenerateSessionToken(sessionID, userID, "a@b.de", false, time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSessionContext(t *testing.T) {
	_, ok := SessionFromContext(context.Background())
	assert.False(t, ok)

	s := &Session{ID: uuid.New(), UserID: uuid.New(), IsAdmin: true}
	got, ok := SessionFromContext(ContextWithSession(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)
}
