package models_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopease/storefront-client/internal/models"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	return token
}

func TestSession_Authenticated(t *testing.T) {

	t.Run("Anonymous Without User", func(t *testing.T) {
		session := models.Session{Tokens: models.TokenPair{Access: "acc"}}
		assert.False(t, session.Authenticated())
	})

	t.Run("Anonymous Without Access Credential", func(t *testing.T) {
		session := models.Session{User: &models.User{ID: 7}}
		assert.False(t, session.Authenticated())
	})

	t.Run("Authenticated With Both", func(t *testing.T) {
		session := models.Session{
			User:   &models.User{ID: 7},
			Tokens: models.TokenPair{Access: "acc"},
		}
		assert.True(t, session.Authenticated())
	})
}

func TestSession_ExpiresAt(t *testing.T) {

	t.Run("Reads Expiry From Token Claims", func(t *testing.T) {
		// Arrange
		expiry := time.Now().Add(24 * time.Hour).Truncate(time.Second)
		session := models.Session{Tokens: models.TokenPair{Access: signedToken(t, expiry)}}

		// Act
		got, ok := session.ExpiresAt()

		// Assert
		require.True(t, ok)
		assert.Equal(t, expiry.Unix(), got.Unix())
	})

	t.Run("Empty Token Has No Expiry", func(t *testing.T) {
		_, ok := models.Session{}.ExpiresAt()
		assert.False(t, ok)
	})

	t.Run("Malformed Token Has No Expiry", func(t *testing.T) {
		session := models.Session{Tokens: models.TokenPair{Access: "not-a-jwt"}}

		_, ok := session.ExpiresAt()
		assert.False(t, ok)
	})
}
