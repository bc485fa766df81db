package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// TokenPair holds the opaque bearer credentials issued at login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Session is anonymous when the access token is empty.
type Session struct {
	User   *User     `json:"user,omitempty"`
	Tokens TokenPair `json:"tokens"`
}

func (s Session) Authenticated() bool {
	return s.User != nil && s.Tokens.Access != ""
}

// ExpiresAt reports the access token expiry from its registered claims.
// The token is not verified here; the signing key lives on the server and
// the expiry is only used to surface session state without a network call.
func (s Session) ExpiresAt() (time.Time, bool) {
	if s.Tokens.Access == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.Tokens.Access, &claims); err != nil {
		return time.Time{}, false
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

type AuthResponse struct {
	User   *User     `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}
