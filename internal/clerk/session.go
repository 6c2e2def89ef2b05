// File: internal/clerk/session.go
package clerk

import (
	"fmt"

	"learnhub_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims are the authorization-relevant fields embedded in a session
// token at issuance time. db_id and role are stamped into the provider's user
// metadata after local user creation and copied into every session minted from
// then on; they are trusted as-is without a live read of the users table, so
// they can lag the store until the provider mints the next session.
type SessionClaims struct {
	DBID string `json:"db_id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CurrentUser is the normalized descriptor of the authenticated caller.
type CurrentUser struct {
	ClerkUserID string
	UserID      uuid.UUID // uuid.Nil when the session carries no db_id claim
	Role        string
}

// SessionVerifier validates session tokens and extracts their claims.
type SessionVerifier struct {
	secret []byte
}

// NewSessionVerifier creates a verifier from the configured session secret.
func NewSessionVerifier(cfg *config.Config) *SessionVerifier {
	return &SessionVerifier{secret: []byte(cfg.SessionJWTSecret)}
}

// Verify parses and validates a session token, returning its claims.
func (v *SessionVerifier) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}

// CurrentUser builds the caller descriptor from verified claims.
func (c *SessionClaims) CurrentUser() *CurrentUser {
	cur := &CurrentUser{
		ClerkUserID: c.Subject,
		Role:        c.Role,
	}
	if id, err := uuid.Parse(c.DBID); err == nil {
		cur.UserID = id
	}
	return cur
}
