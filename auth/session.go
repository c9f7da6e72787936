// Package auth implements the two access gates in front of the directory:
// a session gate comparing one shared password, and helpers for the
// per-record PIN gate. Both are soft deterrents by design, not per-user
// credentials, and neither adds lockout or backoff.
package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/houseofcoffee/US-Chamber/pkg/errors"
)

// SessionManager checks the shared directory password and issues signed
// tokens marking a session as authorized.
type SessionManager struct {
	password   string
	signingKey []byte
	ttl        time.Duration
}

// NewSessionManager creates a session manager. The signing key is only used
// to make tokens unforgeable for the session lifetime; the credential itself
// remains the single shared password.
func NewSessionManager(password, signingKey string, ttl time.Duration) *SessionManager {
	if ttl == 0 {
		ttl = 12 * time.Hour
	}
	return &SessionManager{
		password:   password,
		signingKey: []byte(signingKey),
		ttl:        ttl,
	}
}

// Authorize compares the supplied password against the shared secret and, on
// a match, returns a session token and its expiry. A mismatch yields the
// generic unauthorized error with no further detail.
func (m *SessionManager) Authorize(password string) (string, time.Time, error) {
	if m.password == "" {
		return "", time.Time{}, errors.InternalError("Directory password is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(m.password), []byte(password)) != 1 {
		return "", time.Time{}, errors.UnauthorizedError("Incorrect password")
	}

	expiresAt := time.Now().Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "directory-session",
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	})

	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", time.Time{}, errors.InternalError("Failed to issue session token")
	}
	return signed, expiresAt, nil
}

// Verify parses a session token and reports whether the session is still
// authorized.
func (m *SessionManager) Verify(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil || !token.Valid {
		return errors.UnauthorizedError("Session is not authorized")
	}
	return nil
}
