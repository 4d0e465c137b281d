package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session token does not resolve to a
// live (unexpired) session.
var ErrSessionNotFound = errors.New("session not found")

// User is the authenticated identity attached to a request. There is a
// single admin account configured from the environment, so the record is
// intentionally small; it exists for display and for the admin check.
type User struct {
	Username string
	IsAdmin  bool
}

// Session is a server-side login session. The browser only ever holds the
// opaque token.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

type SessionRepository interface {
	// CreateSession stores a new session.
	CreateSession(ctx context.Context, s *Session) error

	// GetSession resolves a token to a session, or ErrSessionNotFound if
	// the token is unknown or the session has expired.
	GetSession(ctx context.Context, token string) (*Session, error)

	// DeleteSession removes a session by token. Deleting an unknown token
	// is not an error.
	DeleteSession(ctx context.Context, token string) error

	// DeleteExpiredSessions removes all sessions past their expiry.
	DeleteExpiredSessions(ctx context.Context) error
}
