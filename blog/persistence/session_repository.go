package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/agzertuche/inkwell/blog/domain"
	"github.com/agzertuche/inkwell/shared/db"
)

var _ domain.SessionRepository = (*SQLiteSessionRepository)(nil)

// SQLiteSessionRepository implements domain.SessionRepository using SQL database (SQLite)
type SQLiteSessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLiteSessionRepository from a standard sql.DB
func NewSessionRepository(db *sql.DB) *SQLiteSessionRepository {
	return &SQLiteSessionRepository{
		db: db,
	}
}

const insertSessionQuery = `
	INSERT INTO sessions (token, username, expires_at)
	VALUES (?, ?, ?)
`

// CreateSession stores a new session
func (r *SQLiteSessionRepository) CreateSession(ctx context.Context, s *domain.Session) error {
	if s == nil {
		return fmt.Errorf("session cannot be nil")
	}

	if s.Token == "" {
		return fmt.Errorf("session token cannot be empty")
	}

	executor := db.GetExecutor(ctx, r.db)

	_, err := executor.ExecContext(ctx, insertSessionQuery, s.Token, s.Username, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

const getSessionQuery = `
	SELECT token, username, expires_at
	FROM sessions
	WHERE token = ? AND expires_at > ?
`

// GetSession resolves a token to a live session. Expired sessions are
// indistinguishable from unknown tokens.
func (r *SQLiteSessionRepository) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	executor := db.GetExecutor(ctx, r.db)

	var s domain.Session
	err := executor.QueryRowContext(ctx, getSessionQuery, token, time.Now().UTC()).Scan(
		&s.Token,
		&s.Username,
		&s.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &s, nil
}

const deleteSessionQuery = `
	DELETE FROM sessions WHERE token = ?
`

// DeleteSession removes a session by token
func (r *SQLiteSessionRepository) DeleteSession(ctx context.Context, token string) error {
	executor := db.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, deleteSessionQuery, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

const deleteExpiredSessionsQuery = `
	DELETE FROM sessions WHERE expires_at < ?
`

// DeleteExpiredSessions removes all sessions past their expiry
func (r *SQLiteSessionRepository) DeleteExpiredSessions(ctx context.Context) error {
	executor := db.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, deleteExpiredSessionsQuery, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return nil
}
