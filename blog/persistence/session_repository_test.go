package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agzertuche/inkwell/blog/domain"
)

func TestSessionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := NewSessionRepository(db)

	session := &domain.Session{
		Token:     "token-1",
		Username:  "admin",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	if err := repo.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	retrieved, err := repo.GetSession(ctx, "token-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if retrieved.Username != "admin" {
		t.Errorf("Username = %v, want %v", retrieved.Username, "admin")
	}
}

func TestSessionRepository_GetSession_Expired(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := NewSessionRepository(db)

	session := &domain.Session{
		Token:     "stale",
		Username:  "admin",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	if err := repo.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	// An expired session is indistinguishable from an unknown token
	_, err := repo.GetSession(ctx, "stale")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("GetSession error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRepository_GetSession_Unknown(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := NewSessionRepository(db)

	_, err := repo.GetSession(ctx, "nope")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("GetSession error = %v, want ErrSessionNotFound", err)
	}

	_, err = repo.GetSession(ctx, "")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("GetSession(\"\") error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRepository_DeleteSession(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := NewSessionRepository(db)

	session := &domain.Session{
		Token:     "token-1",
		Username:  "admin",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	if err := repo.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if err := repo.DeleteSession(ctx, "token-1"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	_, err := repo.GetSession(ctx, "token-1")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("GetSession after delete error = %v, want ErrSessionNotFound", err)
	}

	// Deleting an unknown token is not an error
	if err := repo.DeleteSession(ctx, "unknown"); err != nil {
		t.Fatalf("DeleteSession(unknown) failed: %v", err)
	}
}

func TestSessionRepository_DeleteExpiredSessions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	repo := NewSessionRepository(db)

	live := &domain.Session{
		Token:     "live",
		Username:  "admin",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	stale := &domain.Session{
		Token:     "stale",
		Username:  "admin",
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	for _, s := range []*domain.Session{live, stale} {
		if err := repo.CreateSession(ctx, s); err != nil {
			t.Fatalf("CreateSession(%s) failed: %v", s.Token, err)
		}
	}

	if err := repo.DeleteExpiredSessions(ctx); err != nil {
		t.Fatalf("DeleteExpiredSessions failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		t.Fatalf("counting sessions: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d sessions after cleanup, want 1", count)
	}

	if _, err := repo.GetSession(ctx, "live"); err != nil {
		t.Errorf("live session should survive cleanup: %v", err)
	}
}
