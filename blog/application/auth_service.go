package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/agzertuche/inkwell/blog/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 24 * time.Hour

// ErrInvalidCredentials is returned by Login when the username or password
// does not match the configured admin account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates the single admin account and manages its
// sessions. The admin password is bcrypt-hashed once at construction; only
// the hash is kept in memory.
type AuthService struct {
	sessions     domain.SessionRepository
	username     string
	passwordHash []byte

	// Service lifecycle context - cancelled when Close() is called
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewAuthService(sessions domain.SessionRepository, username string, password string) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &AuthService{
		sessions:     sessions,
		username:     username,
		passwordHash: hash,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

// Close stops the background session cleanup.
func (s *AuthService) Close() error {
	s.cancel()
	s.wg.Wait()

	return nil
}

// Login verifies the credentials and issues a new session, returning its
// token. bcrypt's comparison is constant-time, so a wrong username takes
// the same path as a wrong password.
func (s *AuthService) Login(ctx context.Context, username string, password string) (string, error) {
	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if username != s.username || err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &domain.Session{
		Token:     token,
		Username:  username,
		ExpiresAt: time.Now().UTC().Add(sessionDuration),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return "", err
	}

	return token, nil
}

// CurrentUser resolves a session token to the user it belongs to.
// Returns domain.ErrSessionNotFound for unknown or expired tokens.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		Username: session.Username,
		IsAdmin:  session.Username == s.username,
	}, nil
}

// Logout destroys the session behind the token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// StartSessionCleanup runs an immediate sweep of expired sessions and then
// keeps sweeping on the given interval until Close is called.
func (s *AuthService) StartSessionCleanup(interval time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.cleanupExpired()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.cleanupExpired()
			}
		}
	}()
}

func (s *AuthService) cleanupExpired() {
	if err := s.sessions.DeleteExpiredSessions(s.ctx); err != nil {
		log.Error().Err(err).Msg("Failed to clean up expired sessions")
	}
}

// SessionTTL returns how long a freshly issued session lives.
func (s *AuthService) SessionTTL() time.Duration {
	return sessionDuration
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
