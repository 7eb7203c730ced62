package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"doctama-backoffice/internal/model"
)

// Manager owns the authenticated session: the bearer token and the user
// it belongs to. It is the only writer of persisted session state; every
// consumer goes through it instead of reading shared storage directly.
//
// Clearing is idempotent, so concurrent requests that all observe a 401
// may race on Invalidate without coordination beyond the mutex.
type Manager struct {
	mu     sync.RWMutex
	token  string
	user   *model.User
	store  *Store
	logger *zap.Logger
}

func NewManager(store *Store, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Load restores a persisted session. Tokens that are already expired are
// dropped instead of restored; the remote API would only answer them with
// a 401 anyway.
func (m *Manager) Load() error {
	token, userJSON, err := m.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}
	if tokenExpired(token) {
		m.logger.Info("persisted session expired, discarding")
		return m.store.Delete()
	}

	var user model.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		m.logger.Warn("persisted session user is unreadable, discarding", zap.Error(err))
		return m.store.Delete()
	}

	m.mu.Lock()
	m.token = token
	m.user = &user
	m.mu.Unlock()

	m.logger.Info("session restored", zap.String("email", user.Email))
	return nil
}

// Set installs a fresh session after login or registration.
func (m *Manager) Set(user *model.User, token string) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serialize session user: %w", err)
	}

	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()

	if err := m.store.Save(token, string(userJSON)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear drops the session everywhere. Safe to call repeatedly.
func (m *Manager) Clear() {
	m.mu.Lock()
	hadSession := m.token != ""
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.Delete(); err != nil {
		m.logger.Warn("clear persisted session", zap.Error(err))
	}
	if hadSession {
		m.logger.Info("session cleared")
	}
}

// Invalidate implements gateway.TokenSource; the gateway calls it when
// the remote API answers 401.
func (m *Manager) Invalidate() { m.Clear() }

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns a copy of the session user, or nil when logged out.
func (m *Manager) User() *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// tokenExpired inspects the token's exp claim without verifying the
// signature. The remote API is the verifier; this only avoids restoring
// sessions that are certainly dead. Opaque tokens pass through.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
