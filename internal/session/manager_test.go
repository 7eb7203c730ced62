package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"doctama-backoffice/internal/model"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	return NewManager(store, zap.NewNop())
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSetAndClear(t *testing.T) {
	manager := newTestManager(t)
	user := &model.User{ID: "u1", Email: "admin@doctama.ph", Roles: model.Roles{"admin"}}

	require.NoError(t, manager.Set(user, "token-abc"))
	assert.True(t, manager.Authenticated())
	assert.Equal(t, "token-abc", manager.Token())
	assert.Equal(t, "admin@doctama.ph", manager.User().Email)

	manager.Clear()
	assert.False(t, manager.Authenticated())
	assert.Nil(t, manager.User())

	// repeated clears must be harmless
	manager.Clear()
	manager.Invalidate()
}

func TestSessionSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.db")

	store, err := OpenStore(path)
	require.NoError(t, err)
	first := NewManager(store, zap.NewNop())
	token := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, first.Set(&model.User{ID: "u1", Email: "admin@doctama.ph"}, token))

	reopened, err := OpenStore(path)
	require.NoError(t, err)
	second := NewManager(reopened, zap.NewNop())
	require.NoError(t, second.Load())

	assert.Equal(t, token, second.Token())
	require.NotNil(t, second.User())
	assert.Equal(t, "admin@doctama.ph", second.User().Email)
}

func TestLoadDropsExpiredToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.db")

	store, err := OpenStore(path)
	require.NoError(t, err)
	first := NewManager(store, zap.NewNop())
	require.NoError(t, first.Set(&model.User{ID: "u1"}, signedToken(t, time.Now().Add(-time.Hour))))

	reopened, err := OpenStore(path)
	require.NoError(t, err)
	second := NewManager(reopened, zap.NewNop())
	require.NoError(t, second.Load())

	assert.False(t, second.Authenticated())
}

func TestLoadKeepsOpaqueToken(t *testing.T) {
	manager := newTestManager(t)
	require.NoError(t, manager.Set(&model.User{ID: "u1"}, "not-a-jwt"))

	fresh := NewManager(manager.store, zap.NewNop())
	require.NoError(t, fresh.Load())

	assert.Equal(t, "not-a-jwt", fresh.Token())
}

func TestUserReturnsCopy(t *testing.T) {
	manager := newTestManager(t)
	require.NoError(t, manager.Set(&model.User{ID: "u1", FullName: "Maria"}, "tok"))

	copy := manager.User()
	copy.FullName = "changed"

	assert.Equal(t, "Maria", manager.User().FullName)
}
