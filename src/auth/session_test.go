package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/govsecure/platform/src/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	cfg := config.Load()
	cfg.Environment = "production" // disable the dev bypass
	cfg.SessionFile = filepath.Join(t.TempDir(), "session.json")
	cfg.JWTSecret = "test-secret"
	return NewManager(cfg, zap.NewNop())
}

func TestValidateCredentials(t *testing.T) {
	m := newTestManager(t)

	assert.True(t, m.ValidateCredentials("admin", "admin123"))
	assert.True(t, m.ValidateCredentials("user", "user123"))
	assert.True(t, m.ValidateCredentials("analyst", "analyst123"))

	assert.False(t, m.ValidateCredentials("admin", "wrong"))
	assert.False(t, m.ValidateCredentials("ghost", "admin123"))
	assert.False(t, m.ValidateCredentials("", ""))
	assert.False(t, m.ValidateCredentials("admin", ""))
}

func TestSessionRoundTrip(t *testing.T) {
	m := newTestManager(t)

	created, err := m.CreateSession("analyst")
	require.NoError(t, err)
	assert.Equal(t, "user_analyst", created.UserID)
	assert.Equal(t, "analyst", created.Username)
	assert.Equal(t, "confidential", created.Clearance)

	loaded, ok := m.CheckExistingSession()
	require.True(t, ok)
	assert.Equal(t, created.Username, loaded.Username)
	assert.Equal(t, created.Roles, loaded.Roles)

	require.NoError(t, m.Logout())
	_, ok = m.CheckExistingSession()
	assert.False(t, ok)
}

func TestCreateSessionUnknownUserDefaults(t *testing.T) {
	m := newTestManager(t)

	s, err := m.CreateSession("alice")
	require.NoError(t, err)
	assert.Equal(t, "user_alice", s.UserID)
	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, []string{"user"}, s.Roles)
	assert.Equal(t, "public", s.Clearance)

	loaded, ok := m.CheckExistingSession()
	require.True(t, ok)
	assert.Equal(t, "alice", loaded.Username)
}

func TestExpiredSessionRemoved(t *testing.T) {
	m := newTestManager(t)

	s := Session{
		Username:  "admin",
		Roles:     []string{"admin"},
		Clearance: "secret",
		CreatedAt: time.Now().Add(-9 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(m.cfg.SessionFile, data, 0o600))

	_, ok := m.CheckExistingSession()
	assert.False(t, ok)
	_, err = os.Stat(m.cfg.SessionFile)
	assert.True(t, os.IsNotExist(err))
}

func TestCorruptSessionRemoved(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, os.WriteFile(m.cfg.SessionFile, []byte("{not json"), 0o600))

	_, ok := m.CheckExistingSession()
	assert.False(t, ok)
	_, err := os.Stat(m.cfg.SessionFile)
	assert.True(t, os.IsNotExist(err))
}

func TestAuthenticateFlow(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Authenticate("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	s, err := m.Authenticate("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", s.Username)

	// Existing session wins over fresh credentials.
	again, err := m.Authenticate("user", "user123")
	require.NoError(t, err)
	assert.Equal(t, "admin", again.Username)
}

func TestDevBypass(t *testing.T) {
	cfg := config.Load()
	cfg.Environment = "development"
	cfg.SessionFile = filepath.Join(t.TempDir(), "session.json")
	m := NewManager(cfg, zap.NewNop())

	s, err := m.Authenticate("", "")
	require.NoError(t, err)
	assert.Equal(t, "admin", s.Username)
}

func TestClearanceOrdering(t *testing.T) {
	s := Session{Clearance: "secret"}
	assert.True(t, s.HasClearance("public"))
	assert.True(t, s.HasClearance("confidential"))
	assert.True(t, s.HasClearance("secret"))
	assert.False(t, s.HasClearance("top_secret"))
	assert.False(t, s.HasClearance("cosmic"))

	unknown := Session{Clearance: "mystery"}
	assert.False(t, unknown.HasClearance("public"))
}

func TestRoles(t *testing.T) {
	s := Session{Roles: []string{"analyst", "user"}}
	assert.True(t, s.HasRole("analyst"))
	assert.False(t, s.HasRole("admin"))
	assert.True(t, s.HasAnyRole("admin", "user"))
	assert.False(t, s.HasAnyRole("admin", "auditor"))
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager(t)
	s, err := m.CreateSession("admin")
	require.NoError(t, err)

	token, err := m.IssueToken(s)
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Contains(t, claims.Roles, "admin")
	assert.Equal(t, "secret", claims.Clearance)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	m := newTestManager(t)
	s, err := m.CreateSession("user")
	require.NoError(t, err)
	token, err := m.IssueToken(s)
	require.NoError(t, err)

	_, err = m.ParseToken(token + "x")
	assert.Error(t, err)

	other := newTestManager(t)
	other.cfg.JWTSecret = "different"
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestRefreshSession(t *testing.T) {
	m := newTestManager(t)
	s, err := m.CreateSession("user")
	require.NoError(t, err)

	refreshed, err := m.RefreshSession()
	require.NoError(t, err)
	assert.False(t, refreshed.ExpiresAt.Before(s.ExpiresAt))

	require.NoError(t, m.Logout())
	_, err = m.RefreshSession()
	assert.Error(t, err)
}
