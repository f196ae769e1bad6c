// Package auth implements mock credential validation, flat-file
// session persistence and JWT issuance. Credentials are a fixed
// development table; there is no directory integration.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/govsecure/platform/src/config"
)

// sessionTTL is how long a session stays valid.
const sessionTTL = 8 * time.Hour

// validateDelay simulates backend authentication latency.
const validateDelay = 100 * time.Millisecond

// ErrInvalidCredentials is returned when username or password do not
// match the credential table.
var ErrInvalidCredentials = errors.New("invalid username or password")

// clearanceOrder ranks clearance levels from lowest to highest.
var clearanceOrder = map[string]int{
	"public":       0,
	"confidential": 1,
	"secret":       2,
	"top_secret":   3,
}

type account struct {
	passwordHash []byte
	roles        []string
	clearance    string
}

// accounts is the development credential table. Hashes are derived at
// startup so no plaintext comparison happens on the auth path.
var accounts = map[string]account{}

func init() {
	for user, entry := range map[string]struct {
		password  string
		roles     []string
		clearance string
	}{
		"admin":   {"admin123", []string{"admin", "user"}, "secret"},
		"user":    {"user123", []string{"user"}, "public"},
		"analyst": {"analyst123", []string{"analyst", "user"}, "confidential"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(entry.password), bcrypt.MinCost)
		if err != nil {
			panic(fmt.Sprintf("auth: hash credential table: %v", err))
		}
		accounts[user] = account{passwordHash: hash, roles: entry.roles, clearance: entry.clearance}
	}
}

// Session is a persisted login session.
type Session struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	Clearance string    `json:"clearance"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired() bool { return time.Now().After(s.ExpiresAt) }

// HasRole reports whether the session carries the role.
func (s Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the session carries at least one of the
// roles.
func (s Session) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if s.HasRole(r) {
			return true
		}
	}
	return false
}

// HasClearance reports whether the session's clearance is at or above
// the required level. Unknown levels never pass.
func (s Session) HasClearance(required string) bool {
	have, ok := clearanceOrder[s.Clearance]
	if !ok {
		return false
	}
	need, ok := clearanceOrder[required]
	if !ok {
		return false
	}
	return have >= need
}

// Manager validates credentials and persists the active session to a
// flat JSON file.
type Manager struct {
	cfg config.Config
	log *zap.Logger
}

// NewManager builds a session manager.
func NewManager(cfg config.Config, log *zap.Logger) *Manager {
	return &Manager{cfg: cfg, log: log}
}

// Authenticate resolves a session: the development bypass first, then
// an existing unexpired session file, then the supplied credentials.
func (m *Manager) Authenticate(username, password string) (Session, error) {
	if m.cfg.IsDevelopment() && username == "" && password == "" {
		m.log.Warn("development auth bypass active")
		return m.CreateSession("admin")
	}
	if existing, ok := m.CheckExistingSession(); ok {
		return existing, nil
	}
	if !m.ValidateCredentials(username, password) {
		return Session{}, ErrInvalidCredentials
	}
	return m.CreateSession(username)
}

// ValidateCredentials checks a username/password pair against the
// credential table. Empty input always fails.
func (m *Manager) ValidateCredentials(username, password string) bool {
	if username == "" || password == "" {
		return false
	}
	time.Sleep(validateDelay)

	acct, ok := accounts[username]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)) == nil
}

// CreateSession creates and persists a session. Users outside the
// credential table get the default role set and public clearance.
func (m *Manager) CreateSession(username string) (Session, error) {
	acct, ok := accounts[username]
	if !ok {
		acct = account{roles: []string{"user"}, clearance: "public"}
	}
	now := time.Now()
	s := Session{
		UserID:    "user_" + username,
		Username:  username,
		Roles:     append([]string(nil), acct.roles...),
		Clearance: acct.clearance,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := m.save(s); err != nil {
		return Session{}, err
	}
	m.log.Info("session created",
		zap.String("username", username), zap.Time("expires_at", s.ExpiresAt))
	return s, nil
}

// CheckExistingSession loads the session file if present and valid.
// Expired or corrupt files are removed.
func (m *Manager) CheckExistingSession() (Session, bool) {
	data, err := os.ReadFile(m.cfg.SessionFile)
	if err != nil {
		return Session{}, false
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		m.log.Warn("removing corrupt session file", zap.Error(err))
		os.Remove(m.cfg.SessionFile)
		return Session{}, false
	}
	if s.Expired() {
		m.log.Info("removing expired session", zap.String("username", s.Username))
		os.Remove(m.cfg.SessionFile)
		return Session{}, false
	}
	return s, true
}

// RefreshSession extends the active session by the full TTL.
func (m *Manager) RefreshSession() (Session, error) {
	s, ok := m.CheckExistingSession()
	if !ok {
		return Session{}, errors.New("no active session")
	}
	s.ExpiresAt = time.Now().Add(sessionTTL)
	if err := m.save(s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Logout removes the session file.
func (m *Manager) Logout() error {
	err := os.Remove(m.cfg.SessionFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	m.log.Info("session cleared")
	return nil
}

func (m *Manager) save(s Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(m.cfg.SessionFile, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
