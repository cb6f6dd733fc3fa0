// services/session_store.go
package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"gramx-admin-gateway/models"
)

// sessionFile is the persisted session state. The two fixed keys mirror what
// the dashboard kept in browser storage; nothing outside the session store
// reads this file.
type sessionFile struct {
	Token    string           `json:"adminToken"`
	Identity *models.Identity `json:"adminIdentity"`
}

// SessionStore holds the operator's session — token and identity together or
// nothing — and keeps the gateway credential in step with it. It survives
// process restarts through a small state file.
type SessionStore struct {
	path string
	gw   *Gateway

	mu   sync.RWMutex
	sess *models.Session
}

func NewSessionStore(path string, gw *Gateway) *SessionStore {
	return &SessionStore{path: path, gw: gw}
}

// Restore loads any persisted session and arms the gateway credential. An
// absent, unreadable or partially-written state file leaves the store empty;
// startup never fails on a bad session file.
func (s *SessionStore) Restore() {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var state sessionFile
	if err := json.Unmarshal(payload, &state); err != nil {
		log.Printf("⚠️  Ignoring corrupted session file %s: %v", s.path, err)
		return
	}
	if state.Token == "" || state.Identity == nil {
		// Token and identity are all-or-nothing; partial state counts as none.
		return
	}

	s.mu.Lock()
	s.sess = &models.Session{Token: state.Token, User: *state.Identity}
	s.mu.Unlock()
	s.gw.SetCredential(state.Token)
	log.Printf("✅ Restored operator session for %s", state.Identity.Email)
}

// Login exchanges credentials with the upstream. On success the session is
// persisted and the gateway credential armed; on failure the store is left
// exactly as it was and the normalized error is returned to the caller, who
// decides between inline display and navigation.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*models.Session, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var sess models.Session
	if err := s.gw.Post(ctx, "/admin-auth/login", payload, &sess); err != nil {
		return nil, NormalizeError(err)
	}
	if sess.Token == "" {
		return nil, &APIError{Message: "login response carried no token"}
	}

	if err := s.persist(&sess); err != nil {
		// The session is still valid for this process lifetime.
		log.Printf("⚠️  Failed to persist session: %v", err)
	}

	s.mu.Lock()
	s.sess = &sess
	s.mu.Unlock()
	s.gw.SetCredential(sess.Token)

	log.Printf("✅ Operator %s logged in (%s)", sess.User.Email, sess.User.Role)
	return &sess, nil
}

// Logout clears the persisted state and the gateway credential. Calling it on
// an already-empty session is a no-op.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	active := s.sess != nil
	s.sess = nil
	s.mu.Unlock()

	s.gw.ClearCredential()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  Failed to remove session file %s: %v", s.path, err)
	}
	if active {
		log.Println("👋 Operator session cleared")
	}
}

// Current returns the active session, if any.
func (s *SessionStore) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return models.Session{}, false
	}
	return *s.sess, true
}

func (s *SessionStore) persist(sess *models.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	payload, err := json.Marshal(sessionFile{Token: sess.Token, Identity: &sess.User})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
