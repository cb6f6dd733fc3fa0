package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gramx-admin-gateway/models"
)

func newLoginUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin-auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(models.Session{
			Token: "tok-abc",
			User:  models.Identity{Email: creds.Email, Name: "Ada", Role: models.RoleAdmin},
		})
	}))
}

func TestLoginPersistsSessionAndArmsCredential(t *testing.T) {
	upstream := newLoginUpstream(t)
	defer upstream.Close()

	gw, err := NewGateway(upstream.URL)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store := NewSessionStore(path, gw)

	sess, err := store.Login(context.Background(), "ada@gramx.io", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", sess.Token)
	assert.Equal(t, models.RoleAdmin, sess.User.Role)
	assert.True(t, gw.HasCredential())

	current, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "ada@gramx.io", current.User.Email)

	// The state file mirrors the two fixed browser-storage keys.
	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.Contains(t, raw, "adminToken")
	assert.Contains(t, raw, "adminIdentity")
}

func TestLoginFailureLeavesStoreUntouched(t *testing.T) {
	upstream := newLoginUpstream(t)
	defer upstream.Close()

	gw, err := NewGateway(upstream.URL)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewSessionStore(path, gw)

	_, err = store.Login(context.Background(), "ada@gramx.io", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	_, ok := store.Current()
	assert.False(t, ok)
	assert.False(t, gw.HasCredential())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRestoreRoundTrip(t *testing.T) {
	upstream := newLoginUpstream(t)
	defer upstream.Close()

	gw, err := NewGateway(upstream.URL)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewSessionStore(path, gw)
	_, err = first.Login(context.Background(), "ada@gramx.io", "hunter2")
	require.NoError(t, err)

	// A new process restores the same session from disk.
	gw2, err := NewGateway(upstream.URL)
	require.NoError(t, err)
	second := NewSessionStore(path, gw2)
	second.Restore()

	sess, ok := second.Current()
	require.True(t, ok)
	assert.Equal(t, "tok-abc", sess.Token)
	assert.Equal(t, "ada@gramx.io", sess.User.Email)
	assert.True(t, gw2.HasCredential())
}

func TestRestoreIgnoresCorruptFile(t *testing.T) {
	gw, err := NewGateway("http://localhost:1")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewSessionStore(path, gw)
	store.Restore()

	_, ok := store.Current()
	assert.False(t, ok)
	assert.False(t, gw.HasCredential())
}

func TestRestoreTreatsPartialStateAsNone(t *testing.T) {
	gw, err := NewGateway("http://localhost:1")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"adminToken":"tok-abc"}`), 0o600))

	store := NewSessionStore(path, gw)
	store.Restore()

	_, ok := store.Current()
	assert.False(t, ok, "token without identity counts as no session")
	assert.False(t, gw.HasCredential())
}

func TestLogoutIsIdempotent(t *testing.T) {
	upstream := newLoginUpstream(t)
	defer upstream.Close()

	gw, err := NewGateway(upstream.URL)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewSessionStore(path, gw)

	_, err = store.Login(context.Background(), "ada@gramx.io", "hunter2")
	require.NoError(t, err)

	store.Logout()
	_, ok := store.Current()
	assert.False(t, ok)
	assert.False(t, gw.HasCredential())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Logging out again must not fail or resurrect anything.
	store.Logout()
	_, ok = store.Current()
	assert.False(t, ok)
}
