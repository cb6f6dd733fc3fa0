package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gramx-admin-gateway/services"
)

func TestLoginRateLimitAllowsBurstThenDenies(t *testing.T) {
	app := fiber.New()
	app.Post("/auth/login", LoginRateLimit(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// The burst budget is 5 attempts; the sixth rapid attempt is refused.
	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/auth/login", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "attempt %d should pass", i+1)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/auth/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func newAuthedStore(t *testing.T, token string) *services.SessionStore {
	t.Helper()
	gw, err := services.NewGateway("http://localhost:1")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "session.json")
	state := `{"adminToken":"` + token + `","adminIdentity":{"email":"ada@gramx.io","name":"Ada","role":"admin"}}`
	require.NoError(t, os.WriteFile(path, []byte(state), 0o600))

	store := services.NewSessionStore(path, gw)
	store.Restore()
	return store
}

func TestSessionAuthMiddleware(t *testing.T) {
	store := newAuthedStore(t, "tok-mw")

	app := fiber.New()
	app.Get("/secure", SessionAuthMiddleware(store), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"email": c.Locals("operator_email")})
	})

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer nope")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer tok-mw")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSSEAuthMiddleware(t *testing.T) {
	store := newAuthedStore(t, "tok-sse")

	app := fiber.New()
	app.Get("/events", SSEAuthMiddleware(store), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/events", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "missing token is a client error")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/events?token=nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/events?token=tok-sse", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
