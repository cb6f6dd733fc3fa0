// middleware/sse_auth.go
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"gramx-admin-gateway/services"
)

// SSEAuthMiddleware validates the session token passed as a query parameter.
// EventSource cannot set request headers, so the event stream authenticates
// via ?token= instead of the Authorization header.
//
// Usage:
//
//	app.Get("/events", middleware.SSEAuthMiddleware(store), svc.StreamEvents)
func SSEAuthMiddleware(store *services.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimSpace(c.Query("token"))
		if token == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "missing token query parameter",
			})
		}

		sess, ok := store.Current()
		if !ok || token != sess.Token {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		c.Locals("operator_email", sess.User.Email)
		return c.Next()
	}
}
