// middleware/session_auth.go
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"gramx-admin-gateway/services"
)

// SessionAuthMiddleware admits only requests that carry the active operator
// session's bearer token. The operator identity is attached to the request
// context for handlers.
func SessionAuthMiddleware(store *services.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := store.Current()
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "no active operator session",
			})
		}

		authHeader := c.Get("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			// No "Bearer " prefix — accept the raw value.
			token = authHeader
		}

		if token == "" || token != sess.Token {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid session token",
			})
		}

		c.Locals("operator_email", sess.User.Email)
		c.Locals("operator_role", string(sess.User.Role))
		return c.Next()
	}
}
