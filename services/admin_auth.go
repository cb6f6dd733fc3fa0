// services/admin_auth.go
package services

import (
	"github.com/gofiber/fiber/v2"
)

// Login exchanges operator credentials with the upstream. Failures come back
// inline rather than as toasts; the login page renders them itself.
func (s *AdminService) Login(c *fiber.Ctx) error {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	sess, err := s.Sessions.Login(c.Context(), creds.Email, creds.Password)
	if err != nil {
		apiErr := NormalizeError(err)
		return c.Status(upstreamStatus(apiErr)).JSON(fiber.Map{"error": apiErr.Message})
	}
	return c.JSON(sess)
}

// Logout ends the operator session and drops the cached collections that
// belonged to it. Idempotent.
func (s *AdminService) Logout(c *fiber.Ctx) error {
	s.Sessions.Logout()
	s.Cache.Clear()
	return c.JSON(fiber.Map{"message": "logged out"})
}

// GetSession returns the active operator identity.
func (s *AdminService) GetSession(c *fiber.Ctx) error {
	sess, ok := s.Sessions.Current()
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no active operator session"})
	}
	return c.JSON(fiber.Map{"user": sess.User})
}

// StreamEvents is the SSE feed of outcome toasts and collection-change hints.
func (s *AdminService) StreamEvents(c *fiber.Ctx) error {
	return s.Notifier.StreamSSE(c)
}
