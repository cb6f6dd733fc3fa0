// services/admin_overview.go
package services

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetOverview returns the dashboard's headline counts from the same cached
// collections the list pages use. When the upstream is unreachable and a
// mirror database is configured, the last synced snapshot counts are served
// instead, flagged as stale.
func (s *AdminService) GetOverview(c *fiber.Ctx) error {
	ctx := c.Context()

	users, err := s.cachedUsers(ctx)
	if err != nil {
		return s.overviewFallback(c, err)
	}
	tasks, err := s.cachedTasks(ctx)
	if err != nil {
		return s.overviewFallback(c, err)
	}
	entries, err := s.cachedLeaderboard(ctx)
	if err != nil {
		return s.overviewFallback(c, err)
	}
	batches, err := s.cachedBatches(ctx)
	if err != nil {
		return s.overviewFallback(c, err)
	}

	return c.JSON(fiber.Map{
		"users":       len(users),
		"tasks":       len(tasks),
		"leaderboard": len(entries),
		"batches":     len(batches),
	})
}

func (s *AdminService) overviewFallback(c *fiber.Ctx, err error) error {
	if s.Mirrors == nil {
		return s.respondError(c, err)
	}
	counts, mirrorErr := s.Mirrors.Counts()
	if mirrorErr != nil {
		log.Printf("⚠️  Overview mirror fallback failed: %v", mirrorErr)
		return s.respondError(c, err)
	}
	counts["stale"] = true
	return c.JSON(counts)
}
