// services/admin_leaderboard.go
package services

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"gramx-admin-gateway/models"
)

// cachedLeaderboard serves the leaderboard through the cache.
func (s *AdminService) cachedLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	data, err := s.Cache.Get(ctx, LeaderboardCacheKey, func(ctx context.Context) (interface{}, error) {
		return s.Leaderboard.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	entries, _ := data.([]models.LeaderboardEntry)
	return entries, nil
}

func (s *AdminService) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := s.cachedLeaderboard(c.Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(entries)
}

func (s *AdminService) GetLeaderboardEntry(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := s.Cache.Get(c.Context(), LeaderboardCacheKey+"/"+id, func(ctx context.Context) (interface{}, error) {
		return s.Leaderboard.Get(ctx, id)
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(data)
}

// CreateLeaderboardEntry submits a new entry. A below-threshold rejection
// comes back from the client as a normalized error and is handled exactly
// like any other failed mutation: one toast, cache untouched.
func (s *AdminService) CreateLeaderboardEntry(c *fiber.Ctx) error {
	var input models.LeaderboardEntryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	entry, err := s.Leaderboard.Create(c.Context(), input)
	if err != nil {
		return s.mutationFailed(c, err, "Failed to create leaderboard entry")
	}
	s.Cache.Invalidate(s.Leaderboard.MutationKeys("")...)
	s.Notifier.Success("Leaderboard entry created successfully")
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (s *AdminService) DeleteLeaderboardEntry(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.Leaderboard.Delete(c.Context(), id); err != nil {
		return s.mutationFailed(c, err, "Failed to delete leaderboard entry")
	}
	s.Cache.Invalidate(s.Leaderboard.MutationKeys(id)...)
	s.Notifier.Success("Leaderboard entry deleted successfully")
	return c.JSON(fiber.Map{"message": "leaderboard entry deleted"})
}
