// services/admin_batches.go
package services

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"gramx-admin-gateway/models"
)

// cachedBatches serves the batch collection through the cache.
func (s *AdminService) cachedBatches(ctx context.Context) ([]models.Batch, error) {
	data, err := s.Cache.Get(ctx, BatchesCacheKey, func(ctx context.Context) (interface{}, error) {
		return s.Batches.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	batches, _ := data.([]models.Batch)
	return batches, nil
}

func (s *AdminService) GetBatches(c *fiber.Ctx) error {
	batches, err := s.cachedBatches(c.Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(batches)
}

func (s *AdminService) GetBatch(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := s.Cache.Get(c.Context(), BatchesCacheKey+"/"+id, func(ctx context.Context) (interface{}, error) {
		return s.Batches.Get(ctx, id)
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(data)
}

func (s *AdminService) CreateBatch(c *fiber.Ctx) error {
	var input models.BatchInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	batch, err := s.Batches.Create(c.Context(), input)
	if err != nil {
		return s.mutationFailed(c, err, "Failed to create batch")
	}
	s.Cache.Invalidate(s.Batches.MutationKeys("")...)
	s.Notifier.Success("Batch created successfully")
	return c.Status(fiber.StatusCreated).JSON(batch)
}

func (s *AdminService) UpdateBatch(c *fiber.Ctx) error {
	id := c.Params("id")
	var input models.BatchInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	batch, err := s.Batches.Update(c.Context(), id, input)
	if err != nil {
		return s.mutationFailed(c, err, "Failed to update batch")
	}
	s.Cache.Invalidate(s.Batches.MutationKeys(id)...)
	s.Notifier.Success("Batch updated successfully")
	return c.JSON(batch)
}

func (s *AdminService) DeleteBatch(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.Batches.Delete(c.Context(), id); err != nil {
		return s.mutationFailed(c, err, "Failed to delete batch")
	}
	s.Cache.Invalidate(s.Batches.MutationKeys(id)...)
	s.Notifier.Success("Batch deleted successfully")
	return c.JSON(fiber.Map{"message": "batch deleted"})
}
