// services/admin_tasks.go
package services

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"gramx-admin-gateway/models"
)

// cachedTasks serves the task collection through the cache.
func (s *AdminService) cachedTasks(ctx context.Context) ([]models.Task, error) {
	data, err := s.Cache.Get(ctx, TasksCacheKey, func(ctx context.Context) (interface{}, error) {
		return s.Tasks.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	tasks, _ := data.([]models.Task)
	return tasks, nil
}

func (s *AdminService) GetTasks(c *fiber.Ctx) error {
	tasks, err := s.cachedTasks(c.Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(tasks)
}

func (s *AdminService) GetTask(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := s.Cache.Get(c.Context(), TasksCacheKey+"/"+id, func(ctx context.Context) (interface{}, error) {
		return s.Tasks.Get(ctx, id)
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(data)
}

func (s *AdminService) CreateTask(c *fiber.Ctx) error {
	var input models.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	task, err := s.Tasks.Create(c.Context(), input)
	if err != nil {
		return s.mutationFailed(c, err, "Failed to create task")
	}
	s.Cache.Invalidate(s.Tasks.MutationKeys("")...)
	s.Notifier.Success("Task created successfully")
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (s *AdminService) UpdateTask(c *fiber.Ctx) error {
	id := c.Params("id")
	var input models.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	task, err := s.Tasks.Update(c.Context(), id, input)
	if err != nil {
		return s.mutationFailed(c, err, "Failed to update task")
	}
	s.Cache.Invalidate(s.Tasks.MutationKeys(id)...)
	s.Notifier.Success("Task updated successfully")
	return c.JSON(task)
}

func (s *AdminService) DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.Tasks.Delete(c.Context(), id); err != nil {
		return s.mutationFailed(c, err, "Failed to delete task")
	}
	s.Cache.Invalidate(s.Tasks.MutationKeys(id)...)
	s.Notifier.Success("Task deleted successfully")
	return c.JSON(fiber.Map{"message": "task deleted"})
}
