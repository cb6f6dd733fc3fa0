// services/admin_users.go
package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"gramx-admin-gateway/models"
	"gramx-admin-gateway/utils"
)

// cachedUsers serves the user collection through the cache.
func (s *AdminService) cachedUsers(ctx context.Context) ([]models.User, error) {
	data, err := s.Cache.Get(ctx, UsersCacheKey, func(ctx context.Context) (interface{}, error) {
		return s.Users.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	users, _ := data.([]models.User)
	return users, nil
}

func (s *AdminService) GetUsers(c *fiber.Ctx) error {
	users, err := s.cachedUsers(c.Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(users)
}

func (s *AdminService) GetUser(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := s.Cache.Get(c.Context(), UsersCacheKey+"/"+id, func(ctx context.Context) (interface{}, error) {
		return s.Users.Get(ctx, id)
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(data)
}

func (s *AdminService) CreateUser(c *fiber.Ctx) error {
	var input models.UserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := s.Users.Create(c.Context(), input)
	if err != nil {
		return s.mutationFailed(c, err, "Failed to create user")
	}
	s.Cache.Invalidate(s.Users.MutationKeys("")...)
	s.Notifier.Success("User created successfully")
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (s *AdminService) UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")
	var input models.UserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := s.Users.Update(c.Context(), id, input)
	if err != nil {
		return s.mutationFailed(c, err, "Failed to update user")
	}
	s.Cache.Invalidate(s.Users.MutationKeys(id)...)
	s.Notifier.Success("User updated successfully")
	return c.JSON(user)
}

func (s *AdminService) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.Users.Delete(c.Context(), id); err != nil {
		return s.mutationFailed(c, err, "Failed to delete user")
	}
	s.Cache.Invalidate(s.Users.MutationKeys(id)...)
	s.Notifier.Success("User deleted successfully")
	return c.JSON(fiber.Map{"message": "user deleted"})
}

// UploadUserImage stores a profile image in R2 and points the upstream user
// record at it.
func (s *AdminService) UploadUserImage(c *fiber.Ctx) error {
	id := c.Params("id")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}

	ext := filepath.Ext(fileHeader.Filename)
	base := strings.TrimSuffix(fileHeader.Filename, ext)
	key := fmt.Sprintf("profiles/%s-%s%s", slug.Make(base), uuid.NewString(), ext)

	imageURL, err := utils.UploadProfileImage(c.Context(), fileHeader, key)
	if err != nil {
		return s.mutationFailed(c, err, "Failed to upload image")
	}

	user, err := s.Users.Update(c.Context(), id, models.UserInput{ProfileImage: imageURL})
	if err != nil {
		return s.mutationFailed(c, err, "Failed to update user")
	}
	s.Cache.Invalidate(s.Users.MutationKeys(id)...)
	s.Notifier.Success("Profile image updated successfully")
	return c.JSON(user)
}
