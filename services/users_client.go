// services/users_client.go
package services

import (
	"context"

	"gramx-admin-gateway/models"
)

// Cache keys per resource collection. Each client declares the keys its
// mutations touch via MutationKeys, so invalidation is visible next to the
// client instead of inferred from call order.
const (
	UsersCacheKey       = "users"
	TasksCacheKey       = "tasks"
	LeaderboardCacheKey = "leaderboard"
	BatchesCacheKey     = "batches"
)

// UsersClient is the typed CRUD facade for platform users.
type UsersClient struct {
	gw *Gateway
}

func NewUsersClient(gw *Gateway) *UsersClient {
	return &UsersClient{gw: gw}
}

// MutationKeys lists the cache keys a mutation on the given user affects.
// An empty id means only the collection key.
func (c *UsersClient) MutationKeys(id string) []string {
	if id == "" {
		return []string{UsersCacheKey}
	}
	return []string{UsersCacheKey, UsersCacheKey + "/" + id}
}

func (c *UsersClient) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.gw.Get(ctx, "/admin/users", &users); err != nil {
		return nil, NormalizeError(err)
	}
	return users, nil
}

func (c *UsersClient) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := c.gw.Get(ctx, "/admin/users/"+id, &user); err != nil {
		return nil, NormalizeError(err)
	}
	return &user, nil
}

func (c *UsersClient) Create(ctx context.Context, input models.UserInput) (*models.User, error) {
	var user models.User
	if err := c.gw.Post(ctx, "/admin/users", input, &user); err != nil {
		return nil, NormalizeError(err)
	}
	return &user, nil
}

func (c *UsersClient) Update(ctx context.Context, id string, input models.UserInput) (*models.User, error) {
	var user models.User
	if err := c.gw.Put(ctx, "/admin/users/"+id, input, &user); err != nil {
		return nil, NormalizeError(err)
	}
	return &user, nil
}

func (c *UsersClient) Delete(ctx context.Context, id string) error {
	if err := c.gw.Delete(ctx, "/admin/users/"+id); err != nil {
		return NormalizeError(err)
	}
	return nil
}
