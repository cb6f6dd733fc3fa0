// services/admin_service.go
package services

import (
	"github.com/gofiber/fiber/v2"

	"gramx-admin-gateway/cache"
)

// AdminService wires the resource clients, the cache and the notifier behind
// the dashboard-facing routes. Reads go through the cache; mutations call the
// client directly, and on success invalidate the client's declared keys
// before notifying — a failed mutation leaves the cache untouched.
type AdminService struct {
	Sessions    *SessionStore
	Users       *UsersClient
	Tasks       *TasksClient
	Leaderboard *LeaderboardClient
	Batches     *BatchesClient
	Cache       *cache.Store
	Notifier    *Notifier

	// Mirrors is nil when no snapshot database is configured.
	Mirrors *MirrorService
}

func NewAdminService(gw *Gateway, sessions *SessionStore, tasksRoutePrefix string, store *cache.Store, notifier *Notifier) *AdminService {
	return &AdminService{
		Sessions:    sessions,
		Users:       NewUsersClient(gw),
		Tasks:       NewTasksClient(gw, tasksRoutePrefix),
		Leaderboard: NewLeaderboardClient(gw),
		Batches:     NewBatchesClient(gw),
		Cache:       store,
		Notifier:    notifier,
	}
}

// respondError answers a read failure without toasting; list pages render
// their own error state.
func (s *AdminService) respondError(c *fiber.Ctx, err error) error {
	apiErr := NormalizeError(err)
	return c.Status(upstreamStatus(apiErr)).JSON(fiber.Map{"error": apiErr.Message})
}

// mutationFailed reports a failed mutation: exactly one toast, cache
// untouched.
func (s *AdminService) mutationFailed(c *fiber.Ctx, err error, fallback string) error {
	apiErr := NormalizeError(err)
	msg := apiErr.Message
	if msg == "" {
		msg = fallback
	}
	s.Notifier.Error(msg)
	return c.Status(upstreamStatus(apiErr)).JSON(fiber.Map{"error": msg})
}

// upstreamStatus maps a normalized error onto the status this service
// answers with. Transport failures carry no status and surface as 502.
func upstreamStatus(apiErr *APIError) int {
	if apiErr.Status != 0 {
		return apiErr.Status
	}
	return fiber.StatusBadGateway
}
