// handlers/routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gramx-admin-gateway/middleware"
	"gramx-admin-gateway/services"
)

// SetupAuthRoutes registers the session lifecycle routes. Login is rate
// limited per client IP; logout and session introspection require the active
// session token.
func SetupAuthRoutes(app *fiber.App, svc *services.AdminService) {
	auth := app.Group("/auth")
	auth.Post("/login", middleware.LoginRateLimit(), svc.Login)

	secured := auth.Group("/", middleware.SessionAuthMiddleware(svc.Sessions))
	secured.Post("/logout", svc.Logout)
	secured.Get("/session", svc.GetSession)
}

// SetupAdminRoutes registers the resource CRUD surface the dashboard pages
// call. Every route requires the active operator session.
func SetupAdminRoutes(app *fiber.App, svc *services.AdminService) {
	admin := app.Group("/admin", middleware.SessionAuthMiddleware(svc.Sessions))

	admin.Get("/overview", svc.GetOverview)

	// Users
	admin.Get("/users", svc.GetUsers)
	admin.Post("/users", svc.CreateUser)
	if svc.Mirrors != nil {
		admin.Get("/users/search", svc.Mirrors.SearchUsers)
	}
	admin.Get("/users/:id", svc.GetUser)
	admin.Put("/users/:id", svc.UpdateUser)
	admin.Delete("/users/:id", svc.DeleteUser)
	admin.Post("/users/:id/image", svc.UploadUserImage)

	// Tasks
	admin.Get("/tasks", svc.GetTasks)
	admin.Post("/tasks", svc.CreateTask)
	admin.Get("/tasks/:id", svc.GetTask)
	admin.Put("/tasks/:id", svc.UpdateTask)
	admin.Delete("/tasks/:id", svc.DeleteTask)

	// Leaderboard — positions are ranked upstream, so there is no update
	admin.Get("/leaderboard", svc.GetLeaderboard)
	admin.Post("/leaderboard", svc.CreateLeaderboardEntry)
	admin.Get("/leaderboard/:id", svc.GetLeaderboardEntry)
	admin.Delete("/leaderboard/:id", svc.DeleteLeaderboardEntry)

	// Batches
	admin.Get("/batches", svc.GetBatches)
	admin.Post("/batches", svc.CreateBatch)
	admin.Get("/batches/:id", svc.GetBatch)
	admin.Put("/batches/:id", svc.UpdateBatch)
	admin.Delete("/batches/:id", svc.DeleteBatch)
}

// SetupEventRoutes registers the SSE stream. EventSource cannot set headers,
// so the stream authenticates via query parameter.
func SetupEventRoutes(app *fiber.App, svc *services.AdminService) {
	app.Get("/events", middleware.SSEAuthMiddleware(svc.Sessions), svc.StreamEvents)
}
