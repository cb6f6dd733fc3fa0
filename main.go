package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gramx-admin-gateway/cache"
	"gramx-admin-gateway/handlers"
	"gramx-admin-gateway/models"
	"gramx-admin-gateway/services"
	"gramx-admin-gateway/utils"
	"gramx-admin-gateway/workers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	upstreamURL := os.Getenv("UPSTREAM_API_URL")
	if upstreamURL == "" {
		log.Fatal("UPSTREAM_API_URL environment variable not set")
	}
	gateway, err := services.NewGateway(upstreamURL)
	if err != nil {
		log.Fatal("failed to configure upstream gateway: ", err)
	}

	sessionPath := os.Getenv("SESSION_STATE_FILE")
	if sessionPath == "" {
		sessionPath = "./data/session.json"
	}
	sessions := services.NewSessionStore(sessionPath, gateway)
	sessions.Restore()

	cacheTTL := 30 * time.Second
	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("invalid CACHE_TTL %q: %v", raw, err)
		}
		cacheTTL = parsed
	}
	store := cache.New(cacheTTL)

	notifier := services.NewNotifier()
	adminService := services.NewAdminService(gateway, sessions, os.Getenv("TASKS_ROUTE_PREFIX"), store, notifier)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Mirror read model is optional: without a database the gateway still
	// serves everything, minus snapshot search and the stale overview.
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatal("failed to connect to database: ", err)
		}
		if err := db.AutoMigrate(
			&models.UserMirror{},
			&models.TaskMirror{},
			&models.LeaderboardMirror{},
			&models.BatchMirror{},
		); err != nil {
			log.Fatal("failed to migrate mirror tables: ", err)
		}
		adminService.Mirrors = services.NewMirrorService(db)

		snapshotInterval := time.Minute
		if raw := os.Getenv("SNAPSHOT_INTERVAL"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				log.Fatalf("invalid SNAPSHOT_INTERVAL %q: %v", raw, err)
			}
			snapshotInterval = parsed
		}
		workers.NewSnapshotWorker(db, adminService, snapshotInterval).Start(ctx)
	} else {
		log.Println("⚠️  DATABASE_URL not set — mirror read model disabled")
	}

	if err := utils.InitR2(); err != nil {
		log.Printf("⚠️  %v — profile image uploads disabled", err)
	}

	scheduler, err := adminService.StartRefreshScheduler(30 * time.Second)
	if err != nil {
		log.Fatal("failed to start cache refresh scheduler: ", err)
	}

	// Best-effort live channel: only meaningful when a session was restored,
	// since the socket is keyed by the operator identity.
	var channel *services.Channel
	if socketURL := os.Getenv("UPSTREAM_SOCKET_URL"); socketURL != "" {
		if sess, ok := sessions.Current(); ok {
			channel, err = services.NewChannel(socketURL, sess.User.Email)
			if err != nil {
				log.Fatal("invalid UPSTREAM_SOCKET_URL: ", err)
			}
			channel.On(services.ChannelEventNotification, func(data json.RawMessage) {
				var note services.ChannelNotification
				if err := json.Unmarshal(data, &note); err != nil || note.Text == "" {
					return
				}
				if note.Type == services.OutcomeError {
					notifier.Error(note.Text)
				} else {
					notifier.Success(note.Text)
				}
			})
			channel.On(services.ChannelEventLeaderboardUpdate, func(data json.RawMessage) {
				store.Invalidate(services.LeaderboardCacheKey)
				notifier.CollectionChanged(services.LeaderboardCacheKey)
			})
			if err := channel.Connect(ctx); err != nil {
				log.Printf("⚠️  Live channel unavailable: %v", err)
				channel = nil
			}
		} else {
			log.Println("⚠️  No restored session — live channel stays off until next restart after login")
		}
	}

	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		BodyLimit:   10 * 1024 * 1024, // profile images
	})

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("⚠️  ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	handlers.SetupAuthRoutes(app, adminService)
	handlers.SetupAdminRoutes(app, adminService)
	handlers.SetupEventRoutes(app, adminService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Admin gateway running on http://localhost:%s", port)
	log.Printf("✅ Proxying upstream API at %s", upstreamURL)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if channel != nil {
		channel.Close()
	}
	if err := scheduler.Shutdown(); err != nil {
		log.Printf("Scheduler shutdown error: %v", err)
	}
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
