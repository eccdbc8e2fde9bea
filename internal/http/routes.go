package http

import (
	"taskboard/internal/config"
	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"
	"taskboard/internal/live"
	"taskboard/internal/service"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, bus *live.Bus, version string) {
	h := handlers.NewHandler(db, bus)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h)

	// Legacy /api routes kept for old clients
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(api, h)

	// Live query subscription
	hub := ws.NewHub(bus, service.NewTaskQueryService(db))
	r.GET("/ws", h.WS(hub))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	// Task reads
	api.GET("/tasks", h.ListTasks)
	api.GET("/tasks/enriched", h.ListEnriched)
	api.GET("/tasks/page", h.PageTasks)
	api.GET("/tasks/view", h.ViewTasks)
	api.GET("/tasks/:id/history", h.TaskHistory)

	// Task mutations
	api.POST("/tasks", h.CreateTask)
	api.PATCH("/tasks/:id/toggle-completed", h.ToggleCompleted)
	api.PATCH("/tasks/:id/toggle-important", h.ToggleImportant)
	api.POST("/tasks/toggle-all", h.ToggleAll)
	api.POST("/tasks/set-completed", h.SetAllCompleted)

	// Cross-task history feeds (activity dashboard)
	api.GET("/history/latest", h.LatestChanges)
	api.GET("/history/over-time", h.ChangesOverTime)

	// Users
	api.GET("/users", h.ListUsers)
	api.PATCH("/users/:id/color", h.UpdateUserColor)
	api.PATCH("/users/:id/image", h.UpdateUserImage)

	// Statistics
	api.GET("/stats", h.Stats)

	// Administrative surface
	admin := api.Group("/admin")
	admin.Use(middleware.AdminJWT())
	{
		admin.POST("/users", h.AddUsers)
		admin.POST("/seed", h.SeedTasks)
		admin.POST("/backfill-history", h.BackfillHistory)
		admin.POST("/truncate", h.Truncate)
	}
}
