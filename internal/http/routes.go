package http

import (
	"time"

	"timer_diary/internal/config"
	"timer_diary/internal/http/handlers"
	"timer_diary/internal/http/middleware"
	"timer_diary/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, version string) {
	RegisterRoutesWithConfig(r, db, version, nil)
}

func RegisterRoutesWithConfig(r *gin.Engine, db *pgxpool.Pool, version string, cfg *config.Config) {
	hub := ws.NewHub()
	go hub.Run()

	h := handlers.NewHandler(db, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateLimit := 120
	apiRateWindow := time.Minute
	if cfg != nil {
		apiRateLimit = cfg.APIRateLimit
		apiRateWindow = time.Duration(cfg.APIRateWindow) * time.Second
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	rl := middleware.RateLimit(apiRateLimit, apiRateWindow)

	// Diary API
	r.GET("/dates", rl, h.ListDates)
	r.DELETE("/dates/:id", rl, h.DeleteDate)
	r.GET("/logs", rl, h.GetLogs)
	r.POST("/logs/create", rl, h.CreateLog)
	r.PATCH("/logs/:id", rl, h.UpdateLog)
	r.DELETE("/logs/:id", rl, h.DeleteLog)

	// Change feed for browsing clients
	r.GET("/ws", h.WS(hub))
}
