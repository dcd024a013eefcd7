package http

import (
	"time"

	"ledger_service/internal/config"
	"ledger_service/internal/http/handlers"
	"ledger_service/internal/http/middleware"
	"ledger_service/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, hub *ws.Hub, cfg *config.Config, version string) {
	h := handlers.NewHandler(db, hub, cfg.AnalyticsWeeks)
	healthHandler := handlers.NewHealthHandler(db, version)

	r.Use(middleware.Metrics())

	// Health checks (no rate limiting, no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))
	v1.Use(middleware.Auth())
	{
		// Users
		v1.POST("/users", h.CreateUser)
		v1.GET("/users", h.ListUsers)
		v1.PATCH("/users/:userId", h.PatchUserStatus)

		// Transactions: read side first, then the path-param routes
		v1.GET("/transactions", h.ListTransactions)
		v1.GET("/transactions/analysis", h.Analysis)
		v1.POST("/transactions/:userId", h.CreateTransaction)
		v1.PATCH("/transactions/:transactionId/user/:userId/rollback", h.RollbackTransaction)
	}

	// Live transaction event feed
	r.GET("/ws", h.Feed)
}
