package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/ai-eco-analytics/internal/auth"
	"github.com/PratikDhanave/ai-eco-analytics/internal/config"
	"github.com/PratikDhanave/ai-eco-analytics/internal/handlers"
	"github.com/PratikDhanave/ai-eco-analytics/internal/middleware"
)

// NewRouter wires public endpoints and the key-protected write APIs.
// Public: /health, /ready and every GET
// Protected (when API_KEYS is set): every POST
// Rate limited: routes that call the generation service
func NewRouter(cfg config.Config, comp *Components) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: memory and degraded stores are always ready; a durable store must answer a ping.
	// buffered is the in-memory event count, which covers every event since start.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		mode, buffered := comp.Store.Mode(), comp.Store.Buffered()
		if err := comp.Store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready", "store": mode, "buffered": buffered, "error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "store": mode, "buffered": buffered})
	})

	guard := auth.APIKeyMiddleware(cfg.APIKeys)
	limit := middleware.RateLimit(cfg.GenAIRatePerSec, cfg.GenAIBurst)

	handlers.RegisterEventRoutes(r, comp.Store, guard)
	handlers.RegisterMetricRoutes(r, comp.Analytics)
	handlers.RegisterCatalogRoutes(r, comp.Catalog, comp.Simulator)
	handlers.RegisterUserRoutes(r, comp.Users, comp.Recommend, guard)
	handlers.RegisterIotRoutes(r, comp.Iot, guard)
	handlers.RegisterMentorRoutes(r, comp.Catalog, comp.Mentor, guard, limit)

	return r
}
