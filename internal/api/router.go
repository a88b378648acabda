package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/floorsheet/internal/metrics"
	"github.com/guttosm/floorsheet/internal/middleware"
)

// RequestTimeout bounds the context of every API request.
const RequestTimeout = 10 * time.Second

// NewRouter builds the gin engine: global middlewares, a per-request
// timeout, swagger docs, /metrics and the /api/v1 routes.
//
// m may be nil, in which case request metrics and /metrics are not mounted.
// Health probes are registered separately by HealthHandler.
func NewRouter(handler *Handler, m *metrics.Metrics) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
	)
	if m != nil {
		router.Use(middleware.RequestMetrics(m))
	}

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), RequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger / metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/brokers", handler.ListBrokers)
		v1.GET("/brokers/lookup", handler.LookupBroker)
		v1.GET("/runs/latest", handler.LatestRun)
	}

	return router
}
