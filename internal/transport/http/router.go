package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-service/internal/pkg/metrics"
)

// HealthChecker reports whether the store is reachable.
type HealthChecker func(ctx context.Context) error

// RouterOptions carries everything NewRouter mounts.
type RouterOptions struct {
	Catalog     *CatalogHandler
	Health      HealthChecker
	Metrics     *metrics.HTTPMetrics
	MetricsPath string
	CORSOrigins []string
	Logger      *zap.Logger
}

// NewRouter builds the gin engine: middleware first, then /api, /healthz and /metrics.
func NewRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// 1. Cross-cutting middleware; recovery runs inside request id so panics are tagged
	r.Use(RequestIDMiddleware(), AccessLogMiddleware(opts.Logger), RecoveryMiddleware(opts.Logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	r.Use(CORSMiddleware(opts.CORSOrigins))

	// 2. Catalog API
	opts.Catalog.Register(r.Group("/api"))

	// 3. Operational endpoints
	r.GET("/healthz", healthHandler(opts.Health))
	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(opts.Metrics.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: labelNotFound, Message: "no route for " + c.Request.URL.Path})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed", Message: c.Request.Method + " is not supported"})
	})

	return r
}

func healthHandler(check HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
