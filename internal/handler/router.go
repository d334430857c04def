package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yourEmotion/blog/internal/middleware"
	"github.com/yourEmotion/blog/internal/service"
	"go.uber.org/zap"
)

type RouterOptions struct {
	SSL bool
	// ServeMetrics mounts /metrics on this router instead of a separate listener.
	ServeMetrics bool
}

// NewRouter wires the post routes, health check and middleware around store.
// Post routes are served both at the root and under /api.
func NewRouter(store service.PostStore, opts RouterOptions) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogging(),
		middleware.Metrics(),
		middleware.SecurityHeaders(opts.SSL),
	)

	posts := NewPostHandler(store)
	posts.Register(router)
	posts.Register(router.Group("/api"))

	router.GET("/healthz", healthCheck(store))
	if opts.ServeMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	return router
}

func healthCheck(store service.PostStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			zap.L().Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not available"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
