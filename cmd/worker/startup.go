package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"clinic-backend/internal/observability/metrics"
	"clinic-backend/pkg/container"
)

// startServices runs startup health checks and serves /health, /ready and
// /metrics on WORKER_HEALTH_PORT.
func startServices(c *container.Container) error {
	log.Info().Msg("Clinic worker starting...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for name, err := range c.HealthCheck(ctx) {
		if err != nil {
			return fmt.Errorf("%s check failed: %w", name, err)
		}
		log.Info().Str("check", name).Msg("Health check OK")
	}

	go startHealthCheckServer(c)
	return nil
}

func startHealthCheckServer(c *container.Container) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": "clinic-worker"})
	})
	r.GET("/ready", func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		for name, err := range c.HealthCheck(checkCtx) {
			if err != nil {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_READY", "failed": name})
				return
			}
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "READY"})
	})
	r.GET("/metrics", metrics.Handler())

	addr := ":" + c.Config.Queue.HealthPort
	log.Info().Str("addr", addr).Msg("[Health] Starting health check server")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
