package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"clinic-backend/internal/observability/metrics"
	"clinic-backend/internal/shared/apperror"
	"clinic-backend/internal/shared/middleware"
	"clinic-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		apperror.RegisterJSONTagNames(v)
	}

	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		metrics.GinMiddleware(),
	)

	// Outside the identity gate
	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/v1", middleware.IdentityMiddleware())
	{
		setupDoctorRoutes(v1, c)
		setupPatientRoutes(v1, c)
		setupAppointmentRoutes(v1, c)
	}

	return router
}

func setupDoctorRoutes(rg *gin.RouterGroup, c *container.Container) {
	h := c.DoctorHandler
	doctors := rg.Group("/doctor")
	{
		doctors.POST("", h.Create)
		doctors.GET("", h.List)
		doctors.GET("/search", h.Search)
		doctors.GET("/:id", h.Get)
		doctors.PUT("/:id", h.Update)
		doctors.DELETE("/:id", h.Delete)
	}
}

func setupPatientRoutes(rg *gin.RouterGroup, c *container.Container) {
	h := c.PatientHandler
	patients := rg.Group("/patient")
	{
		patients.POST("", h.Create)
		patients.GET("", h.List)
		patients.POST("/search", h.Search)
		patients.GET("/:id", h.Get)
		patients.PUT("/:id", h.Update)
		patients.DELETE("/:id", h.Delete)
	}
}

func setupAppointmentRoutes(rg *gin.RouterGroup, c *container.Container) {
	h := c.AppointmentHandler
	appointments := rg.Group("/appointment")
	{
		appointments.POST("", h.Create)
		appointments.GET("", h.List)
		appointments.GET("/doctor/:id", h.ListByDoctor)
		appointments.GET("/patient/:id", h.ListByPatient)
		appointments.PUT("/cancel/:id", h.Cancel)
		appointments.GET("/:id", h.Get)
		appointments.GET("/:id/events", h.History)
		appointments.PUT("/:id", h.Update)
		appointments.DELETE("/:id", h.Delete)
	}
}

// healthCheckHandler pings Postgres and Redis
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{}
		for name, err := range c.HealthCheck(checkCtx) {
			if err != nil {
				status = http.StatusServiceUnavailable
				checks[name] = err.Error()
				continue
			}
			checks[name] = "UP"
		}

		state := "UP"
		if status != http.StatusOK {
			state = "DOWN"
		}
		ctx.JSON(status, gin.H{
			"status":  state,
			"service": c.Config.App.Name,
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
