package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"people-service/internal/shared/middleware"
	"people-service/internal/shared/response"
	"people-service/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.GET("/health", healthCheckHandler(c))

	setupPersonRoutes(router, c)

	return router
}

// ========================================
// PERSON ROUTES
// ========================================
func setupPersonRoutes(r gin.IRouter, c *container.Container) {
	c.PersonHandler.RegisterRoutes(r)
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		// Cache is optional; only the record store decides health
		checks := c.HealthCheck(checkCtx)
		if checks["database"] != "ok" {
			response.ServiceUnavailable(ctx, "unhealthy", checks)
			return
		}

		response.JSON(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"service": c.Config.App.Name,
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
