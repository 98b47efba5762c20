// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/granabot/backend/internal/integration/entrypoint/controller"
	"github.com/granabot/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	recurrenceController *controller.RecurrenceController
	alertController      *controller.AlertController
	apiRateLimiter       *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	recurrenceController *controller.RecurrenceController,
	alertController *controller.AlertController,
	apiRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		recurrenceController: recurrenceController,
		alertController:      alertController,
		apiRateLimiter:       apiRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Recurrence rule routes (require authentication)
		if r.recurrenceController != nil && r.authMiddleware != nil {
			recurrences := v1.Group("/recurrences")
			recurrences.Use(r.authMiddleware.Authenticate())
			if r.apiRateLimiter != nil {
				recurrences.Use(r.apiRateLimiter.Middleware())
			}
			{
				recurrences.GET("", r.recurrenceController.List)
				recurrences.POST("", r.recurrenceController.Create)
				recurrences.PATCH("/:id", r.recurrenceController.Update)
				recurrences.DELETE("/:id", r.recurrenceController.Delete)
			}
		}

		// Alert routes (require authentication)
		if r.alertController != nil && r.authMiddleware != nil {
			alerts := v1.Group("/alerts")
			alerts.Use(r.authMiddleware.Authenticate())
			{
				alerts.GET("", r.alertController.List)
				alerts.POST("/:code/pay", r.alertController.MarkPaid)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
