// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	dbStatusConnected    = "connected"
	dbStatusDisconnected = "disconnected"
)

// HealthController reports service liveness and database reachability.
// The probe stays cheap: one ping through the injected checker, no
// engine or scheduler state.
type HealthController struct {
	dbHealthChecker func() bool
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
	}
}

// Check handles GET /health. The endpoint always answers 200 so load
// balancers keep the instance in rotation; the database field tells the
// operator whether alert generation can currently persist anything.
func (h *HealthController) Check(c *gin.Context) {
	database := dbStatusDisconnected
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		database = dbStatusConnected
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  database,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
