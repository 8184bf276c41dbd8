// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	storageHealthChecker func() bool
	aiAvailable          func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Storage   string `json:"storage"`
	AI        string `json:"ai"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(storageHealthChecker func() bool, aiAvailable func() bool) *HealthController {
	return &HealthController{
		storageHealthChecker: storageHealthChecker,
		aiAvailable:          aiAvailable,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies. The
// API keeps serving from memory when storage is down, so status stays "ok".
func (h *HealthController) Check(c *gin.Context) {
	storageStatus := "disconnected"
	if h.storageHealthChecker != nil && h.storageHealthChecker() {
		storageStatus = "connected"
	}

	aiStatus := "not_configured"
	if h.aiAvailable != nil && h.aiAvailable() {
		aiStatus = "configured"
	}

	response := HealthResponse{
		Status:    "ok",
		Storage:   storageStatus,
		AI:        aiStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}
