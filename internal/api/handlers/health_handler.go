package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler answers liveness and readiness probes. Both checks hinge on
// the database; the SMTP listener has no meaningful probe beyond the process
// being up.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// pingDatabase reports whether the database connection is usable
func (h *HealthHandler) pingDatabase() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Health handles GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	resp := HealthResponse{
		Status:   "healthy",
		Services: map[string]string{"database": "healthy"},
	}
	statusCode := http.StatusOK

	if err := h.pingDatabase(); err != nil {
		resp.Status = "unhealthy"
		resp.Services["database"] = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, resp)
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	if err := h.pingDatabase(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "database ping failed",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
	})
}
