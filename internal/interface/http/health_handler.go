package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/anon-inbox/pkg/helpers"
	"github.com/oksasatya/anon-inbox/pkg/response"
)

type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	DB     HealthChecker
	Logger *logrus.Logger
}

func NewHealthHandler(db HealthChecker, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{DB: db, Logger: logger}
}

// Health GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.DB.Health(c.Request.Context()); err != nil {
		helpers.LogError(h.Logger, "database health check failed", err, nil)
		response.Error[any](c, http.StatusServiceUnavailable, "database unavailable", "UPSTREAM")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"database": "ok"}, "healthy", nil)
}
