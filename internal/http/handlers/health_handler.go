package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/rishidar/freelance-connector/internal/dto"
	"github.com/rishidar/freelance-connector/internal/service"
	"github.com/rishidar/freelance-connector/internal/ws"
)

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	db       *sqlx.DB
	counters *service.CounterService
	hub      *ws.Hub
}

// NewHealthHandler создаёт новый health handler. db может быть nil,
// если счётчики хранятся в памяти.
func NewHealthHandler(db *sqlx.DB, counters *service.CounterService, hub *ws.Hub) *HealthHandler {
	return &HealthHandler{db: db, counters: counters, hub: hub}
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.counters.Ping(ctx); err != nil {
		checks["counters"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		checks["counters"] = "healthy"
	}

	if h.db != nil {
		stats := h.db.Stats()
		if stats.MaxOpenConnections > 0 && stats.OpenConnections >= stats.MaxOpenConnections {
			checks["connection_pool"] = "warning: pool exhausted"
		} else {
			checks["connection_pool"] = "healthy"
		}
	} else {
		checks["storage"] = "memory"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, dto.HealthResponse{
		Status:       status,
		Timestamp:    time.Now(),
		Checks:       checks,
		LiveSessions: h.hub.Counts(),
	})
}
