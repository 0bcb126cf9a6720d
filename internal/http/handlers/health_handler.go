package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	service   string
	startedAt time.Time
	now       func() time.Time
}

// NewHealthHandler создаёт новый health handler.
func NewHealthHandler(service string, startedAt time.Time) *HealthHandler {
	return &HealthHandler{service: service, startedAt: startedAt, now: time.Now}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

// Health обрабатывает GET /health и GET /api/health.
func (h *HealthHandler) Health(c *gin.Context) {
	now := h.now()

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "OK",
		Service:   h.service,
		Timestamp: now.UTC(),
		Uptime:    now.Sub(h.startedAt).Seconds(),
	})
}
