package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is a dependency whose reachability gates readiness.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// PingContext calls f.
func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

const readinessTimeout = 3 * time.Second

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db      Pinger
	storage Pinger
	log     *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. storage may be nil.
func NewHealthHandler(db, storage Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, storage: storage, log: log}
}

// Liveness handles GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness handles GET /readyz
// @Summary Readiness probe
// @Description Reports ready when the database and the document bucket are reachable.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warn("healthHandler.Readiness: database not reachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: "database not reachable"})
		return
	}
	if h.storage != nil {
		if err := h.storage.PingContext(ctx); err != nil {
			h.log.Warn("healthHandler.Readiness: storage not reachable", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: "storage not reachable"})
			return
		}
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
