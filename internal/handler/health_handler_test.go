package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"nfeintake/internal/handler"
)

func ok(context.Context) error { return nil }

func TestHealthHandler_Readiness(t *testing.T) {
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	tests := []struct {
		name    string
		db      handler.PingFunc
		storage handler.Pinger
		status  int
		body    string
	}{
		{"all up", ok, handler.PingFunc(ok), http.StatusOK, `"status":"ok"`},
		{"no storage configured", ok, nil, http.StatusOK, `"status":"ok"`},
		{"db down", down, handler.PingFunc(ok), http.StatusServiceUnavailable, "database not reachable"},
		{"storage down", ok, handler.PingFunc(down), http.StatusServiceUnavailable, "storage not reachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(tt.db, tt.storage, zap.NewNop())
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)

			h.Readiness(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(handler.PingFunc(ok), nil, zap.NewNop())
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
