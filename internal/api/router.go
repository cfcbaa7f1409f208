package api

import (
	"net/http"

	"burntest/internal/logging"
	"burntest/internal/metrics"
	"burntest/internal/orders"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the backend engine: the order API under /api plus health and metrics.
// A nil m disables /metrics.
func NewRouter(svc *orders.Service, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.GinLogger(logger.Named("http")), m.Middleware())

	h := NewOrderHandler(svc, m, logger)
	h.RegisterRoutes(r.Group("/api"))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	return r
}
