package logging

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger for the given environment ("production" or "development")
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// GinLogger logs one line per request handled by a gin engine
func GinLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		logRequest(log, c.Request.Method, path, c.Writer.Status(), time.Since(start),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		)
	}
}

// HTTPLogger is the net/http (chi) counterpart of GinLogger
func HTTPLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logRequest(log, r.Method, r.URL.Path, status, time.Since(start),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Int("body_size", ww.BytesWritten()),
			)
		})
	}
}

func logRequest(log *zap.Logger, method, path string, status int, latency time.Duration, extra ...zap.Field) {
	fields := append([]zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
	}, extra...)

	switch {
	case status >= 500:
		log.Error("http_request", fields...)
	case status >= 400:
		log.Warn("http_request", fields...)
	default:
		log.Info("http_request", fields...)
	}
}
