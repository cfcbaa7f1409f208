package ui

import (
	"context"
	"net/http"
	"time"

	"burntest/adapters/api"
	"burntest/internal/config"
	"burntest/internal/dashboard"
	"burntest/internal/session"

	"go.uber.org/zap"
)

// sweepInterval is how often expired dashboard sessions are dropped
const sweepInterval = time.Minute

// NewServer wires the backend client, the session manager and the dashboard app into an
// http.Server listening on cfg.Server.Port. The session sweeper stops when ctx is cancelled.
func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*http.Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := api.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)

	sessions := session.NewManager(func() *dashboard.Controller {
		return dashboard.NewController(client, logger)
	}, cfg.Session.TTL, logger)
	go sessions.Run(ctx, sweepInterval)

	app, err := NewApp(Config{
		Port:         cfg.Server.Port,
		SecureCookie: cfg.Log.Env == "production",
		SessionTTL:   cfg.Session.TTL,
	}, sessions, client, logger)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}
