package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"burntest/internal/config"
	"burntest/internal/container"
	"burntest/internal/logging"
	"burntest/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runs the order API and the dashboard in one process. BACKEND_URL should point at
// this process's API_PORT (the default does).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(appConfig.Log.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := container.New(ctx, appConfig, logger)
	if err != nil {
		logger.Fatal("failed to initialize backend", zap.Error(err))
	}
	defer backend.Shutdown(context.Background())

	apiServer := &http.Server{
		Addr:              ":" + appConfig.Server.APIPort,
		Handler:           backend.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	uiServer, err := ui.NewServer(ctx, appConfig, logger)
	if err != nil {
		logger.Fatal("failed to create UI app", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range []*http.Server{apiServer, uiServer} {
		srv := srv
		g.Go(func() error {
			logger.Info("listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		uiErr := uiServer.Shutdown(shutdownCtx)
		apiErr := apiServer.Shutdown(shutdownCtx)
		if uiErr != nil {
			return uiErr
		}
		return apiErr
	})

	logger.Info("🚀 order dashboard started",
		zap.String("ui", "http://localhost:"+appConfig.Server.Port),
		zap.String("api", appConfig.Backend.URL),
	)
	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
