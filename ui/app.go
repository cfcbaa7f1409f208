package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"burntest/internal/logging"
	"burntest/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// Downloader fetches a report file from the backend
type Downloader interface {
	ResolveURL(fileURL string) (string, error)
	Download(ctx context.Context, fileURL string, w io.Writer) (int64, error)
}

// App is the dashboard web UI: one controller per browser session, rendered server side
type App struct {
	router     *chi.Mux
	sessions   *session.Manager
	downloader Downloader
	templates  *template.Template
	logger     *zap.Logger
	secure     bool
	// cookieTTL is the session cookie's Max-Age; zero leaves it a browser-session cookie
	cookieTTL  time.Duration
}

// Config holds UI application configuration
type Config struct {
	Port string
	// SecureCookie marks the session cookie Secure when served over TLS
	SecureCookie bool
	SessionTTL   time.Duration
}

// NewApp creates the UI application
func NewApp(cfg Config, sessions *session.Manager, downloader Downloader, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	templates, err := template.New("").Funcs(templateFuncs).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:     chi.NewRouter(),
		sessions:   sessions,
		downloader: downloader,
		templates:  templates,
		logger:     logger.Named("ui"),
		secure:     cfg.SecureCookie,
		cookieTTL:  cfg.SessionTTL,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(logging.HTTPLogger(a.logger.Named("http")))
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	static, _ := fs.Sub(embeddedFiles, "static")
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	a.router.Get("/", a.handleIndex)
	a.router.Post("/actions/{action}", a.handleAction)
	a.router.Get("/download", a.handleDownload)
	a.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
}

// ServeHTTP lets the app be mounted or tested as a plain handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}
