package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"cpipulse/internal/config"
	apierrors "cpipulse/internal/errors"
	"cpipulse/internal/infrastructure"
	custommiddleware "cpipulse/internal/middleware"
	"cpipulse/internal/services"
	handlers "cpipulse/internal/transport/http"
)

// Version is set at build time.
var Version = "dev"

// Application is the main dependency container.
type Application struct {
	Config    *config.Config
	Router    *chi.Mux
	Server    *http.Server
	Logger    *slog.Logger
	Metrics   *infrastructure.Metrics
	Dashboard *services.DashboardService
	StaticFS  fs.FS
}

// NewApplication wires configuration, logging, services and routes.
// staticFS holds the embedded dashboard page and may be nil.
func NewApplication(staticFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	metrics := infrastructure.NewMetrics()

	dashboard, err := services.NewDashboardService(cfg.Data, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dashboard service: %w", err)
	}

	app := &Application{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Dashboard: dashboard,
		StaticFS:  staticFS,
	}
	app.setupRouter()

	app.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        app.Router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return app, nil
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommiddleware.RequestID)
	r.Use(custommiddleware.StructuredLogger(a.Logger))
	r.Use(custommiddleware.Recoverer(a.Logger))
	r.Use(custommiddleware.SecurityHeaders)
	r.Use(custommiddleware.Metrics(a.Metrics))

	if a.Config.Security.EnableCORS {
		r.Use(custommiddleware.CORS(custommiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
		}))
	}
	if a.Config.Security.RateLimit.Enabled {
		limiter := custommiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		)
		r.Use(limiter.Handler)
	}

	errorHandler := apierrors.NewErrorHandler(a.Logger)
	dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, a.Logger, errorHandler, a.Config.Data.MaxUploadBytes)
	healthHandler := handlers.NewHealthHandler(Version)
	metricsHandler := handlers.NewMetricsHandler(a.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.NotFound(func(w http.ResponseWriter, req *http.Request) {
			render.Render(w, req, apierrors.NewErrorResponse(apierrors.ErrNotFound))
		})

		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/version", healthHandler.Version)

		r.Mount("/dashboard", dashboardHandler.Routes())
	})

	r.Handle("/metrics", metricsHandler.Handler())

	if a.StaticFS != nil {
		r.Route("/", func(r chi.Router) {
			r.Use(chimiddleware.Compress(5))
			r.Handle("/*", http.FileServer(http.FS(a.StaticFS)))
		})
	}

	a.Router = r
}

// Run starts the HTTP server and blocks until shutdown.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("HTTP server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.Logger.Info("server stopped")
	return nil
}
