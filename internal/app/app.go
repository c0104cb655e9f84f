// Package app assembles the application: configuration, logging, the
// report pipeline, and the HTTP server with its middleware chain.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"fleetpulse/internal/config"
	apierrors "fleetpulse/internal/errors"
	"fleetpulse/internal/infrastructure"
	"fleetpulse/internal/middleware"
	"fleetpulse/internal/services"
	"fleetpulse/internal/session"
	handlers "fleetpulse/internal/transport/http"
)

// Version is the reported build version, overridable at link time.
var Version = "dev"

// Application is the dependency container for one server process.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	Router        *chi.Mux
	Server        *http.Server
	Store         *session.Store
	ReportService *services.ReportService
	Metrics       *middleware.Metrics
	registry      *prometheus.Registry
}

// NewApplication creates a fully wired application.
func NewApplication() (*Application, error) {
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := middleware.NewMetrics(registry)

	store := session.NewStore(cfg.Upload.SessionTTL, logger)
	reportService := services.NewReportService(store, logger)

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		Store:         store,
		ReportService: reportService,
		Metrics:       metrics,
		registry:      registry,
	}
	app.Router = app.setupRouter()
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

// setupRouter builds the middleware chain and mounts the handlers.
func (a *Application) setupRouter() *chi.Mux {
	errorHandler := apierrors.NewErrorHandler(a.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(a.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(a.Metrics.Handler)
	if a.Config.Security.RateLimit.Enabled {
		r.Use(middleware.RateLimit(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			errorHandler,
		))
	}

	healthHandler := handlers.NewHealthHandler(a.Logger, Version)
	workbookHandler := handlers.NewWorkbookHandler(
		a.ReportService,
		a.Logger,
		errorHandler,
		a.Metrics,
		a.Config.Upload.MaxSizeBytes,
	)

	r.Get("/healthz", healthHandler.HealthCheck)
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	r.Route("/api", func(r chi.Router) {
		r.Mount("/workbooks", workbookHandler.Routes())
	})

	return r
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully within the configured timeout. The session janitor runs
// alongside the server.
func (a *Application) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		a.Store.RunJanitor(ctx, a.Config.Upload.JanitorInterval)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		a.Logger.Info("shutting down server")
		return a.Server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	a.Logger.Info("server stopped")
	return err
}
