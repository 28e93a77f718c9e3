// Package app wires configuration, logging, telemetry, the source
// registry and the HTTP transport into a runnable catalog server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"dscat/internal/catalog"
	"dscat/internal/catalogstore"
	"dscat/internal/config"
	apperrors "dscat/internal/errors"
	"dscat/internal/infrastructure"
	custommw "dscat/internal/middleware"
	"dscat/internal/services"
	"dscat/internal/sources"
	handlers "dscat/internal/transport/http"
)

const (
	// Version is the application version reported by the health
	// endpoint.
	Version = "1.0.0"
	AppName = "dscat catalog server"
)

// Application is the dependency container for the catalog server.
type Application struct {
	Config         *config.Config
	Paths          *config.Paths
	Router         *chi.Mux
	Server         *http.Server
	Registry       *catalog.Registry
	Store          *catalogstore.Store
	CatalogService *services.CatalogService
	HealthService  *services.HealthService
	Logger         *slog.Logger
	OTelProviders  *infrastructure.OTelProviders
}

// NewApplication builds a fully wired application from configuration.
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
		slog.String("name", AppName),
		slog.String("version", Version))

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	if err := app.initializeRegistry(); err != nil {
		return nil, fmt.Errorf("failed to initialize registry: %w", err)
	}

	app.CatalogService = services.NewCatalogService(app.Registry, logger)
	app.HealthService = services.NewHealthService(app.Registry, Version, logger)

	app.setupRouter()
	app.setupServer()

	return app, nil
}

// initializeRegistry builds the source registry from the persisted
// catalog file. A missing file starts the server with an empty
// catalog.
func (a *Application) initializeRegistry() error {
	metrics, err := catalog.NewMetrics(a.OTelProviders.Meter)
	if err != nil {
		a.Logger.Warn("extraction metrics unavailable", slog.String("error", err.Error()))
	}

	a.Registry = catalog.NewRegistry(catalog.WithAssembler(catalog.NewAssembler(
		catalog.WithLogger(a.Logger),
		catalog.WithMetrics(metrics),
	)))

	a.Store = catalogstore.NewStore(a.Paths.CatalogFile)
	doc, err := a.Store.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog file: %w", err)
	}

	if err := catalogstore.Apply(doc, a.Registry, sources.Factories(a.Logger), a.Paths.SourcesDir); err != nil {
		return err
	}

	a.Logger.Info("catalog loaded",
		slog.String("file", a.Store.Path()),
		slog.Int("sources", a.Registry.Count()))
	return nil
}

// setupRouter configures the HTTP router with the full middleware
// chain.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)

	// Prometheus endpoint stays outside the logged group.
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(custommw.StructuredLogger(a.Logger))
		r.Use(custommw.Recoverer(a.Logger))
		r.Use(custommw.SecurityHeaders)
		r.Use(custommw.Compress(5))

		if a.Config.Security.RateLimit.Enabled {
			r.Use(custommw.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		errorHandler := apperrors.NewErrorHandler(a.Logger)
		catalogHandler := handlers.NewCatalogHandler(a.CatalogService, a.Logger, errorHandler)
		healthHandler := handlers.NewHealthHandler(a.HealthService)

		r.Route("/api", func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Mount("/sources", catalogHandler.Routes())
		})
		r.Get("/healthz", healthHandler.Check)
	})

	a.Router = r
}

func (a *Application) setupServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start begins serving HTTP. The cancel function is called when the
// listener stops so Run can unblock.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "server listening", slog.String("addr", a.Server.Addr))

	go func() {
		defer cancel()
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	return nil
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "error shutting down OpenTelemetry",
				slog.String("error", err.Error()))
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.ErrorContext(ctx, "error closing log file", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
