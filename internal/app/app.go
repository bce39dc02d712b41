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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"insightflow/internal/config"
	"insightflow/internal/dashboard"
	apierrors "insightflow/internal/errors"
	"insightflow/internal/exporter"
	"insightflow/internal/infrastructure"
	customMiddleware "insightflow/internal/middleware"
	"insightflow/internal/services"
	"insightflow/internal/transform"
	handlers "insightflow/internal/transport/http"
	"insightflow/pkg/contracts/domain"
)

const (
	Version = "1.0.0"
	AppName = "InsightFlow - Executive Analytics Dashboard"
)

// Application is the main dependency container. Construction wires the
// session store, the import and export pipelines and the HTTP surface.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Router *chi.Mux
	Server *http.Server

	Store            *dashboard.Store
	DashboardService *services.DashboardService
	ExportService    *services.ExportService
}

// NewApplication loads configuration and builds the full application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewApplicationWith(cfg, logger)
}

// NewApplicationWith builds the application from pre-constructed
// configuration and logger. Tests use this to inject both.
func NewApplicationWith(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices wires the pipeline: store, transformer, capturer,
// exporter, then the two services on top.
func (a *Application) initializeServices() {
	a.Store = dashboard.NewStore(domain.DefaultDataset(), a.Config.Session.TTL, a.Logger)

	transformer := transform.New(transform.DefaultKeyPriority(), transform.WithLogger(a.Logger))
	a.DashboardService = services.NewDashboardService(a.Store, transformer, a.Logger)

	capturer := exporter.NewChromeCapturer(a.Config.Export.Headless, a.Logger)
	exp := exporter.New(capturer, exporter.Config{
		ViewURL:  a.Config.ViewURL(),
		Selector: a.Config.Export.CaptureSelector,
	}, a.Logger)
	a.ExportService = services.NewExportService(a.Store, exp, a.Logger)
}

// setupRouter configures the HTTP router and mounts all handlers.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.Compress(5))
	r.Use(customMiddleware.Metrics)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins:   a.Config.Security.AllowedOrigins,
			ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: true,
			Logger:           a.Logger,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := apierrors.NewErrorHandler(a.Logger)

	r.Route("/api", func(r chi.Router) {
		importHandler := handlers.NewImportHandler(a.DashboardService, a.Config.Server.MaxUploadBytes, a.Logger, errorHandler)
		r.Mount("/import", importHandler.Routes())

		dashboardHandler := handlers.NewDashboardHandler(a.DashboardService, a.Logger, errorHandler)
		r.Mount("/dashboard", dashboardHandler.Routes())

		exportHandler := handlers.NewExportHandler(a.ExportService, a.Logger, errorHandler)
		r.Mount("/export", exportHandler.Routes())
	})

	// The capture view is what the headless browser screenshots during
	// PDF and PNG exports.
	viewHandler := handlers.NewViewHandler(a.DashboardService, a.Logger, errorHandler)
	r.Mount("/dashboard/view", viewHandler.Routes())

	healthHandler := handlers.NewHealthHandler(Version)
	r.Get("/healthz", healthHandler.Health)

	r.Handle("/metrics", promhttp.Handler())

	a.Router = r
}

// createServer creates the HTTP server. The write timeout must cover a full
// headless-browser capture round trip.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start begins serving in a background goroutine; a listen failure cancels
// the supplied context.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) {
	a.Logger.InfoContext(ctx, "server listening",
		slog.Int("port", a.Config.Server.Port),
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()
}

// Stop gracefully shuts the server down.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Logger.InfoContext(ctx, "shutdown complete")
	return nil
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	a.Start(ctx, cancel)

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
