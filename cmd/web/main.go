// Command web serves the health data dashboard: upload cleaned (or raw)
// export CSVs, browse numeric columns, and plot filtered series with
// optional polynomial trend lines. It also exposes the cleaning pipeline
// over HTTP with progress streamed on a websocket.
package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"healthcli/internal/config"
	"healthcli/internal/dashboard"
	"healthcli/internal/health"
	"healthcli/internal/infrastructure"
	"healthcli/internal/middleware"
	transporthttp "healthcli/internal/transport/http"
	"healthcli/internal/websocket"
)

// Version is set at build time via -ldflags.
var Version = "dev"

//go:embed static
var staticFiles embed.FS

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	hub := websocket.NewHub(logger)
	defer hub.Close()

	registry := health.DefaultRegistry()
	dashboardService := dashboard.NewService(logger)

	router, err := buildRouter(cfg, logger, registry, dashboardService, hub)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("Dashboard server listening",
			slog.Int("port", cfg.Server.Port),
			slog.String("version", Version))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down dashboard server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func buildRouter(cfg *config.Config, logger *slog.Logger, registry *health.Registry, dashboardService *dashboard.Service, hub *websocket.Hub) (chi.Router, error) {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	uploadLimiter := middleware.NewRateLimiter(cfg.Dashboard.UploadRPS, cfg.Dashboard.UploadBurst, logger)

	dashboardHandler := transporthttp.NewDashboardHandler(
		dashboardService, logger, cfg.Dashboard.MaxUploadBytes, cfg.Dashboard.MaxTrendDegree)
	cleanHandler := transporthttp.NewCleanHandler(registry, hub, logger)
	registryHandler := transporthttp.NewRegistryHandler(registry)
	healthHandler := transporthttp.NewHealthHandler(Version)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", healthHandler.HealthCheck)
		api.Get("/metrics/registry", registryHandler.List)
		api.With(uploadLimiter.Handler).Mount("/dashboard", dashboardHandler.Routes())
		api.Mount("/clean", cleanHandler.Routes())
	})

	r.Get("/ws", hub.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded frontend: %w", err)
	}
	r.Handle("/*", http.FileServer(http.FS(static)))

	return r, nil
}
