// Command service runs the quarter-boundary HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/jsamuelsen/quarter-service/internal/adapters/http"
	"github.com/jsamuelsen/quarter-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quarter-service/internal/adapters/metrics"
	"github.com/jsamuelsen/quarter-service/internal/adapters/timeunit"
	"github.com/jsamuelsen/quarter-service/internal/adapters/tzdb"
	"github.com/jsamuelsen/quarter-service/internal/app"
	"github.com/jsamuelsen/quarter-service/internal/platform/config"
	"github.com/jsamuelsen/quarter-service/internal/platform/logging"
	"github.com/jsamuelsen/quarter-service/internal/platform/telemetry"
	"github.com/jsamuelsen/quarter-service/internal/ports"
	"github.com/jsamuelsen/quarter-service/internal/quarter"
)

// Set with -ldflags "-X main.Version=... -X main.Commit=... -X main.BuildTime=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg)
	logging.SetDefault(logger)

	logger.Info("starting quarter service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	tel, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Insecure:     cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown failed", slog.Any("error", err))
		}
	}()

	server, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	serverErr := server.Start()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutdown requested", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func newLogger(cfg *config.Config) *slog.Logger {
	file := cfg.Log.File

	return logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    file.Enabled,
			Path:       file.Path,
			MaxSizeMB:  file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAgeDays: file.MaxAgeDays,
			Compress:   file.Compress,
		},
	})
}

// newServer wires the zone resolver, the selected engine and the quarter
// service behind the HTTP router.
func newServer(cfg *config.Config, logger *slog.Logger) (*http.Server, error) {
	resolver := tzdb.NewResolver(cfg.Quarter.DefaultZone)

	checks := ports.NewHealthRegistry()
	if err := checks.Register(resolver); err != nil {
		return nil, fmt.Errorf("registering tzdata check: %w", err)
	}

	units, err := timeunit.ForEngine(cfg.Quarter.Engine)
	if err != nil {
		return nil, fmt.Errorf("selecting quarter engine: %w", err)
	}

	service := app.NewQuarterService(app.QuarterServiceConfig{
		Resolver:         resolver,
		Metrics:          metrics.NewPrometheus(nil),
		Calculator:       quarter.New(units),
		Logger:           logger,
		MaxBatchSize:     cfg.Quarter.MaxBatchSize,
		BatchConcurrency: cfg.Quarter.BatchConcurrency,
	})

	logger.Info("quarter calculator ready",
		slog.String("default_zone", resolver.DefaultZone()),
		slog.String("engine", cfg.Quarter.Engine),
	)

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime).
		WithQuarter(resolver.DefaultZone(), cfg.Quarter.Engine)

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.NewDefaultRouterConfig(
		logger,
		&cfg.App,
		&cfg.Auth,
		handlers.NewHealthHandler(checks, buildInfo),
		handlers.NewQuarterHandler(service),
	))

	return server, nil
}
