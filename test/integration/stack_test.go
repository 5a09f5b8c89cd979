//go:build integration

package integration

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpadapter "github.com/jsamuelsen/quarter-service/internal/adapters/http"
	"github.com/jsamuelsen/quarter-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quarter-service/internal/adapters/metrics"
	"github.com/jsamuelsen/quarter-service/internal/adapters/timeunit"
	"github.com/jsamuelsen/quarter-service/internal/adapters/tzdb"
	"github.com/jsamuelsen/quarter-service/internal/app"
	"github.com/jsamuelsen/quarter-service/internal/platform/config"
	"github.com/jsamuelsen/quarter-service/internal/ports"
	"github.com/jsamuelsen/quarter-service/internal/quarter"
)

// stack is an in-process service wired the way cmd/service wires it.
type stack struct {
	server   *httptest.Server
	registry *prometheus.Registry
}

// newStack starts the service for cfg on a random port.
func newStack(tb testing.TB, cfg *config.Config) *stack {
	tb.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	healthRegistry := ports.NewHealthRegistry()
	resolver := tzdb.NewResolver(cfg.Quarter.DefaultZone)

	if err := healthRegistry.Register(resolver); err != nil {
		tb.Fatalf("registering resolver: %v", err)
	}

	units, err := timeunit.ForEngine(cfg.Quarter.Engine)
	if err != nil {
		tb.Fatalf("selecting engine: %v", err)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector())

	service := app.NewQuarterService(app.QuarterServiceConfig{
		Resolver:         resolver,
		Metrics:          metrics.NewPrometheus(promRegistry),
		Calculator:       quarter.New(units),
		Logger:           logger,
		MaxBatchSize:     cfg.Quarter.MaxBatchSize,
		BatchConcurrency: cfg.Quarter.BatchConcurrency,
	})

	srv := httpadapter.New(&cfg.Server, logger)
	httpadapter.SetupRouter(srv.Engine(), httpadapter.NewDefaultRouterConfig(
		logger,
		&cfg.App,
		&cfg.Auth,
		handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo("test", "none", "now").
			WithQuarter(resolver.DefaultZone(), cfg.Quarter.Engine)).WithGatherer(promRegistry),
		handlers.NewQuarterHandler(service),
	))

	ts := httptest.NewServer(srv.Engine())
	tb.Cleanup(ts.Close)

	return &stack{server: ts, registry: promRegistry}
}

// defaultConfig loads the built-in defaults with test overrides applied.
func defaultConfig(tb testing.TB) *config.Config {
	tb.Helper()

	cfg, err := config.Load("")
	if err != nil {
		tb.Fatalf("loading config: %v", err)
	}

	cfg.App.Environment = "test"

	if err := cfg.Validate(); err != nil {
		tb.Fatalf("validating config: %v", err)
	}

	return cfg
}
