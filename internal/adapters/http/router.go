package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quarter-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quarter-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quarter-service/internal/platform/config"
	"github.com/jsamuelsen/quarter-service/internal/platform/telemetry"
)

const (
	// DefaultRequestTimeout bounds every /api/v1 request.
	DefaultRequestTimeout = 30 * time.Second

	defaultServiceName = "quarter-service"
)

// RouterConfig is everything SetupRouter wires. Nil handlers are skipped.
type RouterConfig struct {
	Logger         *slog.Logger
	AuthConfig     *config.AuthConfig
	AppConfig      *config.AppConfig
	HealthHandler  *handlers.HealthHandler
	QuarterHandler *handlers.QuarterHandler

	// Timeout is the /api/v1 deadline; zero disables it.
	Timeout time.Duration
}

// SetupRouter installs the global middleware chain and the two route groups.
//
// Every request passes through recovery, request and correlation IDs,
// tracing, HTTP metrics and access logging, in that order. Operational
// routes under /-/ are public and have no deadline. The quarter API under
// /api/v1 runs with cfg.Timeout and, when auth is enabled, requires a
// caller holding the read scope or the admin role.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.serviceName()),
		telemetry.Middleware(),
		middleware.Logging(cfg.Logger),
	)
	engine.NoRoute(notFound)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.Register(engine)
	}

	api := engine.Group("/api/v1")

	if cfg.Timeout > 0 {
		api.Use(middleware.Timeout(cfg.Timeout))
	}

	if auth := cfg.AuthConfig; auth != nil && auth.Enabled {
		api.Use(middleware.RequireAuth(auth), middleware.RequireQuarterAccess(auth))
	}

	if cfg.QuarterHandler != nil {
		cfg.QuarterHandler.RegisterQuarterRoutes(api)
	}
}

func (cfg RouterConfig) serviceName() string {
	if cfg.AppConfig == nil || cfg.AppConfig.Name == "" {
		return defaultServiceName
	}

	return cfg.AppConfig.Name
}

// NewDefaultRouterConfig returns a RouterConfig using DefaultRequestTimeout.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	authCfg *config.AuthConfig,
	healthHandler *handlers.HealthHandler,
	quarterHandler *handlers.QuarterHandler,
) RouterConfig {
	return RouterConfig{
		Logger:         logger,
		AuthConfig:     authCfg,
		AppConfig:      appCfg,
		HealthHandler:  healthHandler,
		QuarterHandler: quarterHandler,
		Timeout:        DefaultRequestTimeout,
	}
}
