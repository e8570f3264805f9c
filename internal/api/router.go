package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-roles/internal/api/handler"
	"github.com/99minutos/marketplace-roles/internal/api/middleware"
	"github.com/99minutos/marketplace-roles/internal/core/domain"
	"github.com/99minutos/marketplace-roles/internal/core/ports"
)

// Deps are the collaborators NewRouter wires into the routes.
type Deps struct {
	Tokens ports.TokenService
	Log    zerolog.Logger

	// Registry receives the HTTP request metrics and backs GET /metrics.
	// Defaults to the global Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	var (
		registerer = prometheus.DefaultRegisterer
		gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	tokens, log := deps.Tokens, deps.Log

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "marketplace",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(tokens)
	dataHandler := handler.NewDataHandler()
	authMiddleware := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/", authHandler.Login)

	// --- Protected data ---
	e.GET("/public/data", dataHandler.Public, authMiddleware)
	e.GET("/buyer/data", dataHandler.Buyer, authMiddleware, middleware.RequireRole(domain.RoleBuyer))
	e.GET("/seller/data", dataHandler.Seller, authMiddleware, middleware.RequireRole(domain.RoleSeller))

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
