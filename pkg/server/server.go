// Package server assembles the HTTP surface: middleware, routes, and the
// listener settings from config. Handlers resolve their dependencies from the
// DI container carried on the request context.
package server

import (
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/pkg/middleware"
	"github.com/Ramsey-B/fern/pkg/routes/contracts"
	"github.com/Ramsey-B/fern/pkg/routes/health"
	"github.com/Ramsey-B/fern/pkg/routes/imports"
	"github.com/Ramsey-B/fern/pkg/routes/shipments"
	"github.com/Ramsey-B/fern/pkg/routes/truckingops"
)

// Version is stamped at build time
var Version = "dev"

// New builds the echo server with all routes registered
func New(cfg *config.Config, db *sqlx.DB, logger ectologger.Logger) (*echo.Echo, *health.Checker) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.Error(logger)

	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))

	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second
	e.Server.MaxHeaderBytes = cfg.MaxHeaderBytes

	checker := health.NewChecker(db, Version)
	checker.RegisterRoutes(e)

	api := e.Group("/api/v1")
	imports.Register(api.Group("/imports"))
	contracts.Register(api.Group("/contracts"))
	shipments.Register(api.Group("/shipments"))
	truckingops.Register(api.Group("/trucking"))

	return e, checker
}

// Start runs the server on the configured port
func Start(e *echo.Echo, cfg *config.Config) error {
	return e.Start(fmt.Sprintf(":%d", cfg.Port))
}
