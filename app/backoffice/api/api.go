// Package api binds the backoffice routes onto a web handler.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jrazmi/backoffice/bridge/repositories/usersrepobridge"
	"github.com/jrazmi/backoffice/bridge/repositories/userstatusesrepobridge"
	"github.com/jrazmi/backoffice/bridge/scaffolding/errs"
	"github.com/jrazmi/backoffice/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/backoffice/bridge/scaffolding/metrics"
	"github.com/jrazmi/backoffice/bridge/scaffolding/mid"
	"github.com/jrazmi/backoffice/core/repositories/usersrepo"
	"github.com/jrazmi/backoffice/core/repositories/userstatusesrepo"
	"github.com/jrazmi/backoffice/infrastructure/web"
	"github.com/jrazmi/backoffice/sdk/logger"
)

// readinessTimeout bounds the readiness probe.
const readinessTimeout = time.Second

// Config is everything the API needs to serve requests.
type Config struct {
	Build        string
	APIRoute     string
	Log          *logger.Logger
	Telemetry    web.Telemetry
	Ready        func(ctx context.Context) error
	RateLimit    mid.RateLimitConfig
	Users        *usersrepo.Repository
	UserStatuses *userstatusesrepo.Repository
}

// NewHandler builds the http.Handler serving the API. Handler options are
// read from the environment under prefix.
func NewHandler(prefix string, cfg Config, opts ...web.HandlerOption) (http.Handler, error) {
	if cfg.Log == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.Users == nil || cfg.UserStatuses == nil {
		return nil, errors.New("repositories are required")
	}

	// GLOBAL MIDDLEWARE
	opts = append([]web.HandlerOption{
		web.WithLogging(cfg.Log.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithGlobalMiddleware(
			mid.Logger(cfg.Log),
			mid.Errors(cfg.Log),
			mid.RateLimit(cfg.RateLimit),
			mid.Metrics(),
			mid.Panics(),
		),
	}, opts...)

	wh, err := web.NewWebHandlerFromEnv(prefix, opts...)
	if err != nil {
		return nil, fmt.Errorf("webhandler: %w", err)
	}

	Routes(wh, cfg)
	return wh, nil
}

// Routes registers every route on wh.
func Routes(wh *web.WebHandler, cfg Config) {
	route := cfg.APIRoute
	if route == "" {
		route = "/api/v1"
	}
	api := wh.Group(route)

	usersrepobridge.AddHttpRoutes(api, usersrepobridge.Config{
		Log:        cfg.Log,
		Repository: cfg.Users,
	})
	userstatusesrepobridge.AddHttpRoutes(api, userstatusesrepobridge.Config{
		Log:        cfg.Log,
		Repository: cfg.UserStatuses,
	})

	c := check{build: cfg.Build, ready: cfg.Ready}
	wh.GET("/liveness", c.liveness)
	wh.GET("/readiness", c.readiness)

	wh.HandleRaw("GET /metrics", metrics.Handler())
}

type check struct {
	build string
	ready func(ctx context.Context) error
}

type status struct {
	Status string `json:"status"`
	Build  string `json:"build"`
}

func (c check) liveness(ctx context.Context, r *http.Request) web.Encoder {
	return fopbridge.NewItemResponse("Service is alive", status{Status: "up", Build: c.build})
}

func (c check) readiness(ctx context.Context, r *http.Request) web.Encoder {
	if c.ready != nil {
		ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
		defer cancel()

		if err := c.ready(ctx); err != nil {
			return errs.Newf(errs.Unavailable, "Database not ready")
		}
	}
	return fopbridge.NewItemResponse("Service is ready", status{Status: "ok", Build: c.build})
}
