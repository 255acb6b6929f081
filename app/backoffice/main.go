package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jrazmi/backoffice/app/backoffice/api"
	"github.com/jrazmi/backoffice/bridge/scaffolding/metrics"
	"github.com/jrazmi/backoffice/bridge/scaffolding/mid"
	"github.com/jrazmi/backoffice/core/repositories/usersrepo"
	"github.com/jrazmi/backoffice/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/jrazmi/backoffice/core/repositories/userstatusesrepo"
	"github.com/jrazmi/backoffice/core/repositories/userstatusesrepo/stores/userstatusespgxstore"
	"github.com/jrazmi/backoffice/infrastructure/postgresdb"
	"github.com/jrazmi/backoffice/infrastructure/web"
	"github.com/jrazmi/backoffice/sdk/environment"
	"github.com/jrazmi/backoffice/sdk/logger"
	"github.com/jrazmi/backoffice/sdk/telemetry"
)

var build = "develop"
var appName = "BACKOFFICE"

func main() {
	environment.LoadEnv()
	ctx := context.Background()

	log, err := logger.NewFromEnv(appName, logger.WithTraceID(telemetry.LogTraceID))
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuring logger:", err)
		os.Exit(1)
	}

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	// :*: START DATABASES :*:
	pg, err := postgresdb.NewFromEnv(appName,
		postgresdb.WithLogger(log.Logger),
		postgresdb.WithTracer(metrics.NewQueryTracer()),
	)
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		pg.Close()
	}()

	webCfg, err := web.LoadServerConfig(appName)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	rateCfg, err := mid.LoadRateLimitConfig(appName)
	if err != nil {
		return fmt.Errorf("ratelimit: %w", err)
	}

	// REPOSITORIES //
	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	cfg := api.Config{
		Build:        build,
		APIRoute:     webCfg.APIRoute,
		Log:          log,
		Telemetry:    telemetry.NewTelemetry(),
		Ready:        func(ctx context.Context) error { return postgresdb.StatusCheck(ctx, pg) },
		RateLimit:    rateCfg,
		Users:        usersrepo.NewRepository(log, userspgxstore.NewStore(log, pg)),
		UserStatuses: userstatusesrepo.NewRepository(log, userstatusespgxstore.NewStore(log, pg)),
	}

	handler, err := api.NewHandler(appName, cfg)
	if err != nil {
		return fmt.Errorf("webhandler: %w", err)
	}

	server := web.NewServer(webCfg,
		web.WithHandler(handler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
