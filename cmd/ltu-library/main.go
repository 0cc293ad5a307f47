// Command ltu-library runs the interactive LTU Library console.
//
// The operator dialog is read from stdin and written to stdout. Diagnostic logs go to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AntonStoeckl/ltu-library/eventstore/memoryengine"
	"github.com/AntonStoeckl/ltu-library/eventstore/oteladapters"
	"github.com/AntonStoeckl/ltu-library/library/session"
	"github.com/AntonStoeckl/ltu-library/library/shell"
	"github.com/AntonStoeckl/ltu-library/library/shell/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Parse(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "ltu-library: %v\n", err)
		return 2
	}

	logger := config.NewLogger(cfg, os.Stderr)
	var contextualLogger shell.ContextualLogger = oteladapters.NewSlogBridgeLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var obs session.Observability
	var engineOptions []memoryengine.Option

	var telemetry *config.Telemetry
	if cfg.TelemetryEnabled {
		telemetry, err = config.NewTelemetry(ctx, logger, version)
		if err != nil {
			logger.Error("telemetry setup failed", "error", err.Error())
			return 1
		}
		telemetry.InstallGlobal()

		contextualLogger = telemetry.ContextualLogger(config.ServiceName)
		obs.Metrics = oteladapters.NewMetricsCollector(telemetry.Meter(config.ServiceName))
		obs.Tracing = oteladapters.NewTracingCollector(telemetry.Tracer(config.ServiceName))
		engineOptions = append(engineOptions,
			memoryengine.WithMetrics(obs.Metrics),
			memoryengine.WithTracing(obs.Tracing),
		)
	}

	obs.ContextualLogger = contextualLogger
	engineOptions = append(engineOptions,
		memoryengine.WithLogger(logger),
		memoryengine.WithContextualLogger(contextualLogger),
	)

	exitCode := runSession(ctx, cfg, logger, contextualLogger, engineOptions, obs)

	if telemetry != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := telemetry.LogCollectedMetrics(shutdownCtx); err != nil {
			logger.Warn("collecting metrics failed", "error", err.Error())
		}
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err.Error())
		}
	}

	return exitCode
}

func runSession(
	ctx context.Context,
	cfg config.Config,
	logger *slog.Logger,
	contextualLogger shell.ContextualLogger,
	engineOptions []memoryengine.Option,
	obs session.Observability,
) int {

	eventStore, err := memoryengine.NewEventStore(engineOptions...)
	if err != nil {
		logger.Error("event store setup failed", "error", err.Error())
		return 1
	}

	bookIDs, err := shell.NewRandomBookIDs(cfg.MinBookID, cfg.MaxBookID, nil)
	if err != nil {
		logger.Error("book id generator setup failed", "error", err.Error())
		return 1
	}

	handlers, err := session.NewHandlers(eventStore, bookIDs, cfg.Capacity, obs)
	if err != nil {
		logger.Error("handler setup failed", "error", err.Error())
		return 1
	}

	s, err := session.NewSession(handlers, os.Stdin, os.Stdout,
		session.WithCapacity(cfg.Capacity),
		session.WithLogger(contextualLogger),
	)
	if err != nil {
		logger.Error("session setup failed", "error", err.Error())
		return 1
	}

	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("session aborted", "error", err.Error())
		return 1
	}

	return 0
}
