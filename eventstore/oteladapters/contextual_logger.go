package oteladapters

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/ltu-library/eventstore"
)

const (
	logAttrTraceID = "trace_id"
	logAttrSpanID  = "span_id"
)

// SlogBridgeLogger implements eventstore.ContextualLogger on top of a *slog.Logger.
// When the context carries a valid span, trace_id and span_id are added to the record.
type SlogBridgeLogger struct {
	logger    *slog.Logger
	correlate bool
}

// NewSlogBridgeLogger creates a trace-correlating logger that writes through the given *slog.Logger.
func NewSlogBridgeLogger(logger *slog.Logger) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: logger, correlate: true}
}

// NewSlogBridgeLoggerWithHandler creates a trace-correlating logger that writes to handler.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler), correlate: true}
}

// NewOTelBridgeLogger creates a logger that emits through the OpenTelemetry slog bridge
// into the given LoggerProvider. The log records carry the span of the context, so no
// trace_id and span_id attributes are added.
func NewOTelBridgeLogger(name string, provider log.LoggerProvider) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name, otelslog.WithLoggerProvider(provider))}
}

func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, l.withTraceCorrelation(ctx, args)...)
}

func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, l.withTraceCorrelation(ctx, args)...)
}

func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, l.withTraceCorrelation(ctx, args)...)
}

func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, l.withTraceCorrelation(ctx, args)...)
}

func (l *SlogBridgeLogger) withTraceCorrelation(ctx context.Context, args []any) []any {
	if !l.correlate {
		return args
	}

	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return args
	}

	return append(args, logAttrTraceID, spanCtx.TraceID().String(), logAttrSpanID, spanCtx.SpanID().String())
}

var _ eventstore.ContextualLogger = (*SlogBridgeLogger)(nil)
