package oteladapters

import (
	"context"
	"log/slog"
	"sync/atomic"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// SlogSpanExporter implements sdktrace.SpanExporter by writing one debug record per finished span.
type SlogSpanExporter struct {
	logger  *slog.Logger
	stopped atomic.Bool
}

// NewSlogSpanExporter creates a SlogSpanExporter writing to logger.
func NewSlogSpanExporter(logger *slog.Logger) *SlogSpanExporter {
	return &SlogSpanExporter{logger: logger}
}

// ExportSpans logs the spans. After Shutdown it is a no-op.
func (e *SlogSpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	if e.stopped.Load() {
		return nil
	}

	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return err
		}

		args := []any{
			"span", span.Name(),
			logAttrTraceID, span.SpanContext().TraceID().String(),
			logAttrSpanID, span.SpanContext().SpanID().String(),
			"status", span.Status().Code.String(),
			"duration_ms", float64(span.EndTime().Sub(span.StartTime()).Microseconds()) / 1000,
		}

		for _, kv := range span.Attributes() {
			args = append(args, string(kv.Key), kv.Value.Emit())
		}

		e.logger.DebugContext(ctx, "span finished", args...)
	}

	return nil
}

func (e *SlogSpanExporter) Shutdown(_ context.Context) error {
	e.stopped.Store(true)

	return nil
}

var _ sdktrace.SpanExporter = (*SlogSpanExporter)(nil)
