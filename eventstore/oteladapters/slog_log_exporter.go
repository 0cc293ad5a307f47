package oteladapters

import (
	"context"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// SlogLogExporter implements sdklog.Exporter by writing every OpenTelemetry log record to a *slog.Logger.
// Severities map to the nearest slog level, so the logger's level filter still applies.
type SlogLogExporter struct {
	logger  *slog.Logger
	stopped atomic.Bool
}

// NewSlogLogExporter creates a SlogLogExporter writing to logger.
func NewSlogLogExporter(logger *slog.Logger) *SlogLogExporter {
	return &SlogLogExporter{logger: logger}
}

// Export logs the records. After Shutdown it is a no-op.
func (e *SlogLogExporter) Export(ctx context.Context, records []sdklog.Record) error {
	if e.stopped.Load() {
		return nil
	}

	for i := range records {
		if err := ctx.Err(); err != nil {
			return err
		}

		record := &records[i]
		args := make([]any, 0, 2*record.AttributesLen()+4)

		record.WalkAttributes(func(kv log.KeyValue) bool {
			args = append(args, kv.Key, kv.Value.String())
			return true
		})

		if record.TraceID().IsValid() {
			args = append(args, logAttrTraceID, record.TraceID().String(), logAttrSpanID, record.SpanID().String())
		}

		e.logger.Log(ctx, slogLevel(record.Severity()), record.Body().String(), args...)
	}

	return nil
}

func (e *SlogLogExporter) Shutdown(_ context.Context) error {
	e.stopped.Store(true)

	return nil
}

func (e *SlogLogExporter) ForceFlush(_ context.Context) error {
	return nil
}

func slogLevel(severity log.Severity) slog.Level {
	switch {
	case severity >= log.SeverityError:
		return slog.LevelError
	case severity >= log.SeverityWarn:
		return slog.LevelWarn
	case severity >= log.SeverityInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

var _ sdklog.Exporter = (*SlogLogExporter)(nil)
