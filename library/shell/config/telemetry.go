package config

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/ltu-library/eventstore/oteladapters"
)

const ServiceName = "ltu-library"

// Telemetry holds the OpenTelemetry SDK providers of a session.
// Spans and log records are written to the diagnostic log as they finish,
// metrics are pulled once by LogCollectedMetrics.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	LoggerProvider *sdklog.LoggerProvider
	Resource       *resource.Resource

	reader *sdkmetric.ManualReader
	logger *slog.Logger
}

// NewTelemetry creates the providers. All of them export through logger.
func NewTelemetry(ctx context.Context, logger *slog.Logger, serviceVersion string) (*Telemetry, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(ServiceName),
			semconv.ServiceVersionKey.String(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(oteladapters.NewSlogSpanExporter(logger)),
		sdktrace.WithResource(res),
	)

	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)

	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewSimpleProcessor(oteladapters.NewSlogLogExporter(logger))),
		sdklog.WithResource(res),
	)

	return &Telemetry{
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
		LoggerProvider: loggerProvider,
		Resource:       res,
		reader:         reader,
		logger:         logger,
	}, nil
}

// InstallGlobal registers the providers and a W3C trace context propagator as the otel globals.
func (t *Telemetry) InstallGlobal() {
	otel.SetTracerProvider(t.TracerProvider)
	otel.SetMeterProvider(t.MeterProvider)
	global.SetLoggerProvider(t.LoggerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}

func (t *Telemetry) Tracer(name string) trace.Tracer {
	return t.TracerProvider.Tracer(name)
}

func (t *Telemetry) Meter(name string) metric.Meter {
	return t.MeterProvider.Meter(name)
}

// ContextualLogger returns a logger that emits through the OpenTelemetry slog bridge into LoggerProvider.
func (t *Telemetry) ContextualLogger(name string) *oteladapters.SlogBridgeLogger {
	return oteladapters.NewOTelBridgeLogger(name, t.LoggerProvider)
}

// LogCollectedMetrics collects all metrics and writes one info record per data point.
func (t *Telemetry) LogCollectedMetrics(ctx context.Context) error {
	var rm metricdata.ResourceMetrics
	if err := t.reader.Collect(ctx, &rm); err != nil {
		return err
	}

	for _, scopeMetrics := range rm.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			t.logMetric(ctx, m)
		}
	}

	return nil
}

func (t *Telemetry) logMetric(ctx context.Context, m metricdata.Metrics) {
	switch data := m.Data.(type) {
	case metricdata.Sum[int64]:
		for _, dp := range data.DataPoints {
			t.logger.InfoContext(ctx, "metric", "name", m.Name, "labels", encoded(dp.Attributes), "value", dp.Value)
		}
	case metricdata.Sum[float64]:
		for _, dp := range data.DataPoints {
			t.logger.InfoContext(ctx, "metric", "name", m.Name, "labels", encoded(dp.Attributes), "value", dp.Value)
		}
	case metricdata.Gauge[float64]:
		for _, dp := range data.DataPoints {
			t.logger.InfoContext(ctx, "metric", "name", m.Name, "labels", encoded(dp.Attributes), "value", dp.Value)
		}
	case metricdata.Histogram[float64]:
		for _, dp := range data.DataPoints {
			t.logger.InfoContext(ctx, "metric",
				"name", m.Name,
				"labels", encoded(dp.Attributes),
				"count", dp.Count,
				"sum", dp.Sum,
			)
		}
	default:
		t.logger.DebugContext(ctx, "metric with unsupported aggregation skipped", "name", m.Name)
	}
}

func encoded(set attribute.Set) string {
	return set.Encoded(attribute.DefaultEncoder())
}

// Shutdown flushes and stops all providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.TracerProvider.Shutdown(ctx),
		t.MeterProvider.Shutdown(ctx),
		t.LoggerProvider.Shutdown(ctx),
	)
}
