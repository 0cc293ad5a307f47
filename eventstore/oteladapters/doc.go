// Package oteladapters maps the eventstore observability interfaces onto OpenTelemetry.
//
// MetricsCollector and TracingCollector wrap a metric.Meter and a trace.Tracer.
// SlogBridgeLogger and OTelLogger implement eventstore.ContextualLogger.
// SlogSpanExporter is a span exporter that writes finished spans to a *slog.Logger,
// which lets a console program inspect its traces without a collector.
package oteladapters
