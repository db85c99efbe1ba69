// Package telemetry installs the OpenTelemetry tracer and meter providers the
// instrumented HTTP client and the widget service report to.
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/contrib/exporters/autoexport"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

type Option func(m *manager)

// WithServiceName sets the service name for resource tagging.
func WithServiceName(name string) Option {
	return func(m *manager) {
		m.serviceName = name
	}
}

// WithTraceExporter specifies the trace exporter to use instead of the one
// selected by OTEL_TRACES_EXPORTER.
func WithTraceExporter(exporter sdktrace.SpanExporter) Option {
	return func(m *manager) {
		m.traceExporter = exporter
	}
}

// WithMetricsReader specifies the metrics reader to use instead of the one
// selected by OTEL_METRICS_EXPORTER.
func WithMetricsReader(reader sdkmetric.Reader) Option {
	return func(m *manager) {
		m.metricsReader = reader
	}
}

type manager struct {
	serviceName   string
	traceExporter sdktrace.SpanExporter
	metricsReader sdkmetric.Reader
}

// Init installs global tracer and meter providers. Exporters default to the
// ones named by the standard OTEL_*_EXPORTER variables. The returned shutdown
// flushes and stops both providers.
func Init(ctx context.Context, opts ...Option) (shutdown func(context.Context) error, err error) {
	m := &manager{serviceName: "tradutor"}
	for _, opt := range opts {
		opt(m)
	}

	if m.traceExporter == nil {
		if m.traceExporter, err = autoexport.NewSpanExporter(ctx); err != nil {
			return nil, fmt.Errorf("telemetry: trace exporter: %w", err)
		}
	}
	if m.metricsReader == nil {
		if m.metricsReader, err = autoexport.NewMetricReader(ctx); err != nil {
			return nil, fmt.Errorf("telemetry: metrics reader: %w", err)
		}
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(semconv.ServiceName(m.serviceName)))
	if err != nil {
		return nil, fmt.Errorf("telemetry: resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(m.traceExporter),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(m.metricsReader),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
