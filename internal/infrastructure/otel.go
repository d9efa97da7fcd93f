package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"energyreport/internal/config"
	"energyreport/pkg/contracts"
)

const (
	ServiceName    = "energyreport"
	ServiceVersion = contracts.Version
	MeterName      = "energyreport"
	// MetricsNamespace prefixes every exported Prometheus metric name
	MetricsNamespace = "energyreport"
)

// Telemetry holds the tracer and meter for one pipeline run. Spans are
// exported synchronously into memory and metrics into a private Prometheus
// registry; Flush writes both to their files.
type Telemetry struct {
	Tracer  trace.Tracer
	Meter   metric.Meter
	Metrics *PipelineMetrics
	Runtime *RuntimeMetrics

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	registry       *prometheus.Registry
	spans          *bytes.Buffer

	metricsFile string
	traceFile   string
	logger      *slog.Logger
}

// NoopTelemetry returns telemetry whose spans and instruments discard everything
func NoopTelemetry() *Telemetry {
	meter := metricnoop.NewMeterProvider().Meter(MeterName)
	metrics, _ := NewPipelineMetrics(meter)
	runtimeMetrics, _ := NewRuntimeMetrics(meter)
	return &Telemetry{
		Tracer:  tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:   meter,
		Metrics: metrics,
		Runtime: runtimeMetrics,
		logger:  GetLogger(),
	}
}

// InitializeTelemetry builds the providers enabled in cfg. Disabled signals
// fall back to no-op implementations so callers never branch on them.
func InitializeTelemetry(cfg config.ObservabilityConfig, paths *config.Paths, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}

	tel := NoopTelemetry()
	tel.logger = logger

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = ServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(ServiceVersion),
	)

	if cfg.TracingEnabled {
		tel.spans = &bytes.Buffer{}
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(tel.spans),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}

		// Syncer exports each span on End; no background goroutine outlives the run
		tel.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(exporter),
			sdktrace.WithResource(res),
		)
		tel.Tracer = tel.tracerProvider.Tracer(MeterName, trace.WithInstrumentationVersion(ServiceVersion))
		tel.traceFile = paths.TraceFile
	}

	if cfg.MetricsEnabled {
		tel.registry = prometheus.NewRegistry()
		exporter, err := otelprom.New(
			otelprom.WithRegisterer(tel.registry),
			otelprom.WithNamespace(MetricsNamespace),
			otelprom.WithoutScopeInfo(),
			otelprom.WithoutTargetInfo(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		tel.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		tel.Meter = tel.meterProvider.Meter(MeterName, metric.WithInstrumentationVersion(ServiceVersion))
		if tel.Metrics, err = NewPipelineMetrics(tel.Meter); err != nil {
			return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
		}
		if tel.Runtime, err = NewRuntimeMetrics(tel.Meter); err != nil {
			return nil, fmt.Errorf("failed to create runtime metrics: %w", err)
		}
		tel.metricsFile = paths.MetricsFile
	}

	logger.Debug("Telemetry initialized",
		slog.Bool("tracing_enabled", cfg.TracingEnabled),
		slog.Bool("metrics_enabled", cfg.MetricsEnabled))

	return tel, nil
}

// Registry exposes the Prometheus registry backing the meter, nil when
// metrics are disabled
func (t *Telemetry) Registry() *prometheus.Registry {
	return t.registry
}

// Flush writes the metrics textfile and the span dump, then shuts the
// providers down. It is safe to call on no-op telemetry.
func (t *Telemetry) Flush(ctx context.Context) error {
	var errs []error

	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
		if err := writeFile(t.traceFile, t.spans.Bytes()); err != nil {
			errs = append(errs, fmt.Errorf("write trace file: %w", err))
		}
		t.tracerProvider = nil
	}

	if t.meterProvider != nil {
		if err := writeMetricsTextfile(t.metricsFile, t.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics file: %w", err))
		}
		if err := t.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
		t.meterProvider = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("telemetry flush errors: %v", errs)
	}

	t.logger.DebugContext(ctx, "Telemetry flushed",
		slog.String("metrics_file", t.metricsFile),
		slog.String("trace_file", t.traceFile))
	return nil
}

func writeMetricsTextfile(path string, gatherer prometheus.Gatherer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, gatherer)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// TraceIDFromContext extracts the OpenTelemetry trace ID from context
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// SetSpanAttributes sets integer and string attributes on the current span
func SetSpanAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attrs...)
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() || err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
