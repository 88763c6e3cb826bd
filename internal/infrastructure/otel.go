package infrastructure

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"csvdescribe/internal/config"
)

const (
	ServiceVersion = config.AppVersion
	MeterName      = config.AppName
)

// Run outcomes used as the "outcome" metric attribute
const (
	OutcomeSuccess    = "success"
	OutcomeMissing    = "missing"
	OutcomeEmpty      = "empty"
	OutcomeUnexpected = "unexpected"
)

// OTelProviders holds the OpenTelemetry providers.
// TracerProvider and MeterProvider are nil when the signal is disabled; Tracer
// and Meter are then no-ops and always safe to use.
type OTelProviders struct {
	TracerProvider  *sdktrace.TracerProvider
	MeterProvider   *sdkmetric.MeterProvider
	Tracer          trace.Tracer
	Meter           metric.Meter
	Registry        *promclient.Registry
	MetricsTextfile string
	Logger          *slog.Logger
}

// OTelOption customises InitializeOTel
type OTelOption func(*otelOptions)

type otelOptions struct {
	traceWriter io.Writer
}

// WithTraceWriter sends exported spans to w instead of stderr
func WithTraceWriter(w io.Writer) OTelOption {
	return func(o *otelOptions) { o.traceWriter = w }
}

// InitializeOTel initializes tracing and metrics from the telemetry config.
// Spans never go to stdout.
func InitializeOTel(cfg config.TelemetryConfig, paths *config.Paths, logger *slog.Logger, opts ...OTelOption) (*OTelProviders, error) {
	if logger == nil {
		logger = GetLogger()
	}
	o := otelOptions{traceWriter: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	ctx := context.Background()
	providers := DisabledProviders(logger)

	res := createResource(cfg)

	if cfg.TracingEnabled() {
		if err := initializeTracing(ctx, cfg, res, providers, o.traceWriter); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.MetricsEnabled() {
		textfile := cfg.MetricsTextfile
		if paths != nil {
			textfile = paths.GetRelativePath(textfile)
		}
		if err := initializeMetrics(ctx, res, providers, textfile); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	logger.DebugContext(ctx, "OpenTelemetry initialization complete",
		slog.String("service", cfg.ServiceName),
		slog.Bool("tracing_enabled", cfg.TracingEnabled()),
		slog.Bool("metrics_enabled", cfg.MetricsEnabled()))

	return providers, nil
}

// DisabledProviders returns providers with no-op tracer and meter
func DisabledProviders(logger *slog.Logger) *OTelProviders {
	if logger == nil {
		logger = GetLogger()
	}
	return &OTelProviders{
		Tracer: tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:  metricnoop.NewMeterProvider().Meter(MeterName),
		Logger: logger,
	}
}

// createResource creates the OpenTelemetry resource
func createResource(cfg config.TelemetryConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	)
}

// initializeTracing sets up span export to w
func initializeTracing(ctx context.Context, cfg config.TelemetryConfig, res *resource.Resource, providers *OTelProviders, w io.Writer) error {
	if cfg.TraceExporter != "stderr" {
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(ServiceVersion))
	otel.SetTracerProvider(tp)

	providers.Logger.DebugContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return nil
}

// initializeMetrics wires the OTel Prometheus exporter to a private registry
// which is written out as a textfile on Shutdown
func initializeMetrics(ctx context.Context, res *resource.Resource, providers *OTelProviders, textfile string) error {
	registry := promclient.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(ServiceVersion))
	providers.Registry = registry
	providers.MetricsTextfile = textfile

	providers.Logger.DebugContext(ctx, "Metrics initialized",
		slog.String("textfile", textfile))

	return nil
}

// RunMetrics holds the instruments recorded once per run
type RunMetrics struct {
	Runs       metric.Int64Counter
	RowsLoaded metric.Int64Histogram
	Duration   metric.Float64Histogram
}

// CreateRunMetrics creates the run instruments on meter
func CreateRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	runs, err := meter.Int64Counter(
		"describe_runs",
		metric.WithDescription("Number of describe runs by outcome"),
	)
	if err != nil {
		return nil, err
	}

	rows, err := meter.Int64Histogram(
		"describe_rows_loaded",
		metric.WithDescription("Data rows loaded from the CSV file"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"describe_run_duration_seconds",
		metric.WithDescription("Run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RunMetrics{Runs: runs, RowsLoaded: rows, Duration: duration}, nil
}

// RecordRun records one finished run
func (m *RunMetrics) RecordRun(ctx context.Context, outcome string, rows int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.Runs.Add(ctx, 1, attrs)
	m.Duration.Record(ctx, duration.Seconds(), attrs)
	if outcome == OutcomeSuccess {
		m.RowsLoaded.Record(ctx, int64(rows))
	}
}

// Shutdown writes the metrics textfile, then flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}

	var errs []error

	if p.Registry != nil && p.MetricsTextfile != "" {
		if err := os.MkdirAll(filepath.Dir(p.MetricsTextfile), 0755); err != nil {
			errs = append(errs, fmt.Errorf("failed to create metrics directory: %w", err))
		} else if err := promclient.WriteToTextfile(p.MetricsTextfile, p.Registry); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics textfile: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	return stderrors.Join(errs...)
}

// generateInstanceID generates a unique instance ID
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, os.Getpid())
}

// TraceIDFromContext extracts the OTel trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
