package infrastructure

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"csvdescribe/internal/config"
)

func TestInitializeOTelDisabledByDefault(t *testing.T) {
	providers, err := InitializeOTel(config.Default().Telemetry, nil, NewDiscardLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.Registry)
	assert.NotNil(t, providers.Tracer, "noop tracer must be usable")
	assert.NotNil(t, providers.Meter, "noop meter must be usable")

	ctx, span := providers.Tracer.Start(context.Background(), "describe.run")
	span.End()
	assert.Empty(t, TraceIDFromContext(ctx))

	metrics, err := CreateRunMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordRun(ctx, OutcomeSuccess, 3, time.Millisecond)

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTelTracingToWriter(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.TraceExporter = "stderr"

	var buf bytes.Buffer
	providers, err := InitializeOTel(cfg, nil, NewDiscardLogger(), WithTraceWriter(&buf))
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)

	ctx, span := providers.Tracer.Start(context.Background(), "describe.test")
	traceID := TraceIDFromContext(ctx)
	span.End()

	assert.NotEmpty(t, traceID)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)

	require.NoError(t, providers.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "describe.test")
	assert.Contains(t, buf.String(), traceID)
}

func TestInitializeOTelRejectsUnknownExporter(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.TraceExporter = "otlp"

	providers, err := InitializeOTel(cfg, nil, NewDiscardLogger())
	require.Error(t, err)
	assert.Nil(t, providers)
	assert.Contains(t, err.Error(), "unsupported trace exporter")
}

func TestRunMetricsWrittenToTextfile(t *testing.T) {
	dir := t.TempDir()
	paths, err := config.NewPaths(dir)
	require.NoError(t, err)

	cfg := config.Default().Telemetry
	cfg.MetricsTextfile = filepath.Join("metrics", "describe.prom")

	providers, err := InitializeOTel(cfg, paths, NewDiscardLogger())
	require.NoError(t, err)
	require.NotNil(t, providers.Registry)
	assert.Equal(t, filepath.Join(dir, "metrics", "describe.prom"), providers.MetricsTextfile)

	metrics, err := CreateRunMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordRun(ctx, OutcomeSuccess, 8, 25*time.Millisecond)
	metrics.RecordRun(ctx, OutcomeMissing, 0, time.Millisecond)

	require.NoError(t, providers.Shutdown(ctx))

	content, err := os.ReadFile(providers.MetricsTextfile)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "describe_runs")
	assert.Contains(t, text, `outcome="success"`)
	assert.Contains(t, text, `outcome="missing"`)
	assert.Contains(t, text, "describe_rows_loaded")
	assert.Contains(t, text, "describe_run_duration_seconds")
}

func TestRecordRunNilMetrics(t *testing.T) {
	var metrics *RunMetrics
	assert.NotPanics(t, func() {
		metrics.RecordRun(context.Background(), OutcomeEmpty, 0, time.Second)
	})
}

func TestShutdownNilProviders(t *testing.T) {
	var providers *OTelProviders
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "describe.load")
	RecordError(ctx, stderrors.New("boom"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

func TestRecordErrorWithoutSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordError(context.Background(), stderrors.New("boom"))
	})
}
