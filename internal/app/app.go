package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"csvdescribe/internal/config"
	"csvdescribe/internal/dataprocessing"
	"csvdescribe/internal/errors"
	"csvdescribe/internal/infrastructure"
	"csvdescribe/internal/validation"
	"csvdescribe/pkg/contracts/domain"
)

// Messages written to stdout
const (
	SuccessMessage      = "\n Data Loaded Successfully!\n"
	EmptyDataMessage    = " Error: CSV file is empty."
	NotFoundFormat      = " Error: File not found at %s"
	UnexpectedErrFormat = " Unexpected Error: %v"
)

// Application describes the CSV file next to the executable
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.RunMetrics

	validator  *validation.FileValidator
	loader     *dataprocessing.Loader
	summarizer *dataprocessing.Summarizer
}

// NewApplication resolves paths and configuration relative to the running
// executable and wires logging and telemetry. Broken configuration, logging
// or telemetry setup degrades to defaults with a warning on stderr; only a
// failure to locate the executable is returned.
func NewApplication() (*Application, error) {
	paths, err := config.GetPaths()
	if err != nil {
		return nil, errors.NewStorageError("failed to resolve executable directory", err)
	}

	cfg, err := config.Load(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v; using default configuration\n", config.AppName, err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging, paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v; logging disabled\n", config.AppName, err)
		logger = infrastructure.NewDiscardLogger()
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion))
	paths.LogPathResolution(logger)

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, paths, logger)
	if err != nil {
		logger.Warn("Telemetry disabled", slog.String("error", err.Error()))
		providers = infrastructure.DisabledProviders(logger)
	}

	return New(cfg, paths, logger, providers)
}

// New wires an application from already resolved dependencies. A nil logger
// discards, nil providers disable telemetry.
func New(cfg *config.Config, paths *config.Paths, logger *slog.Logger, providers *infrastructure.OTelProviders) (*Application, error) {
	if paths == nil {
		return nil, errors.NewConfigError("paths are required", nil)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = infrastructure.NewDiscardLogger()
	}
	if providers == nil {
		providers = infrastructure.DisabledProviders(logger)
	}

	metrics, err := infrastructure.CreateRunMetrics(providers.Meter)
	if err != nil {
		return nil, errors.NewConfigError("failed to create run metrics", err)
	}

	return &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: providers,
		Metrics:       metrics,
		validator:     validation.NewFileValidator(infrastructure.WithComponent(logger, "validation")),
		loader:        dataprocessing.NewLoader(infrastructure.WithComponent(logger, "loader")),
		summarizer:    dataprocessing.NewSummarizer(infrastructure.WithComponent(logger, "summarizer")),
	}, nil
}

// Run loads data.csv, writes the success message and the statistics table
// to w, or exactly one error line. It never fails; the returned outcome names
// the branch taken.
func (a *Application) Run(ctx context.Context, w io.Writer) (outcome string) {
	start := time.Now()

	ctx, span := a.OTelProviders.Tracer.Start(ctx, "describe.run",
		trace.WithAttributes(attribute.String("describe.path", a.Paths.DataCSV)))
	defer span.End()

	if traceID := infrastructure.TraceIDFromContext(ctx); traceID != "" {
		ctx = infrastructure.WithTraceID(ctx, traceID)
	}
	ctx = infrastructure.EnsureTraceID(ctx)

	rows := 0
	defer func() {
		if r := recover(); r != nil {
			a.Logger.ErrorContext(ctx, "Run panicked", slog.Any("panic", r))
			outcome = a.reportFailure(ctx, w, errors.NewInternalError("panic during run", fmt.Errorf("%v", r)))
		}
		span.SetAttributes(attribute.String("describe.outcome", outcome))
		a.Metrics.RecordRun(ctx, outcome, rows, time.Since(start))
		a.Logger.InfoContext(ctx, "Run finished",
			slog.String("outcome", outcome),
			slog.Int("rows", rows),
			slog.Duration("duration", time.Since(start)))
	}()

	if err := a.validator.ValidateFile(a.Paths.DataCSV); err != nil {
		return a.reportFailure(ctx, w, err)
	}

	df, err := a.load(ctx)
	if err != nil {
		return a.reportFailure(ctx, w, err)
	}
	rows = df.Nrow()

	fmt.Fprint(w, SuccessMessage+"\n")

	report, err := a.summarize(ctx, df)
	if err != nil {
		return a.reportFailure(ctx, w, err)
	}

	fmt.Fprintln(w, dataprocessing.FormatReport(report))
	return infrastructure.OutcomeSuccess
}

// load reads data.csv inside its own span
func (a *Application) load(ctx context.Context) (dataframe.DataFrame, error) {
	ctx, span := a.OTelProviders.Tracer.Start(ctx, "describe.load")
	defer span.End()

	df, err := a.loader.Load(ctx, a.Paths.DataCSV)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return df, err
	}
	span.SetAttributes(attribute.Int("describe.rows", df.Nrow()), attribute.Int("describe.columns", df.Ncol()))
	return df, nil
}

// summarize computes the statistics inside its own span
func (a *Application) summarize(ctx context.Context, df dataframe.DataFrame) (*domain.SummaryReport, error) {
	ctx, span := a.OTelProviders.Tracer.Start(ctx, "describe.summarize")
	defer span.End()

	report, err := a.summarizer.Describe(ctx, df)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("describe.columns", len(report.Columns)))
	return report, nil
}

// reportFailure writes the single line matching the class of err
func (a *Application) reportFailure(ctx context.Context, w io.Writer, err error) string {
	infrastructure.RecordError(ctx, err)
	logger := infrastructure.WithError(a.Logger, err)

	switch errors.TypeOf(err) {
	case errors.ErrTypeNotFound:
		logger.WarnContext(ctx, "Data file not found", slog.String("path", a.Paths.DataCSV))
		fmt.Fprintf(w, NotFoundFormat+"\n", a.Paths.DataCSV)
		return infrastructure.OutcomeMissing
	case errors.ErrTypeEmptyData:
		logger.WarnContext(ctx, "Data file is empty", slog.String("path", a.Paths.DataCSV))
		fmt.Fprintln(w, EmptyDataMessage)
		return infrastructure.OutcomeEmpty
	default:
		logger.ErrorContext(ctx, "Run failed",
			slog.String("path", a.Paths.DataCSV),
			slog.String("error_type", string(errors.TypeOf(err))))
		fmt.Fprintf(w, UnexpectedErrFormat+"\n", err)
		return infrastructure.OutcomeUnexpected
	}
}

// Shutdown flushes telemetry and closes the log file
func (a *Application) Shutdown(ctx context.Context) error {
	err := a.OTelProviders.Shutdown(ctx)
	if err != nil {
		a.Logger.WarnContext(ctx, "Telemetry shutdown failed", slog.String("error", err.Error()))
	}
	infrastructure.CloseLogFile()
	return err
}
