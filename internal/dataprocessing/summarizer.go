package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"csvdescribe/internal/errors"
	"csvdescribe/pkg/contracts/domain"
)

// Summarizer derives descriptive statistics from a loaded dataframe
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a new summarizer
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// Describe summarises every Int and Float column of df in column order.
// A dataframe without numeric columns is described categorically instead.
func (s *Summarizer) Describe(ctx context.Context, df dataframe.DataFrame) (*domain.SummaryReport, error) {
	if df.Err != nil {
		return nil, errors.NewAppValidationError(fmt.Sprintf("cannot describe invalid dataframe: %v", df.Err))
	}

	names := df.Names()
	types := df.Types()

	var numeric []string
	for i, name := range names {
		if types[i] == series.Int || types[i] == series.Float {
			numeric = append(numeric, name)
		}
	}

	if len(numeric) == 0 {
		s.logger.InfoContext(ctx, "no numeric columns, describing categorically",
			slog.Int("columns", len(names)))
		return s.describeCategorical(df, names)
	}

	report := domain.NewNumericReport(df.Nrow())
	for _, name := range numeric {
		col := domain.ColumnSummary{
			Name:    name,
			Kind:    domain.ColumnKindNumeric,
			Numbers: numericStatistics(df.Col(name).Float()),
		}
		if err := report.AddColumn(col); err != nil {
			return nil, errors.NewInternalError("failed to add column summary", err)
		}
	}

	s.logger.InfoContext(ctx, "numeric summary generated",
		slog.Int("rows", report.Rows),
		slog.Int("numeric_columns", len(numeric)),
		slog.Int("skipped_columns", len(names)-len(numeric)))

	return report, nil
}

// numericStatistics computes count, mean, std, min, 25%, 50%, 75% and max,
// ignoring NaN cells.
func numericStatistics(values []float64) []float64 {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}

	nan := math.NaN()
	n := len(present)
	if n == 0 {
		return []float64{0, nan, nan, nan, nan, nan, nan, nan}
	}

	sort.Float64s(present)

	std := nan
	if n > 1 {
		std = stat.StdDev(present, nil)
	}

	return []float64{
		float64(n),
		stat.Mean(present, nil),
		std,
		floats.Min(present),
		Quantile(present, 0.25),
		Quantile(present, 0.50),
		Quantile(present, 0.75),
		floats.Max(present),
	}
}

func (s *Summarizer) describeCategorical(df dataframe.DataFrame, names []string) (*domain.SummaryReport, error) {
	report := domain.NewCategoricalReport(df.Nrow())

	for _, name := range names {
		col := df.Col(name)
		if err := report.AddColumn(domain.ColumnSummary{
			Name: name,
			Kind: domain.ColumnKindCategorical,
			Text: categoricalStatistics(col.Records(), col.IsNaN()),
		}); err != nil {
			return nil, errors.NewInternalError("failed to add column summary", err)
		}
	}

	return report, nil
}

// categoricalStatistics computes count, unique, top and freq. Ties for top go
// to the value seen first.
func categoricalStatistics(records []string, missing []bool) []string {
	counts := make(map[string]int)
	var order []string
	count := 0

	for i, v := range records {
		if missing[i] {
			continue
		}
		count++
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	if count == 0 {
		return []string{"0", "0", "NaN", "NaN"}
	}

	top := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[top] {
			top = v
		}
	}

	return []string{
		strconv.Itoa(count),
		strconv.Itoa(len(order)),
		top,
		strconv.Itoa(counts[top]),
	}
}
