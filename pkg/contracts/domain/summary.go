package domain

import (
	"fmt"
)

// ColumnKind classifies how a column was summarised
type ColumnKind string

const (
	ColumnKindNumeric     ColumnKind = "numeric"
	ColumnKindCategorical ColumnKind = "categorical"
)

// Statistic labels, in report order
const (
	StatCount  = "count"
	StatMean   = "mean"
	StatStd    = "std"
	StatMin    = "min"
	StatQ1     = "25%"
	StatMedian = "50%"
	StatQ3     = "75%"
	StatMax    = "max"

	StatUnique = "unique"
	StatTop    = "top"
	StatFreq   = "freq"
)

// NumericStatistics is the describe set for numeric columns.
func NumericStatistics() []string {
	return []string{StatCount, StatMean, StatStd, StatMin, StatQ1, StatMedian, StatQ3, StatMax}
}

// CategoricalStatistics is the describe set used when a dataset has no numeric columns.
func CategoricalStatistics() []string {
	return []string{StatCount, StatUnique, StatTop, StatFreq}
}

// ColumnSummary holds the statistics of one column. Numeric columns fill Numbers,
// categorical columns fill Text; both are indexed like SummaryReport.Statistics.
type ColumnSummary struct {
	Name    string     `json:"name"`
	Kind    ColumnKind `json:"kind"`
	Numbers []float64  `json:"numbers,omitempty"`
	Text    []string   `json:"text,omitempty"`
}

// SummaryReport is the derived per-column statistics of a dataset
type SummaryReport struct {
	Kind       ColumnKind      `json:"kind"`
	Rows       int             `json:"rows"`
	Statistics []string        `json:"statistics"`
	Columns    []ColumnSummary `json:"columns"`
}

// NewNumericReport creates an empty numeric report for a dataset of the given row count.
func NewNumericReport(rows int) *SummaryReport {
	return &SummaryReport{
		Kind:       ColumnKindNumeric,
		Rows:       rows,
		Statistics: NumericStatistics(),
	}
}

// NewCategoricalReport creates an empty categorical report.
func NewCategoricalReport(rows int) *SummaryReport {
	return &SummaryReport{
		Kind:       ColumnKindCategorical,
		Rows:       rows,
		Statistics: CategoricalStatistics(),
	}
}

// AddColumn appends a column summary after checking it matches the report shape.
// Column names must be unique since they head the rendered table.
func (r *SummaryReport) AddColumn(col ColumnSummary) error {
	if col.Name == "" {
		return fmt.Errorf("column name is required")
	}
	if _, ok := r.Column(col.Name); ok {
		return fmt.Errorf("column %q is already in the report", col.Name)
	}
	if col.Kind != r.Kind {
		return fmt.Errorf("column %q is %s, report is %s", col.Name, col.Kind, r.Kind)
	}
	n := len(col.Numbers)
	if col.Kind == ColumnKindCategorical {
		n = len(col.Text)
	}
	if n != len(r.Statistics) {
		return fmt.Errorf("column %q has %d statistics, want %d", col.Name, n, len(r.Statistics))
	}
	r.Columns = append(r.Columns, col)
	return nil
}

// ColumnNames returns the summarised column names in order.
func (r *SummaryReport) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column summary by name.
func (r *SummaryReport) Column(name string) (ColumnSummary, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSummary{}, false
}
