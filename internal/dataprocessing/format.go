package dataprocessing

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"csvdescribe/pkg/contracts/domain"
)

const columnGap = "  "

// FormatReport renders report as a table with one row per statistic and one
// column per summarised field. Labels are left aligned, cells right aligned,
// widths counted in runes.
// The result has no trailing newline.
func FormatReport(report *domain.SummaryReport) string {
	if report == nil {
		return ""
	}

	names := report.ColumnNames()
	cells := make([][]string, len(report.Columns))
	widths := make([]int, len(report.Columns))
	for c, col := range report.Columns {
		cells[c] = make([]string, len(report.Statistics))
		widths[c] = utf8.RuneCountInString(names[c])
		for r := range report.Statistics {
			cell := formatCell(col, r)
			cells[c][r] = cell
			if n := utf8.RuneCountInString(cell); n > widths[c] {
				widths[c] = n
			}
		}
	}

	labelWidth := 0
	for _, stat := range report.Statistics {
		if len(stat) > labelWidth {
			labelWidth = len(stat)
		}
	}

	var b strings.Builder

	b.WriteString(strings.Repeat(" ", labelWidth))
	for c, name := range names {
		b.WriteString(columnGap)
		fmt.Fprintf(&b, "%*s", widths[c], name)
	}

	for r, stat := range report.Statistics {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%-*s", labelWidth, stat)
		for c := range report.Columns {
			b.WriteString(columnGap)
			fmt.Fprintf(&b, "%*s", widths[c], cells[c][r])
		}
	}

	return b.String()
}

func formatCell(col domain.ColumnSummary, row int) string {
	if col.Kind == domain.ColumnKindCategorical {
		return col.Text[row]
	}
	return FormatNumber(col.Numbers[row])
}

// FormatNumber prints v with six decimals, switching to exponent notation
// for magnitudes of 1e15 and above.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.Abs(v) >= 1e15:
		return fmt.Sprintf("%.6e", v)
	default:
		return fmt.Sprintf("%.6f", v)
	}
}
