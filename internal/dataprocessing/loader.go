package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"csvdescribe/internal/errors"
)

// MissingValues are the cell tokens read as a missing value
var MissingValues = []string{
	"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "null", "NULL", "None", "<NA>", "#N/A",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader reads a CSV file into a typed dataframe
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new CSV loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads every record of the file at path, closes it and builds a
// dataframe whose column types are inferred from the cell values.
func (l *Loader) Load(ctx context.Context, path string) (dataframe.DataFrame, error) {
	content, err := readFile(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	records, err := l.parseRecords(ctx, content)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	if len(records) == 0 {
		l.logger.WarnContext(ctx, "CSV file has no records", slog.String("file", path))
		return dataframe.DataFrame{}, errors.NewEmptyDataError("no columns to parse from file").
			WithContext("path", path)
	}
	if len(records) == 1 {
		l.logger.WarnContext(ctx, "CSV file has a header but no data rows",
			slog.String("file", path),
			slog.Int("columns", len(records[0])))
		return dataframe.DataFrame{}, errors.NewEmptyDataError("no data rows below the header").
			WithContext("path", path)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(MissingValues),
		dataframe.WithTypes(missingColumnTypes(records)),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.NewParsingError("failed to build dataframe", df.Err)
	}

	l.logger.InfoContext(ctx, "CSV loaded",
		slog.String("file", path),
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()))

	return df, nil
}

// readFile reads the whole file and releases the handle before returning
func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(path, err)
		}
		if os.IsPermission(err) {
			return nil, errors.NewPermissionError(fmt.Sprintf("file %s is not readable", path), err)
		}
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to read %s", path), err)
	}

	return bytes.TrimPrefix(content, utf8BOM), nil
}

// parseRecords tokenizes content into a header row plus data rows, all of the
// header's width. A row wider than the header is rejected; a narrower one is
// padded with missing values.
func (l *Loader) parseRecords(ctx context.Context, content []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	// quotes inside an unquoted field are kept as literal text
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if stderrors.As(err, &parseErr) {
				return nil, errors.NewParsingError(
					fmt.Sprintf("Error tokenizing data. Malformed input in line %d", parseErr.Line), err)
			}
			return nil, errors.NewParsingError("failed to read CSV", err)
		}

		if len(records) == 0 {
			records = append(records, cleanHeader(record))
			continue
		}

		width := len(records[0])
		if len(record) > width {
			line, _ := reader.FieldPos(0)
			l.logger.WarnContext(ctx, "CSV row wider than header",
				slog.Int("line", line),
				slog.Int("expected", width),
				slog.Int("saw", len(record)))
			return nil, errors.NewParsingError(
				fmt.Sprintf("Error tokenizing data. Expected %d fields in line %d, saw %d", width, line, len(record)), nil)
		}

		row := make([]string, width)
		for i, cell := range record {
			row[i] = strings.TrimSpace(cell)
		}
		records = append(records, row)
	}

	return records, nil
}

// cleanHeader names blank columns "Unnamed: i" and suffixes repeated names
// with ".1", ".2" and so on.
func cleanHeader(header []string) []string {
	cleaned := make([]string, len(header))
	seen := make(map[string]bool, len(header))

	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		candidate := name
		for n := 1; seen[candidate]; n++ {
			candidate = name + "." + strconv.Itoa(n)
		}
		seen[candidate] = true
		cleaned[i] = candidate
	}

	return cleaned
}

// missingColumnTypes types every column holding only missing values as Float,
// where type detection would otherwise fall back to String.
func missingColumnTypes(records [][]string) map[string]series.Type {
	types := make(map[string]series.Type)

	for col, name := range records[0] {
		allMissing := true
		for _, row := range records[1:] {
			if !isMissing(row[col]) {
				allMissing = false
				break
			}
		}
		if allMissing {
			types[name] = series.Float
		}
	}

	return types
}

func isMissing(cell string) bool {
	for _, token := range MissingValues {
		if cell == token {
			return true
		}
	}
	return false
}
