package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// Common CSV fixtures
const (
	// NumericCSV is two integer columns
	NumericCSV = "a,b\n1,2\n3,4\n"

	// NumericTable is the describe table of NumericCSV
	NumericTable = "" +
		"              a         b\n" +
		"count  2.000000  2.000000\n" +
		"mean   2.000000  3.000000\n" +
		"std    1.414214  1.414214\n" +
		"min    1.000000  2.000000\n" +
		"25%    1.500000  2.500000\n" +
		"50%    2.000000  3.000000\n" +
		"75%    2.500000  3.500000\n" +
		"max    3.000000  4.000000"

	// MixedCSV has numeric, text and boolean columns
	MixedCSV = "id,name,price,active\n1,apple,1.5,true\n2,pear,2.5,false\n3,plum,,true\n"

	// TextCSV has no numeric columns
	TextCSV = "city\nOslo\nRome\nOslo\n"

	// HeaderOnlyCSV has a header and no data rows
	HeaderOnlyCSV = "a,b,c\n"

	// RaggedCSV has a row wider than its header
	RaggedCSV = "a,b\n1,2\n3,4,5\n"
)

// WriteCSV writes content to a file named data.csv under dir and returns its path
func WriteCSV(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write CSV fixture: %v", err)
	}
	return path
}

// WriteDataCSV lays content out as <exeDir>/data/data.csv and returns exeDir
func WriteDataCSV(t *testing.T, exeDir, content string) string {
	t.Helper()

	dataDir := filepath.Join(exeDir, "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatalf("failed to create data directory: %v", err)
	}
	WriteCSV(t, dataDir, content)
	return exeDir
}

// NumericColumnCSV builds a single column CSV holding the values 1..rows
func NumericColumnCSV(name string, rows int) string {
	content := name + "\n"
	for i := 1; i <= rows; i++ {
		content += strconv.Itoa(i) + "\n"
	}
	return content
}

