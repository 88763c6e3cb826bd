// Package shared groups helpers used across the describe packages.
//
// The testutil subpackage provides:
//
//   - a buffered slog handler for asserting on log output
//   - CSV fixtures laid out the way the executable expects them
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    exeDir := testutil.WriteDataCSV(t, t.TempDir(), testutil.NumericCSV)
//	    // run code against exeDir with logger
//	    testutil.AssertNoErrors(t, logs)
//	}
//
// Nothing in this package is imported by production code.
package shared
