// Package dataprocessing turns a CSV file into a descriptive statistics table.
//
// # Components
//
//  1. Loader: reads the CSV into a typed dataframe.DataFrame
//  2. Summarizer: derives count, mean, std, min, quartiles and max per numeric column
//  3. FormatReport: renders a SummaryReport as an aligned text table
//
// # Usage
//
//	df, err := dataprocessing.NewLoader(logger).Load(ctx, paths.DataCSV)
//	if err != nil {
//	    return err
//	}
//	report, err := dataprocessing.NewSummarizer(logger).Describe(ctx, df)
//	if err != nil {
//	    return err
//	}
//	fmt.Fprintln(w, dataprocessing.FormatReport(report))
//
// # Data Flow
//
//	data.csv → Loader → DataFrame → Summarizer → SummaryReport → FormatReport → text
//
// # Error Handling
//
// Loader failures are AppErrors: an input with no data rows is EMPTY_DATA, a
// malformed or ragged file is PARSING and I/O failures are STORAGE.
package dataprocessing
