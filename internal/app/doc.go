// Package app wires configuration, logging, telemetry and the data pipeline
// into the single describe run.
//
// # Initialization Flow
//
//	1. Resolve paths from the executable location
//	2. Load configuration from describe.yaml, .env and the environment
//	3. Initialize logging and OpenTelemetry
//	4. Build the validator, loader and summarizer
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    // report and exit
//	}
//	application.Run(ctx, os.Stdout)
//	application.Shutdown(ctx)
//
// # Output
//
// Run writes to its writer only: the success message followed by the
// statistics table, or one of three error lines (missing file, empty file,
// unexpected fault). Logs and spans go elsewhere. Run never returns an error;
// the exit status of the command is always zero.
package app
