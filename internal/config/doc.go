// Package config provides path resolution and ambient configuration for the
// describe command.
//
// # Path Management
//
// All paths hang off the directory that contains the executable, never the
// current working directory:
//
//	paths, err := config.GetPaths()
//	dataset := paths.DataCSV // <exe dir>/data/data.csv
//
// The dataset location is fixed and cannot be configured.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. <exe dir>/.env, loaded into the environment without overriding it
//	3. <exe dir>/describe.yaml
//	4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern DESCRIBE_<SECTION>_<KEY>:
//
//	DESCRIBE_LOGGING_LEVEL=debug
//	DESCRIBE_LOGGING_OUTPUT=stderr
//	DESCRIBE_TELEMETRY_TRACE_EXPORTER=stderr
//	DESCRIBE_TELEMETRY_METRICS_TEXTFILE=/var/lib/node_exporter/describe.prom
//
// # Validation
//
// Values are validated with struct tags at load time. Load returns an error for
// unknown log levels, outputs or exporters and for out of range sample ratios.
package config
