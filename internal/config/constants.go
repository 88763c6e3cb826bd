package config

import "time"

// Application constants
const (
	// Application Info
	AppName    = "csvdescribe"
	AppVersion = "1.0.0"

	// Telemetry flush budget at exit
	ShutdownTimeout = 5 * time.Second
)
