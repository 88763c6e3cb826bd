package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Well-known names under the executable directory
const (
	DataDirName    = "data"
	DataFileName   = "data.csv"
	LogsDirName    = "logs"
	ConfigFileName = "describe.yaml"
	EnvFileName    = ".env"
)

// Paths contains all the application paths.
// Every path is anchored at the directory holding the executable, never the
// current working directory.
type Paths struct {
	ExecutableDir string
	DataDir       string
	LogsDir       string

	// DataCSV is the dataset the reporter summarises: <exe dir>/data/data.csv
	DataCSV string

	ConfigFile string
	EnvFile    string
}

// GetPaths returns the application paths relative to the executable location
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return NewPaths(filepath.Dir(exe))
}

// NewPaths builds the path set for an explicit executable directory.
// Relative directories are made absolute against the working directory.
func NewPaths(exeDir string) (*Paths, error) {
	if exeDir == "" {
		return nil, fmt.Errorf("executable directory is empty")
	}
	absDir, err := filepath.Abs(exeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable directory %s: %w", exeDir, err)
	}

	dataDir := filepath.Join(absDir, DataDirName)

	return &Paths{
		ExecutableDir: absDir,
		DataDir:       dataDir,
		LogsDir:       filepath.Join(absDir, LogsDirName),
		DataCSV:       filepath.Join(dataDir, DataFileName),
		ConfigFile:    filepath.Join(absDir, ConfigFileName),
		EnvFile:       filepath.Join(absDir, EnvFileName),
	}, nil
}

// GetRelativePath returns a path relative to the executable directory.
// Absolute paths are returned unchanged.
func (p *Paths) GetRelativePath(subpath string) string {
	if filepath.IsAbs(subpath) {
		return subpath
	}
	return filepath.Join(p.ExecutableDir, subpath)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved paths at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("files",
			slog.String("data_csv", p.DataCSV),
			slog.Bool("data_csv_exists", FileExists(p.DataCSV)),
			slog.String("config", p.ConfigFile),
			slog.String("env", p.EnvFile),
		))
}
