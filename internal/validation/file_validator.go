package validation

import (
	"fmt"
	"log/slog"
	"os"

	apperrors "csvdescribe/internal/errors"
)

// FileValidator checks input files before they are handed to the loader
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks that path exists, is a regular file and can be opened.
// A missing file yields a NOT_FOUND error, a directory a STORAGE error and an
// unreadable file a PERMISSION error.
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Warn("File does not exist",
			slog.String("file", path))
		return apperrors.NewNotFoundError(path, err)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewStorageError(fmt.Sprintf("%s is a directory, not a file", path), nil).
			WithContext("path", path)
	}

	// Check if file is readable by opening it
	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewPermissionError(fmt.Sprintf("file %s is not readable", path), err).
			WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}
