package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "csvdescribe/internal/errors"
)

func TestFileValidator_ValidateFile(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantType  apperrors.ErrorType
	}{
		{
			name: "readable file",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "data.csv")
				require.NoError(t, os.WriteFile(file, []byte("a,b\n1,2\n"), 0644))
				return file
			},
		},
		{
			name: "empty file is still valid",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "data.csv")
				require.NoError(t, os.WriteFile(file, nil, 0644))
				return file
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "data", "data.csv")
			},
			wantType: apperrors.ErrTypeNotFound,
		},
		{
			name: "directory instead of file",
			setupFunc: func(t *testing.T) string {
				dir := filepath.Join(t.TempDir(), "data.csv")
				require.NoError(t, os.Mkdir(dir, 0755))
				return dir
			},
			wantType: apperrors.ErrTypeStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())
			path := tt.setupFunc(t)

			err := validator.ValidateFile(path)

			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestFileValidator_ValidateFileUnreadable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for this user")
	}

	file := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(file, []byte("a\n1\n"), 0000))

	err := NewFileValidator(nil).ValidateFile(file)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypePermission))
}
