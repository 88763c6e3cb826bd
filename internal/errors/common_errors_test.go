package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeEmptyData,
				Message: "CSV file is empty",
			},
			wantMessage: "[EMPTY_DATA] CSV file is empty",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "malformed CSV",
				Cause:   fmt.Errorf("record on line 3: wrong number of fields"),
			},
			wantMessage: "[PARSING] malformed CSV: record on line 3: wrong number of fields",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type: ErrTypeValidation,
			},
			wantMessage: "[VALIDATION] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewStorageError("failed to read CSV file", fs.ErrPermission)

	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Equal(t, fs.ErrPermission, err.Unwrap())
	assert.Nil(t, NewEmptyDataError("empty").Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeParsing, Message: "bad row"}

	got := err.WithContext("line", 3).WithContext("fields", 4)

	assert.Same(t, err, got)
	assert.Equal(t, map[string]interface{}{"line": 3, "fields": 4}, err.Context)
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantMsg  string
		hasCause bool
	}{
		{"not found", NewNotFoundError("/opt/app/data/data.csv", fs.ErrNotExist), ErrTypeNotFound, "/opt/app/data/data.csv not found", true},
		{"empty data", NewEmptyDataError("no columns to parse from file"), ErrTypeEmptyData, "no columns to parse from file", false},
		{"parsing", NewParsingError("malformed CSV", cause), ErrTypeParsing, "malformed CSV", true},
		{"storage", NewStorageError("failed to open CSV file", cause), ErrTypeStorage, "failed to open CSV file", true},
		{"validation", NewAppValidationError("invalid level"), ErrTypeValidation, "invalid level", false},
		{"permission", NewPermissionError("file is not readable", cause), ErrTypePermission, "file is not readable", true},
		{"config", NewConfigError("failed to load config", cause), ErrTypeConfig, "failed to load config", true},
		{"internal", NewInternalError("panic during summarize", cause), ErrTypeInternal, "panic during summarize", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantMsg, tt.err.Message)
			assert.Equal(t, tt.hasCause, tt.err.Cause != nil)
			assert.NotNil(t, tt.err.Context)
		})
	}
}

func TestNotFoundErrorCarriesPath(t *testing.T) {
	err := NewNotFoundError("/srv/data/data.csv", nil)
	require.Contains(t, err.Context, "path")
	assert.Equal(t, "/srv/data/data.csv", err.Context["path"])
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("plain"), ""},
		{"direct", NewEmptyDataError("empty"), ErrTypeEmptyData},
		{"wrapped", fmt.Errorf("load: %w", NewParsingError("bad", nil)), ErrTypeParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.err))
		})
	}
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("run: %w", NewNotFoundError("x", nil))

	assert.True(t, IsType(err, ErrTypeNotFound))
	assert.False(t, IsType(err, ErrTypeEmptyData))
	assert.False(t, IsType(nil, ""))
}
