package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Len(t, handler.GetRecords(), 2)
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
		assert.True(t, handler.ContainsAttr("code", int64(500)))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
		AssertLogContains(t, handler, slog.LevelWarn, "warn")
	})

	t.Run("keeps attributes and groups of derived loggers", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("component", "loader")).WithGroup("csv").Info("loaded", slog.Int("rows", 3))

		assert.Equal(t, 1, handler.Count())
		assert.True(t, handler.ContainsAttr("component", "loader"))
		assert.True(t, handler.ContainsAttr("csv.rows", int64(3)))
	})

	t.Run("clear functionality", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("message 1")
		logger.With("k", "v").Info("message 2")
		require.Equal(t, 2, handler.Count())

		handler.Clear()
		assert.Equal(t, 0, handler.Count())
		AssertNoErrors(t, handler)
	})
}

func TestWriteDataCSV(t *testing.T) {
	exeDir := WriteDataCSV(t, t.TempDir(), NumericCSV)

	content, err := os.ReadFile(filepath.Join(exeDir, "data", "data.csv"))
	require.NoError(t, err)
	assert.Equal(t, NumericCSV, string(content))
}

func TestNumericColumnCSV(t *testing.T) {
	content := NumericColumnCSV("x", 3)

	assert.Equal(t, "x\n1\n2\n3\n", content)
	assert.Equal(t, 4, strings.Count(content, "\n"))
}
