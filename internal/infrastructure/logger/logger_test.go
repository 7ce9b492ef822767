package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestZapLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"WARN", zapcore.WarnLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, zapLevel(tt.level))
		})
	}
}

func TestNew_JSONFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")

	log, err := New(&Config{
		Level:      "info",
		Format:     "json",
		Output:     path,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	require.NoError(t, err)

	log.Info("schema synced")
	require.NoError(t, Sync(log))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(raw, &entry))
	assert.Equal(t, "schema synced", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.NotEmpty(t, entry["ts"])
	assert.NotEmpty(t, entry["caller"])
}

func TestNew_LevelFiltersEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")

	log, err := New(&Config{
		Level:      "warn",
		Format:     "json",
		Output:     path,
		TimeFormat: "2006-01-02T15:04:05Z07:00",
	})
	require.NoError(t, err)

	log.Info("below threshold")
	log.Warn("at threshold")
	require.NoError(t, Sync(log))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "below threshold")
	assert.Contains(t, string(raw), "at threshold")
}

func TestNew_ConsoleFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")

	log, err := New(&Config{
		Level:      "debug",
		Format:     "console",
		Output:     path,
		TimeFormat: "2006-01-02 15:04:05",
	})
	require.NoError(t, err)

	log.Debug("tick started")
	require.NoError(t, Sync(log))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// Console lines are not JSON.
	assert.Contains(t, string(raw), "tick started")
	assert.False(t, json.Valid(raw))
}

func TestOpenSink_UnwritablePathFallsBackToStdout(t *testing.T) {
	sink := openSink(filepath.Join(t.TempDir(), "missing", "nested", "engine.log"))
	require.NotNil(t, sink)

	_, err := sink.Write([]byte("still alive\n"))
	assert.NoError(t, err)
}
