package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_FileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")

	logger, err := NewLogger(LoggerConfig{Level: "debug", OutputPath: path, Format: "json"})
	require.NoError(t, err)

	logger.Debug("Export completed")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(content))), &entry))
	assert.Equal(t, "Export completed", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "caller")
}

func TestNewLogger_Level(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	logger, err := NewLogger(LoggerConfig{Level: "warn", OutputPath: path, Format: "json"})
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "hidden")
	assert.Contains(t, string(content), "shown")
}

func TestNewLogger_Fallbacks(t *testing.T) {
	logger, err := NewLogger(LoggerConfig{Level: "loud", OutputPath: "stderr", Format: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
