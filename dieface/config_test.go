package dieface

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	c, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
	assert.FileExists(t, path)
	assert.Equal(t, 250*time.Millisecond, c.Dieface.WatchDebounce.Std())
}

func TestReadConfigKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	_, err := ReadConfig(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "TablePath")

	c, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "resources/tables", c.Dieface.TablePath)
}

func TestReadConfigEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("DIEFACE_ADDRESS", ":9090")
	t.Setenv("DIEFACE_KEY", "secret-key")
	t.Setenv("DIEFACE_TABLES", "/srv/tables")
	t.Setenv("DIEFACE_LOG_LEVEL", "debug")

	c, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", c.Service.Address)
	assert.Equal(t, "secret-key", c.Service.Key)
	assert.Equal(t, "/srv/tables", c.Dieface.TablePath)
	assert.Equal(t, "debug", c.Dieface.LogLevel)
	assert.Equal(t, DefaultConfig().Analysis, c.Analysis)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for s, want := range tests {
		got, err := ParseLogLevel(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := ParseLogLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, slog.LevelInfo, got)
}
