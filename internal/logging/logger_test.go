package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dupcon.log")

	logger, err := New(path, "debug")
	require.NoError(t, err)

	logger.Info("console started", zap.String("page", "login"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "console started")
	assert.Contains(t, string(data), `"page":"login"`)
}

func TestNewEmptyPathIsNop(t *testing.T) {
	logger, err := New("", "info")
	require.NoError(t, err)
	// Nop logger must be safe to use.
	logger.Error("ignored")
}

func TestNewBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dupcon.log")

	logger, err := New(path, "shouty")
	require.NoError(t, err)

	logger.Debug("hidden at info level")
	logger.Info("visible")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden at info level")
	assert.Contains(t, string(data), "visible")
}
