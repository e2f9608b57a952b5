package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDisabled(t *testing.T) {
	t.Setenv("POMODORO_DEBUG", "")
	t.Setenv("POMODORO_DEBUG_FILE", "")

	require.NoError(t, Initialize(false, ""))
	assert.NotNil(t, Logger)
}

func TestInitializeWritesToDebugFile(t *testing.T) {
	t.Setenv("POMODORO_DEBUG", "")
	t.Setenv("POMODORO_DEBUG_FILE", "")
	logFile := filepath.Join(t.TempDir(), "nested", "debug.log")

	require.NoError(t, Initialize(true, logFile))
	Logger.Info("phase completed", "phase", "Pomodoro")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Debug logging initialized")
	assert.Contains(t, string(data), `"phase":"Pomodoro"`)
}

func TestInitializeReadsEnvironment(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "env.log")
	t.Setenv("POMODORO_DEBUG", "1")
	t.Setenv("POMODORO_DEBUG_FILE", logFile)

	require.NoError(t, Initialize(false, ""))

	_, err := os.Stat(logFile)
	assert.NoError(t, err)
}
