package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Logger is the process logger. It discards everything until Initialize enables it.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Initialize sets up the logger. Logs go to debugFile when given, otherwise to
// a dated file in the OS state directory. Without debug nothing is written,
// because the terminal belongs to the UI.
func Initialize(debug bool, debugFile string) error {
	if os.Getenv("POMODORO_DEBUG") == "1" {
		debug = true
	}
	if envDebugFile := os.Getenv("POMODORO_DEBUG_FILE"); envDebugFile != "" && debugFile == "" {
		debugFile = envDebugFile
	}

	if !debug && debugFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return nil
	}

	logFilePath := debugFile
	if logFilePath == "" {
		logDir, err := getLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		logFilePath = filepath.Join(logDir, fmt.Sprintf("pomodoro-%s.log", time.Now().Format("2006-01-02")))
	}

	if err := os.MkdirAll(filepath.Dir(logFilePath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	handler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug})
	Logger = slog.New(handler)
	Logger.Info("Debug logging initialized", "log_file", logFilePath)

	return nil
}

// getLogDir returns the OS-specific log directory
func getLogDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "pomodoro"), nil
	case "linux":
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(homeDir, ".local", "state")
		}
		return filepath.Join(stateHome, "pomodoro"), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "pomodoro", "logs"), nil
	default:
		return filepath.Join(homeDir, ".pomodoro", "logs"), nil
	}
}
