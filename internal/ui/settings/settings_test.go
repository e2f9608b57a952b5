package settings

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adibhanna/pomodoro/internal/engine"
	"github.com/adibhanna/pomodoro/internal/storage"
)

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig("50", "7.5", "20", "3", "no")

	require.NoError(t, err)
	assert.Equal(t, engine.Config{
		Pomodoro:   50 * time.Minute,
		ShortBreak: 7*time.Minute + 30*time.Second,
		LongBreak:  20 * time.Minute,
		Cycles:     3,
		PlaySound:  false,
	}, config)
}

func TestParseConfigRejects(t *testing.T) {
	tests := []struct {
		name     string
		pomodoro string
		short    string
		long     string
		cycles   string
		sound    string
		expected string
	}{
		{"missing pomodoro", "", "5", "15", "4", "yes", "pomodoro duration is required"},
		{"zero short break", "25", "0", "15", "4", "yes", "short break duration must be between"},
		{"long break too long", "25", "5", "90", "4", "yes", "long break duration must be between"},
		{"not a number", "2x", "5", "15", "4", "yes", "pomodoro duration must be between"},
		{"zero cycles", "25", "5", "15", "0", "yes", "cycles must be between"},
		{"too many cycles", "25", "5", "15", "11", "yes", "cycles must be between"},
		{"bad sound", "25", "5", "15", "4", "maybe", "play sound must be yes or no"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.pomodoro, tt.short, tt.long, tt.cycles, tt.sound)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestSaveWritesConfig(t *testing.T) {
	store, err := storage.New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	m, err := New(store)
	require.NoError(t, err)

	m.inputs[fieldCycles].SetValue("2")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	require.NotNil(t, cmd)
	assert.True(t, m.Saved())
	assert.Equal(t, 2, m.Config().Cycles)

	loaded, err := store.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Cycles)
	assert.False(t, store.IsFirstTime())
}

func TestSaveShowsValidationError(t *testing.T) {
	store, err := storage.New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	m, err := New(store)
	require.NoError(t, err)

	m.inputs[fieldPomodoro].SetValue("0")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.False(t, m.Saved())
	assert.Contains(t, m.errorMsg, "pomodoro duration")
	assert.True(t, store.IsFirstTime())
}

func TestFocusCycles(t *testing.T) {
	store, err := storage.New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	m, err := New(store)
	require.NoError(t, err)

	for i := 0; i < fieldCount; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(Model)
	}

	assert.Equal(t, fieldPomodoro, m.focusIndex)
	assert.True(t, m.inputs[fieldPomodoro].Focused())
}
