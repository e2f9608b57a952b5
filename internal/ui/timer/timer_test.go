package timer

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adibhanna/pomodoro/internal/engine"
	"github.com/adibhanna/pomodoro/internal/models"
	"github.com/adibhanna/pomodoro/internal/notify"
	"github.com/adibhanna/pomodoro/internal/storage"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

type recordingPlayer struct {
	mu     sync.Mutex
	played []engine.Phase
}

func (p *recordingPlayer) Play(_ context.Context, next engine.Phase) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, next)
	return nil
}

type harness struct {
	model    Model
	clock    *stepClock
	engine   *engine.Engine
	store    *storage.Storage
	player   *recordingPlayer
	notifier *notify.Notifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := &stepClock{now: time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)}
	eng := engine.New(engine.DefaultConfig(), engine.WithClock(clock))
	store, err := storage.New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	player := &recordingPlayer{}
	notifier := notify.New(player, nil)

	h := &harness{
		model:    New(eng, notifier, store),
		clock:    clock,
		engine:   eng,
		store:    store,
		player:   player,
		notifier: notifier,
	}
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	return cmd
}

func (h *harness) press(keys string) tea.Cmd {
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		expected  string
	}{
		{25 * time.Minute, "25:00"},
		{4*time.Minute + 59*time.Second + 900*time.Millisecond, "04:59"},
		{61 * time.Second, "01:01"},
		{300 * time.Millisecond, "00:01"},
		{0, "00:00"},
		{-3 * time.Second, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRemaining(tt.remaining))
		})
	}
}

func TestKeysDriveEngine(t *testing.T) {
	h := newHarness(t)

	h.press("s")
	assert.Equal(t, engine.StateRunning, h.engine.State())

	h.press("p")
	assert.Equal(t, engine.StatePaused, h.engine.State())

	h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, engine.StateRunning, h.engine.State())

	h.press("x")
	assert.Equal(t, engine.StateStopped, h.engine.State())
	assert.Empty(t, h.model.ErrorMessage())
}

func TestDisabledKeysAreIgnored(t *testing.T) {
	h := newHarness(t)

	h.press("p")
	assert.Equal(t, engine.StateStopped, h.engine.State())

	h.press("s")
	cmd := h.press("g")
	assert.Nil(t, cmd)
	assert.Equal(t, ScreenNone, h.model.Next())
}

func TestSettingsOnlyWhileStopped(t *testing.T) {
	h := newHarness(t)

	cmd := h.press("g")

	require.NotNil(t, cmd)
	assert.Equal(t, ScreenSettings, h.model.Next())
}

func TestTickCompletesPhase(t *testing.T) {
	h := newHarness(t)
	h.press("s")

	h.clock.now = h.clock.now.Add(25 * time.Minute)
	h.send(tickMsg(h.clock.now))
	h.notifier.Wait()

	assert.Equal(t, engine.PhaseShortBreak, h.engine.Phase())
	assert.Equal(t, []engine.Phase{engine.PhaseShortBreak}, h.player.played)

	records, err := h.store.GetAllRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.PhasePomodoro, records[0].Phase)
	assert.Equal(t, 25.0, records[0].PlannedMinutes)
	assert.False(t, records[0].Skipped)
	assert.Equal(t, 1, records[0].Cycle)
}

func TestTickWithSoundDisabled(t *testing.T) {
	h := newHarness(t)
	config := engine.DefaultConfig()
	config.PlaySound = false
	require.NoError(t, h.engine.SetConfig(config))
	h.press("s")

	h.clock.now = h.clock.now.Add(26 * time.Minute)
	h.send(tickMsg(h.clock.now))
	h.notifier.Wait()

	assert.Equal(t, engine.PhaseShortBreak, h.engine.Phase())
	assert.Empty(t, h.player.played)
}

func TestSkipRecordsPartialFocus(t *testing.T) {
	h := newHarness(t)
	h.press("s")
	h.clock.now = h.clock.now.Add(10 * time.Minute)

	h.press("n")
	h.notifier.Wait()

	assert.Equal(t, engine.PhaseShortBreak, h.engine.Phase())
	assert.Empty(t, h.player.played)

	records, err := h.store.GetAllRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Skipped)
	assert.InDelta(t, 10.0, records[0].SpentMinutes, 1e-9)
}

func TestViewShowsPhaseAndTime(t *testing.T) {
	h := newHarness(t)
	h.press("s")
	h.clock.now = h.clock.now.Add(90 * time.Second)

	view := h.model.View()

	assert.Contains(t, view, "Pomodoro")
	assert.Contains(t, view, "23:30")
	assert.Contains(t, view, "Cycle 0 / 4")
}

func TestTitleOnlyResentOnChange(t *testing.T) {
	h := newHarness(t)
	h.press("s")

	first := h.model.titleCmd()
	assert.Nil(t, first, "title was already sent by the start key")

	h.clock.now = h.clock.now.Add(time.Second)
	assert.NotNil(t, h.model.titleCmd())
	assert.Nil(t, h.model.titleCmd())
}

func TestPhaseKey(t *testing.T) {
	assert.Equal(t, models.PhasePomodoro, PhaseKey(engine.PhasePomodoro))
	assert.Equal(t, models.PhaseShortBreak, PhaseKey(engine.PhaseShortBreak))
	assert.Equal(t, models.PhaseLongBreak, PhaseKey(engine.PhaseLongBreak))
}
