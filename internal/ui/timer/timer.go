package timer

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/pomodoro/internal/engine"
	"github.com/adibhanna/pomodoro/internal/logging"
	"github.com/adibhanna/pomodoro/internal/models"
	"github.com/adibhanna/pomodoro/internal/notify"
	"github.com/adibhanna/pomodoro/internal/storage"
)

// pollInterval is how often the engine is polled. Output has second
// granularity, so there is no point polling faster.
const pollInterval = 100 * time.Millisecond

type tickMsg time.Time

// Screen names what the host should show after the timer program exits.
type Screen int

const (
	ScreenNone Screen = iota
	ScreenSettings
	ScreenStats
	ScreenHelp
)

type Model struct {
	engine   *engine.Engine
	notifier *notify.Notifier
	storage  *storage.Storage
	progress progress.Model
	help     help.Model
	keys     keyMap

	// lastTitle is the terminal title last sent; it is only resent when the
	// displayed second or phase changes.
	lastTitle string

	next     Screen
	quit     bool
	errorMsg string
	width    int
	height   int
}

// New wraps an engine owned by the caller, so timer state survives switching
// to the other screens and back.
func New(eng *engine.Engine, notifier *notify.Notifier, store *storage.Storage) Model {
	prog := progress.New(progress.WithSolidFill(phaseColor(engine.PhasePomodoro)), progress.WithoutPercentage())
	prog.Width = 60

	m := Model{
		engine:   eng,
		notifier: notifier,
		storage:  store,
		progress: prog,
		help:     help.New(),
		keys:     defaultKeys(),
	}
	m.keys.update(eng.State())
	return m
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 80)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		completion, err := m.engine.Tick()
		if err != nil {
			logging.Logger.Error("Timer tick failed", "error", err)
			m.errorMsg = err.Error()
			m.engine.Reset()
			m.keys.update(m.engine.State())
		}
		if completion != nil {
			m.completePhase(*completion, m.engine.DurationMinutes(completion.Phase), false)
		}
		titleCmd := m.titleCmd()
		return m, tea.Batch(titleCmd, tickCmd())
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error

	switch {
	case key.Matches(msg, m.keys.Start):
		err = m.engine.Start()
		if err == nil {
			logging.Logger.Info("Timer started", "phase", m.engine.Phase().String())
		}

	case key.Matches(msg, m.keys.Pause):
		err = m.engine.Pause()

	case key.Matches(msg, m.keys.Resume):
		err = m.engine.Resume()

	case key.Matches(msg, m.keys.Toggle):
		if m.engine.State() == engine.StatePaused {
			err = m.engine.Resume()
		} else {
			err = m.engine.Pause()
		}

	case key.Matches(msg, m.keys.Skip):
		spent := m.engine.SpentMinutes()
		planned := m.engine.DurationMinutes(m.engine.Phase())
		var completion *engine.Completion
		completion, err = m.engine.Skip()
		if err == nil {
			m.completePhase(*completion, math.Min(spent, planned), true)
		}

	case key.Matches(msg, m.keys.Reset):
		m.engine.Reset()
		logging.Logger.Info("Timer reset")

	case key.Matches(msg, m.keys.Settings):
		m.next = ScreenSettings
		return m, tea.Quit

	case key.Matches(msg, m.keys.Stats):
		m.next = ScreenStats
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.next = ScreenHelp
		return m, tea.Quit

	case key.Matches(msg, m.keys.Quit):
		m.quit = true
		return m, tea.Quit

	default:
		return m, nil
	}

	if err != nil {
		logging.Logger.Warn("Timer command rejected", "error", err)
		m.errorMsg = err.Error()
	} else {
		m.errorMsg = ""
	}
	m.keys.update(m.engine.State())
	titleCmd := m.titleCmd()
	return m, titleCmd
}

// completePhase relays a finished phase: sound first, then the history entry.
func (m *Model) completePhase(c engine.Completion, spentMinutes float64, skipped bool) {
	logging.Logger.Info("Phase completed",
		"phase", c.Phase.String(),
		"next", c.Next.String(),
		"cycle", c.Cycle,
		"skipped", skipped,
	)

	if !skipped && m.engine.Config().PlaySound {
		m.notifier.Notify(c.Next)
	}

	if m.storage == nil {
		return
	}
	_, err := m.storage.RecordPhase(models.PhaseRecord{
		Phase:          PhaseKey(c.Phase),
		StartTime:      c.Started,
		EndTime:        c.At,
		PlannedMinutes: m.engine.DurationMinutes(c.Phase),
		SpentMinutes:   spentMinutes,
		Cycle:          c.Cycle,
		Skipped:        skipped,
	})
	if err != nil {
		logging.Logger.Warn("Failed to record phase", "error", err)
		m.errorMsg = "could not save history: " + err.Error()
	}
}

func (m *Model) titleCmd() tea.Cmd {
	title := fmt.Sprintf("%s %s", FormatRemaining(m.engine.Remaining()), m.engine.Phase())
	if m.engine.State() == engine.StateStopped {
		title = "Pomodoro"
	}
	if title == m.lastTitle {
		return nil
	}
	m.lastTitle = title
	return tea.SetWindowTitle(title)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(2)

	state := m.engine.State()
	phase := m.engine.Phase()
	color := phaseColor(phase)
	if state == engine.StatePaused {
		color = pausedColor
	}

	phaseStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(color)).
		MarginBottom(1)

	timerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color(color)).
		Padding(2, 4).
		MarginBottom(2)

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		MarginTop(1).
		MarginBottom(1)

	m.progress.FullColor = color
	progressBar := m.progress.ViewAs(m.engine.Progress())

	cycle := fmt.Sprintf("Cycle %d / %d", m.engine.Cycle(), m.engine.Config().Cycles)

	sections := []string{
		phaseStyle.Render(phase.String()),
		timerStyle.Render(FormatRemaining(m.engine.Remaining())),
		progressBar,
		statusStyle.Render(statusLine(state, m.engine.NextPhase()) + " • " + cycle),
	}

	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)
		sections = append(sections, errorStyle.Render(m.errorMsg))
	}

	sections = append(sections, m.help.View(m.keys))

	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func statusLine(state engine.State, next engine.Phase) string {
	switch state {
	case engine.StateRunning:
		return "Up next: " + next.String()
	case engine.StatePaused:
		return "PAUSED - press 'r' to resume"
	default:
		return "Press 's' to start a pomodoro"
	}
}

// FormatRemaining renders d as MM:SS. Negative values show as 00:00, and a
// phase with time left never shows 00:00.
func FormatRemaining(d time.Duration) string {
	seconds := math.Max(0, d.Seconds())
	mins := math.Floor(seconds / 60)
	secs := math.Floor(math.Mod(seconds, 60))
	if seconds > 0 && mins == 0 && secs == 0 {
		secs = 1
	}
	return fmt.Sprintf("%02d:%02d", int(mins), int(secs))
}

// PhaseKey is the name a phase is stored under in the history file.
func PhaseKey(phase engine.Phase) string {
	switch phase {
	case engine.PhaseShortBreak:
		return models.PhaseShortBreak
	case engine.PhaseLongBreak:
		return models.PhaseLongBreak
	default:
		return models.PhasePomodoro
	}
}

const pausedColor = "#969696"

func phaseColor(phase engine.Phase) string {
	switch phase {
	case engine.PhaseShortBreak:
		return "#46C846"
	case engine.PhaseLongBreak:
		return "#4682FF"
	default:
		return "#FF4646"
	}
}

// Next reports which screen was requested when the program exited.
func (m Model) Next() Screen {
	return m.next
}

func (m Model) ShouldQuit() bool {
	return m.quit
}

func (m Model) ErrorMessage() string {
	return m.errorMsg
}
