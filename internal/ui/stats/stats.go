package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/pomodoro/internal/models"
	"github.com/adibhanna/pomodoro/internal/storage"
)

type Model struct {
	storage  *storage.Storage
	dayStats models.DayStats
	width    int
	height   int
	quit     bool
}

func New(storage *storage.Storage) (Model, error) {
	dayStats, err := storage.GetTodayStats()
	if err != nil {
		return Model{}, err
	}

	return Model{
		storage:  storage,
		dayStats: dayStats,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			return m, tea.Quit
		case key.Matches(msg, keys.Quit):
			m.quit = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(2)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	return containerStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		RenderDay(m.dayStats),
		helpStyle.Render("b/esc: back • q: quit"),
	))
}

func (m Model) ShouldQuit() bool {
	return m.quit
}

// RenderDay formats one day of history. It is shared by the stats screen and
// the stats command.
func RenderDay(stats models.DayStats) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(1)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C"))

	valueStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA"))

	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	title := "📊 Today"
	if date, err := time.Parse("2006-01-02", stats.Date); err == nil {
		title = "📊 " + date.Format("Monday, January 2, 2006")
	}

	summary := []string{
		labelStyle.Render("Pomodoros: ") + valueStyle.Render(fmt.Sprintf("%d", stats.Pomodoros)),
		labelStyle.Render("Breaks:    ") + valueStyle.Render(fmt.Sprintf("%d", stats.Breaks)),
		labelStyle.Render("Skipped:   ") + valueStyle.Render(fmt.Sprintf("%d", stats.Skipped)),
		labelStyle.Render("Focus:     ") + valueStyle.Render(formatMinutes(stats.FocusMinutes)),
	}

	var details []string
	if len(stats.Records) == 0 {
		details = append(details, mutedStyle.Render("No phases finished yet. Start one with 's'."))
	}
	for _, record := range stats.Records {
		line := fmt.Sprintf("%s - %s  %-11s %s",
			record.StartTime.Format("15:04"),
			record.EndTime.Format("15:04"),
			phaseLabel(record.Phase),
			formatMinutes(record.SpentMinutes),
		)
		if record.Skipped {
			line += " (skipped)"
			details = append(details, mutedStyle.Render(line))
			continue
		}
		details = append(details, line)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(title),
		strings.Join(summary, "\n"),
		"",
		strings.Join(details, "\n"),
	)
}

func phaseLabel(phase string) string {
	switch phase {
	case models.PhaseShortBreak:
		return "Short Break"
	case models.PhaseLongBreak:
		return "Long Break"
	default:
		return "Pomodoro"
	}
}

func formatMinutes(minutes float64) string {
	total := int(minutes + 0.5)
	hours := total / 60
	mins := total % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

type keyMap struct {
	Back key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Back: key.NewBinding(
		key.WithKeys("b", "esc"),
		key.WithHelp("b/esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
