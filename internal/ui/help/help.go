package help

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Model struct {
	width  int
	height int
	quit   bool
}

func New() Model {
	return Model{}
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
	// Use reasonable defaults if dimensions aren't set
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	containerStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(1)

	sectionTitleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	entries := func(pairs ...string) string {
		var out string
		for i := 0; i+1 < len(pairs); i += 2 {
			if out != "" {
				out += "\n"
			}
			out += fmt.Sprintf("%s - %s", keyStyle.Render(pairs[i]), descStyle.Render(pairs[i+1]))
		}
		return out
	}

	timerSection := sectionTitleStyle.Render("⏱️  Timer Controls")
	timerContent := entries(
		"s", "Start a pomodoro",
		"p", "Pause the running phase",
		"r", "Resume a paused phase",
		"space", "Pause or resume",
		"n", "Skip to the next phase",
		"x", "Reset the timer and cycle count",
	)

	navSection := sectionTitleStyle.Render("🧭 Screens")
	navContent := entries(
		"g", "Open settings (timer must be stopped)",
		"t", "Today's finished phases",
		"? / f1", "Show this help page",
		"b / esc", "Go back",
		"q / Ctrl+C", "Quit the application",
	)

	aboutSection := sectionTitleStyle.Render("🍅 How it works")
	aboutContent := descStyle.Render(
		"Focus for one pomodoro, then take a short break. After every\n" +
			"few pomodoros (the cycle count in settings) the break is a long one.\n" +
			"Pausing freezes the clock; time spent paused never counts.\n\n" +
			"Settings and history are stored in ~/.pomodoro/")

	footer := footerStyle.Render("Press 'b/esc' to go back • 'q' to quit")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("🆘 Pomodoro Help"),
		timerSection,
		timerContent,
		navSection,
		navContent,
		aboutSection,
		aboutContent,
		footer,
	)

	return containerStyle.Render(content)
}

func (m Model) ShouldQuit() bool {
	return m.quit
}

type keyMap struct {
	Back key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Back: key.NewBinding(
		key.WithKeys("b", "esc", "?"),
		key.WithHelp("b/esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
