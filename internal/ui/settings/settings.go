package settings

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/pomodoro/internal/engine"
	"github.com/adibhanna/pomodoro/internal/logging"
	"github.com/adibhanna/pomodoro/internal/storage"
)

const (
	minMinutes = 1.0
	maxMinutes = 60.0
	maxCycles  = 10
)

const (
	fieldPomodoro = iota
	fieldShortBreak
	fieldLongBreak
	fieldCycles
	fieldSound
	fieldCount
)

type Model struct {
	storage      *storage.Storage
	config       engine.Config
	inputs       []textinput.Model
	focusIndex   int
	saved        bool
	reset        bool
	confirmReset bool
	errorMsg     string
	width        int
	height       int
}

func New(storage *storage.Storage) (Model, error) {
	config, err := storage.LoadConfig()
	if err != nil {
		return Model{}, err
	}

	// Validation function to allow only numeric input
	numericValidation := func(text string) error {
		for _, char := range text {
			if !unicode.IsDigit(char) && char != '.' {
				return fmt.Errorf("only numbers allowed")
			}
		}
		return nil
	}

	yesNoValidation := func(text string) error {
		if text == "" || strings.HasPrefix("yes", strings.ToLower(text)) || strings.HasPrefix("no", strings.ToLower(text)) {
			return nil
		}
		return fmt.Errorf("type yes or no")
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 5
		inputs[i].Width = 20
		inputs[i].Validate = numericValidation
	}

	inputs[fieldPomodoro].Placeholder = "25"
	inputs[fieldShortBreak].Placeholder = "5"
	inputs[fieldLongBreak].Placeholder = "15"
	inputs[fieldCycles].Placeholder = "4"
	inputs[fieldCycles].CharLimit = 2
	inputs[fieldSound].Placeholder = "yes"
	inputs[fieldSound].CharLimit = 3
	inputs[fieldSound].Validate = yesNoValidation
	inputs[fieldPomodoro].Focus()

	m := Model{
		storage: storage,
		config:  config,
		inputs:  inputs,
	}
	m.fillInputs()
	return m, nil
}

func (m *Model) fillInputs() {
	m.inputs[fieldPomodoro].SetValue(formatMinutes(m.config.Pomodoro.Minutes()))
	m.inputs[fieldShortBreak].SetValue(formatMinutes(m.config.ShortBreak.Minutes()))
	m.inputs[fieldLongBreak].SetValue(formatMinutes(m.config.LongBreak.Minutes()))
	m.inputs[fieldCycles].SetValue(strconv.Itoa(m.config.Cycles))
	if m.config.PlaySound {
		m.inputs[fieldSound].SetValue("yes")
	} else {
		m.inputs[fieldSound].SetValue("no")
	}
}

func formatMinutes(minutes float64) string {
	return strconv.FormatFloat(minutes, 'f', -1, 64)
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Down):
			m.focusIndex++
			if m.focusIndex > len(m.inputs)-1 {
				m.focusIndex = 0
			}
			return m.updateFocus(), nil

		case key.Matches(msg, keys.ShiftTab), key.Matches(msg, keys.Up):
			m.focusIndex--
			if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs) - 1
			}
			return m.updateFocus(), nil

		case key.Matches(msg, keys.Save):
			if err := m.saveConfig(); err == nil {
				m.saved = true
				m.errorMsg = ""
				return m, tea.Quit
			} else {
				m.errorMsg = err.Error()
				m.saved = false
			}
			return m, nil

		case key.Matches(msg, keys.Reset):
			if !m.confirmReset {
				m.confirmReset = true
				return m, nil
			}
			if err := m.resetAllData(); err != nil {
				m.errorMsg = err.Error()
				m.confirmReset = false
				return m, nil
			}
			m.reset = true
			return m, tea.Quit

		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
			if m.confirmReset {
				m.confirmReset = false
				return m, nil
			}
			return m, tea.Quit
		}
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m Model) updateFocus() tea.Model {
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		oldValue := m.inputs[i].Value()
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
		// Clear error message when user starts typing
		if m.inputs[i].Value() != oldValue {
			m.errorMsg = ""
		}
	}
	return tea.Batch(cmds...)
}

// ParseConfig validates the raw form values and builds a config from them.
func ParseConfig(pomodoro, shortBreak, longBreak, cycles, sound string) (engine.Config, error) {
	var config engine.Config

	fields := []struct {
		label string
		raw   string
	}{
		{"pomodoro", pomodoro},
		{"short break", shortBreak},
		{"long break", longBreak},
	}
	minutes := make([]float64, len(fields))
	for i, field := range fields {
		if field.raw == "" {
			return config, fmt.Errorf("%s duration is required", field.label)
		}
		value, err := strconv.ParseFloat(field.raw, 64)
		if err != nil || value < minMinutes || value > maxMinutes {
			return config, fmt.Errorf("%s duration must be between %g-%g minutes", field.label, minMinutes, maxMinutes)
		}
		minutes[i] = value
	}

	if cycles == "" {
		return config, fmt.Errorf("cycles is required")
	}
	cycleCount, err := strconv.Atoi(cycles)
	if err != nil || cycleCount < 1 || cycleCount > maxCycles {
		return config, fmt.Errorf("cycles must be between 1-%d", maxCycles)
	}

	var playSound bool
	switch strings.ToLower(sound) {
	case "y", "ye", "yes":
		playSound = true
	case "n", "no":
		playSound = false
	default:
		return config, fmt.Errorf("play sound must be yes or no")
	}

	config = engine.Config{
		Pomodoro:   storage.FromMinutes(minutes[0]),
		ShortBreak: storage.FromMinutes(minutes[1]),
		LongBreak:  storage.FromMinutes(minutes[2]),
		Cycles:     cycleCount,
		PlaySound:  playSound,
	}
	return config, config.Validate()
}

func (m *Model) saveConfig() error {
	config, err := ParseConfig(
		m.inputs[fieldPomodoro].Value(),
		m.inputs[fieldShortBreak].Value(),
		m.inputs[fieldLongBreak].Value(),
		m.inputs[fieldCycles].Value(),
		m.inputs[fieldSound].Value(),
	)
	if err != nil {
		return err
	}

	if err := m.storage.SaveConfig(config); err != nil {
		logging.Logger.Error("Failed to save settings", "error", err)
		return err
	}
	m.config = config
	logging.Logger.Info("Settings saved", "cycles", config.Cycles, "play_sound", config.PlaySound)
	return nil
}

func (m *Model) resetAllData() error {
	// Remove all data files
	if err := m.storage.ResetAllData(); err != nil {
		return err
	}

	// Reset to default config
	m.config = engine.DefaultConfig()
	m.fillInputs()

	return nil
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

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(2).
		Align(lipgloss.Center)

	formStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		MarginTop(1).
		MarginBottom(1)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C"))

	inputStyle := lipgloss.NewStyle().
		MarginBottom(1)

	successStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		Bold(true).
		MarginTop(2)

	title := titleStyle.Render("⚙️  Settings")

	labels := []string{
		"Pomodoro (minutes):",
		"Short Break (minutes):",
		"Long Break (minutes):",
		"Pomodoros before a long break:",
		"Play sound (yes/no):",
	}

	var form string
	for i, label := range labels {
		form += labelStyle.Render(label) + "\n"
		form += inputStyle.Render(m.inputs[i].View()) + "\n"
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		formStyle.Render(form),
		m.renderHelp(),
	)

	if m.saved {
		content += "\n" + successStyle.Render("✅ Settings saved successfully!")
	}

	if m.reset {
		content += "\n" + successStyle.Render("🔄 All data reset successfully!")
	}

	if m.confirmReset {
		warningStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginTop(2)
		content += "\n" + warningStyle.Render("⚠️  WARNING: This will delete your history and reset settings!")
	}

	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginTop(2)
		content += "\n" + errorStyle.Render("❌ "+m.errorMsg)
	}

	return containerStyle.Render(content)
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	if m.confirmReset {
		return helpStyle.Render("⚠️  Press ctrl+r again to confirm RESET (deletes history) • esc: cancel")
	}

	return helpStyle.Render("tab/↓: next field • shift+tab/↑: previous • enter: save • ctrl+r: reset all data • esc: back")
}

// Config returns the settings as last saved or loaded.
func (m Model) Config() engine.Config {
	return m.config
}

func (m Model) Saved() bool {
	return m.saved
}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding
	Save     key.Binding
	Reset    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// Letter keys would collide with the yes/no field, so the form uses
// control keys only.
var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous field"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next field"),
	),
	Save: key.NewBinding(
		key.WithKeys("enter", "ctrl+s"),
		key.WithHelp("enter", "save"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset all data"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
