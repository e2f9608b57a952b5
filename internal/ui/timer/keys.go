package timer

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/adibhanna/pomodoro/internal/engine"
)

type keyMap struct {
	Start    key.Binding
	Pause    key.Binding
	Resume   key.Binding
	Toggle   key.Binding
	Skip     key.Binding
	Reset    key.Binding
	Settings key.Binding
	Stats    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Resume: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resume"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		Skip: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "skip phase"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),
		Settings: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "settings"),
		),
		Stats: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// update enables only the commands that are legal in state, the way the
// settings and start controls are greyed out while a phase is running.
func (k *keyMap) update(state engine.State) {
	k.Start.SetEnabled(state == engine.StateStopped)
	k.Pause.SetEnabled(state == engine.StateRunning)
	k.Resume.SetEnabled(state == engine.StatePaused)
	k.Toggle.SetEnabled(state != engine.StateStopped)
	k.Skip.SetEnabled(state != engine.StateStopped)
	k.Settings.SetEnabled(state == engine.StateStopped)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Resume, k.Skip, k.Reset, k.Settings, k.Stats, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Resume, k.Toggle},
		{k.Skip, k.Reset},
		{k.Settings, k.Stats, k.Help, k.Quit},
	}
}
