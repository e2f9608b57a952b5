//go:build windows

package notify

import "github.com/adibhanna/pomodoro/internal/engine"

func soundsFor(next engine.Phase) []soundCommand {
	sound := `C:\Windows\Media\Windows Notify System Generic.wav`
	if next.IsBreak() {
		sound = `C:\Windows\Media\tada.wav`
	}
	script := "(New-Object Media.SoundPlayer '" + sound + "').PlaySync()"
	return []soundCommand{{"powershell", []string{"-NoProfile", "-Command", script}}}
}
