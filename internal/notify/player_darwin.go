//go:build darwin

package notify

import "github.com/adibhanna/pomodoro/internal/engine"

func soundsFor(next engine.Phase) []soundCommand {
	sound := "/System/Library/Sounds/Glass.aiff"
	if next.IsBreak() {
		sound = "/System/Library/Sounds/Hero.aiff"
	}
	return []soundCommand{{"afplay", []string{sound}}}
}
