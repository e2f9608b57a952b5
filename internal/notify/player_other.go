//go:build !linux && !darwin && !windows

package notify

import "github.com/adibhanna/pomodoro/internal/engine"

func soundsFor(engine.Phase) []soundCommand {
	return nil
}
