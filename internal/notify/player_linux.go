//go:build linux

package notify

import "github.com/adibhanna/pomodoro/internal/engine"

// soundsFor uses paplay (PulseAudio) or aplay (ALSA) with freedesktop sounds
func soundsFor(next engine.Phase) []soundCommand {
	if next.IsBreak() {
		return []soundCommand{
			{"paplay", []string{"/usr/share/sounds/freedesktop/stereo/complete.oga"}},
			{"aplay", []string{"/usr/share/sounds/freedesktop/stereo/complete.wav"}},
		}
	}
	return []soundCommand{
		{"paplay", []string{"/usr/share/sounds/freedesktop/stereo/bell.oga"}},
		{"aplay", []string{"/usr/share/sounds/freedesktop/stereo/bell.wav"}},
	}
}
