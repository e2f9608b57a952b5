package engine

import "time"

const minute = float64(time.Minute)

// Duration returns the configured length of phase.
func (e *Engine) Duration(phase Phase) time.Duration {
	return e.config.Duration(phase)
}

// Spent is how much of the current phase has elapsed, excluding pauses.
// While paused the value is frozen at the instant the pause began.
func (e *Engine) Spent() time.Duration {
	if e.phaseStart.IsZero() {
		return 0
	}

	until := e.clock.Now()
	if e.state == StatePaused && !e.pauseStart.IsZero() {
		until = e.pauseStart
	}

	// A clock stepped backwards must not produce negative elapsed time.
	spent := until.Sub(e.phaseStart) - e.pausedFor
	if spent < 0 {
		return 0
	}
	return spent
}

// Remaining is the time left in the current phase. It goes negative once the
// phase is overdue; callers clamp it for display.
func (e *Engine) Remaining() time.Duration {
	return e.Duration(e.phase) - e.Spent()
}

// Progress is the fraction of the current phase already spent, in [0, 1].
func (e *Engine) Progress() float64 {
	total := e.Duration(e.phase)
	if total <= 0 {
		return 0
	}
	remaining := e.Remaining()
	if remaining < 0 {
		remaining = 0
	}
	return float64(total-remaining) / float64(total)
}

func (e *Engine) DurationMinutes(phase Phase) float64 {
	return float64(e.Duration(phase)) / minute
}

func (e *Engine) SpentMinutes() float64 {
	return float64(e.Spent()) / minute
}

func (e *Engine) RemainingMinutes() float64 {
	return float64(e.Remaining()) / minute
}
