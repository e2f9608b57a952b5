package engine

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidStateTransition is returned when a command is not legal in the current state.
	ErrInvalidStateTransition = errors.New("invalid state transition")
	// ErrInvalidConfiguration is returned when a phase would begin with an unusable setting.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// State is the run state of the engine.
type State int

const (
	StateStopped State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Phase is the kind of interval being timed.
type Phase int

const (
	PhasePomodoro Phase = iota
	PhaseShortBreak
	PhaseLongBreak
)

func (p Phase) String() string {
	switch p {
	case PhasePomodoro:
		return "Pomodoro"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// IsBreak reports whether p is a short or long break.
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// Config holds the user-tunable settings of the engine.
type Config struct {
	Pomodoro   time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
	Cycles     int
	PlaySound  bool
}

// DefaultConfig returns the classic 25/5/15 schedule with a long break every 4 pomodoros.
func DefaultConfig() Config {
	return Config{
		Pomodoro:   25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
		Cycles:     4,
		PlaySound:  true,
	}
}

// Duration returns the configured length of phase.
func (c Config) Duration(phase Phase) time.Duration {
	switch phase {
	case PhaseShortBreak:
		return c.ShortBreak
	case PhaseLongBreak:
		return c.LongBreak
	default:
		return c.Pomodoro
	}
}

// Validate checks every field. It is called before any phase begins.
func (c Config) Validate() error {
	if c.Pomodoro <= 0 {
		return fmt.Errorf("%w: pomodoro duration must be positive, got %s", ErrInvalidConfiguration, c.Pomodoro)
	}
	if c.ShortBreak <= 0 {
		return fmt.Errorf("%w: short break duration must be positive, got %s", ErrInvalidConfiguration, c.ShortBreak)
	}
	if c.LongBreak <= 0 {
		return fmt.Errorf("%w: long break duration must be positive, got %s", ErrInvalidConfiguration, c.LongBreak)
	}
	if c.Cycles < 1 {
		return fmt.Errorf("%w: cycles must be at least 1, got %d", ErrInvalidConfiguration, c.Cycles)
	}
	return nil
}

// Completion describes a phase that ran out of time (or was skipped).
type Completion struct {
	Phase   Phase
	Next    Phase
	Cycle   int
	Started time.Time
	At      time.Time
}

// Clock supplies wall-clock time. Tests replace it to control time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
