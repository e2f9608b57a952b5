// Package engine implements the pomodoro timer state machine.
//
// The engine is a plain synchronous value owned by a single host loop. It never
// sleeps or spawns goroutines: every query recomputes elapsed time from the stored
// timestamps and the clock, so irregular polling cannot make it drift.
package engine

import (
	"fmt"
	"time"
)

// Engine tracks one pomodoro session. The zero value is not usable; call New.
type Engine struct {
	clock  Clock
	config Config

	state      State
	phase      Phase
	cycle      int
	phaseStart time.Time
	pauseStart time.Time
	pausedFor  time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// New returns a stopped engine using config.
func New(config Config, opts ...Option) *Engine {
	e := &Engine{
		clock:  SystemClock,
		config: config,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the current settings.
func (e *Engine) Config() Config {
	return e.config
}

// SetConfig replaces the settings. Only legal while stopped; values are
// validated when the next phase begins.
func (e *Engine) SetConfig(config Config) error {
	if e.state != StateStopped {
		return e.transitionError("configure")
	}
	e.config = config
	return nil
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Phase() Phase {
	return e.phase
}

// Cycle counts the pomodoros completed since the last long break.
func (e *Engine) Cycle() int {
	return e.cycle
}

// PhaseStartedAt returns when the current phase began and false when stopped.
func (e *Engine) PhaseStartedAt() (time.Time, bool) {
	return e.phaseStart, !e.phaseStart.IsZero()
}

// PauseStartedAt returns when the current pause began and false when not paused.
func (e *Engine) PauseStartedAt() (time.Time, bool) {
	return e.pauseStart, !e.pauseStart.IsZero()
}

// PausedFor is the total length of the completed pauses in the current phase.
func (e *Engine) PausedFor() time.Duration {
	return e.pausedFor
}

// Start begins a pomodoro.
func (e *Engine) Start() error {
	return e.StartPhase(PhasePomodoro)
}

// StartPhase begins the given phase from the stopped state.
func (e *Engine) StartPhase(phase Phase) error {
	if e.state != StateStopped {
		return e.transitionError("start")
	}
	if err := e.config.Validate(); err != nil {
		return err
	}
	if err := e.beginPhase(phase); err != nil {
		return err
	}
	e.state = StateRunning
	return nil
}

// Pause freezes the running phase.
func (e *Engine) Pause() error {
	if e.state != StateRunning {
		return e.transitionError("pause")
	}
	e.pauseStart = e.clock.Now()
	e.state = StatePaused
	return nil
}

// Resume continues a paused phase. The pause length is excluded from spent time.
func (e *Engine) Resume() error {
	if e.state != StatePaused {
		return e.transitionError("resume")
	}
	if paused := e.clock.Now().Sub(e.pauseStart); paused > 0 {
		e.pausedFor += paused
	}
	e.pauseStart = time.Time{}
	e.state = StateRunning
	return nil
}

// Reset stops the timer and clears the session. It is always legal.
func (e *Engine) Reset() {
	e.state = StateStopped
	e.phase = PhasePomodoro
	e.cycle = 0
	e.phaseStart = time.Time{}
	e.pauseStart = time.Time{}
	e.pausedFor = 0
}

// Skip ends the current phase early and moves on to the next one, running.
func (e *Engine) Skip() (*Completion, error) {
	if e.state == StateStopped {
		return nil, e.transitionError("skip")
	}
	return e.advance()
}

// Tick is called once per host frame. When the running phase has used up its
// duration it moves to the next phase and returns the finished one; otherwise
// it returns nil.
func (e *Engine) Tick() (*Completion, error) {
	if e.state != StateRunning || e.Remaining() > 0 {
		return nil, nil
	}
	return e.advance()
}

// NextPhase reports the phase that follows the current one without changing anything.
func (e *Engine) NextPhase() Phase {
	next, _ := e.following()
	return next
}

func (e *Engine) following() (Phase, int) {
	if e.phase.IsBreak() {
		return PhasePomodoro, e.cycle
	}
	cycle := e.cycle + 1
	if cycle >= e.config.Cycles {
		return PhaseLongBreak, 0
	}
	return PhaseShortBreak, cycle
}

func (e *Engine) advance() (*Completion, error) {
	finished := e.phase
	started := e.phaseStart
	next, cycle := e.following()

	if err := e.beginPhase(next); err != nil {
		return nil, err
	}
	e.cycle = cycle
	e.state = StateRunning

	return &Completion{
		Phase:   finished,
		Next:    next,
		Cycle:   cycle,
		Started: started,
		At:      e.phaseStart,
	}, nil
}

func (e *Engine) beginPhase(phase Phase) error {
	if d := e.config.Duration(phase); d <= 0 {
		return fmt.Errorf("%w: %s duration must be positive, got %s", ErrInvalidConfiguration, phase, d)
	}
	e.phase = phase
	e.phaseStart = e.clock.Now()
	e.pauseStart = time.Time{}
	e.pausedFor = 0
	return nil
}

func (e *Engine) transitionError(op string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidStateTransition, op, e.state)
}
