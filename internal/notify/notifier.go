// Package notify relays phase completions to the user without blocking the timer loop.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/adibhanna/pomodoro/internal/engine"
)

const defaultTimeout = 10 * time.Second

// Player produces an audible alert for the phase that is about to begin.
type Player interface {
	Play(ctx context.Context, next engine.Phase) error
}

// Notifier dispatches alerts on detached goroutines. Failures are logged and
// dropped; they never reach the caller.
type Notifier struct {
	player  Player
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// New returns a Notifier using player. A nil logger discards log output.
func New(player Player, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Notifier{
		player:  player,
		logger:  logger,
		timeout: defaultTimeout,
	}
}

// Notify starts playback for a completed phase and returns immediately.
func (n *Notifier) Notify(next engine.Phase) {
	if n == nil || n.player == nil {
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := n.play(ctx, next); err != nil {
			n.logger.Warn("Notification failed", "next_phase", next.String(), "error", err)
			return
		}
		n.logger.Debug("Notification played", "next_phase", next.String())
	}()
}

// Wait blocks until every dispatched notification has finished.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}

func (n *Notifier) play(ctx context.Context, next engine.Phase) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("player panicked: %v", r)
		}
	}()
	return n.player.Play(ctx, next)
}
