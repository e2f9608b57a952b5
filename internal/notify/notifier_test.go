package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adibhanna/pomodoro/internal/engine"
)

type blockingPlayer struct {
	release chan struct{}
	mu      sync.Mutex
	played  []engine.Phase
}

func (p *blockingPlayer) Play(ctx context.Context, next engine.Phase) error {
	select {
	case <-p.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	p.mu.Lock()
	p.played = append(p.played, next)
	p.mu.Unlock()
	return nil
}

type playerFunc func(ctx context.Context, next engine.Phase) error

func (f playerFunc) Play(ctx context.Context, next engine.Phase) error {
	return f(ctx, next)
}

// syncBuffer guards a bytes.Buffer written from notification goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNotifyDoesNotBlock(t *testing.T) {
	player := &blockingPlayer{release: make(chan struct{})}
	notifier := New(player, nil)

	done := make(chan struct{})
	go func() {
		notifier.Notify(engine.PhaseShortBreak)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on the player")
	}

	close(player.release)
	notifier.Wait()
	assert.Equal(t, []engine.Phase{engine.PhaseShortBreak}, player.played)
}

func TestNotifySwallowsErrors(t *testing.T) {
	logs := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))
	notifier := New(playerFunc(func(context.Context, engine.Phase) error {
		return errors.New("audio device unavailable")
	}), logger)

	notifier.Notify(engine.PhasePomodoro)
	notifier.Wait()

	assert.Contains(t, logs.String(), "audio device unavailable")
}

func TestNotifyRecoversFromPanic(t *testing.T) {
	logs := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))
	notifier := New(playerFunc(func(context.Context, engine.Phase) error {
		panic("decoder exploded")
	}), logger)

	require.NotPanics(t, func() {
		notifier.Notify(engine.PhaseLongBreak)
		notifier.Wait()
	})
	assert.Contains(t, logs.String(), "decoder exploded")
}

func TestNotifyTimesOut(t *testing.T) {
	player := &blockingPlayer{release: make(chan struct{})}
	notifier := New(player, nil)
	notifier.timeout = 10 * time.Millisecond

	notifier.Notify(engine.PhasePomodoro)
	notifier.Wait()

	assert.Empty(t, player.played)
}

func TestNilNotifierIsNoop(t *testing.T) {
	var notifier *Notifier

	assert.NotPanics(t, func() {
		notifier.Notify(engine.PhasePomodoro)
		notifier.Wait()
	})
}

func TestSoundPlayerFallsBackToBell(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	var out bytes.Buffer
	player := &SoundPlayer{bell: &out}

	err := player.Play(context.Background(), engine.PhaseShortBreak)

	require.NoError(t, err)
	assert.Equal(t, "\a", out.String())
}

func TestSoundPlayerRingsOnStderr(t *testing.T) {
	player := NewSoundPlayer()

	assert.Same(t, os.Stderr, player.bell)
}
