package main

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adibhanna/pomodoro/internal/engine"
	"github.com/adibhanna/pomodoro/internal/notify"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	var cli CLI
	parser, err := kong.New(&cli, kong.Name("pomodoro"), kong.Vars{"version": "test"})
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestRunIsDefaultCommand(t *testing.T) {
	_, ctx := parse(t)

	assert.Equal(t, "run", ctx.Command())
}

func TestRunFlags(t *testing.T) {
	cli, ctx := parse(t, "run", "--pomodoro", "50", "--cycles", "2", "--no-sound")

	assert.Equal(t, "run", ctx.Command())
	assert.Equal(t, 50.0, cli.Run.Pomodoro)
	assert.Equal(t, 2, cli.Run.Cycles)
	assert.True(t, cli.Run.NoSound)
}

func TestSoundFlagsAreExclusive(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)

	_, err = parser.Parse([]string{"run", "--sound", "--no-sound"})

	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	run := RunCmd{Pomodoro: 50, ShortBreak: 7.5, Cycles: 2, NoSound: true}

	config, err := run.applyOverrides(engine.DefaultConfig())

	require.NoError(t, err)
	assert.Equal(t, engine.Config{
		Pomodoro:   50 * time.Minute,
		ShortBreak: 7*time.Minute + 30*time.Second,
		LongBreak:  15 * time.Minute,
		Cycles:     2,
		PlaySound:  false,
	}, config)
}

func TestApplyOverridesKeepsSavedSettings(t *testing.T) {
	saved := engine.DefaultConfig()
	saved.PlaySound = false

	config, err := (&RunCmd{}).applyOverrides(saved)

	require.NoError(t, err)
	assert.Equal(t, saved, config)
}

func TestApplyOverridesRejectsInvalid(t *testing.T) {
	_, err := (&RunCmd{Cycles: -1}).applyOverrides(engine.DefaultConfig())

	assert.ErrorIs(t, err, engine.ErrInvalidConfiguration)
}

type slowPlayer struct {
	done atomic.Bool
}

func (p *slowPlayer) Play(ctx context.Context, next engine.Phase) error {
	time.Sleep(50 * time.Millisecond)
	p.done.Store(true)
	return nil
}

func TestFarewellWaitsForAlert(t *testing.T) {
	player := &slowPlayer{}
	notifier := notify.New(player, nil)
	notifier.Notify(engine.PhaseShortBreak)

	farewell(notifier)

	assert.True(t, player.done.Load())
}
