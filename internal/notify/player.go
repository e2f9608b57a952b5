package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/adibhanna/pomodoro/internal/engine"
)

type soundCommand struct {
	cmd  string
	args []string
}

// SoundPlayer plays a system sound, falling back to the terminal bell on
// stderr. Stdout belongs to the UI renderer.
type SoundPlayer struct {
	bell io.Writer
}

func NewSoundPlayer() *SoundPlayer {
	return &SoundPlayer{bell: os.Stderr}
}

// Play tries each platform sound command in order.
func (p *SoundPlayer) Play(ctx context.Context, next engine.Phase) error {
	for _, sound := range soundsFor(next) {
		if _, err := exec.LookPath(sound.cmd); err != nil {
			continue
		}
		if err := exec.CommandContext(ctx, sound.cmd, sound.args...).Run(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return p.terminalBell()
}

func (p *SoundPlayer) terminalBell() error {
	if p.bell == nil {
		return fmt.Errorf("no sound command available")
	}
	_, err := fmt.Fprint(p.bell, "\a")
	return err
}
