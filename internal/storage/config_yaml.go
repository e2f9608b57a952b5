package storage

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/adibhanna/pomodoro/internal/engine"
)

// maxPhaseMinutes bounds durations read from the settings file.
const maxPhaseMinutes = 24 * 60

type yamlConfig struct {
	PomodoroMinutes   float64 `yaml:"pomodoro_minutes"`
	ShortBreakMinutes float64 `yaml:"short_break_minutes"`
	LongBreakMinutes  float64 `yaml:"long_break_minutes"`
	Cycles            int     `yaml:"cycles"`
	PlaySound         *bool   `yaml:"play_sound"`
}

// LoadConfig reads the settings file. If it does not exist the defaults are
// returned; unusable values in the file fall back to their default.
func (s *Storage) LoadConfig() (engine.Config, error) {
	config := engine.DefaultConfig()

	rawData, err := os.ReadFile(s.configFile())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYamlConfig(&config, fileData)
	return config, nil
}

// SaveConfig writes the settings file.
func (s *Storage) SaveConfig(config engine.Config) error {
	serialized, err := MarshalConfig(config)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.configFile(), serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// MarshalConfig renders config in the settings file format.
func MarshalConfig(config engine.Config) ([]byte, error) {
	playSound := config.PlaySound
	fileData := yamlConfig{
		PomodoroMinutes:   Minutes(config.Pomodoro),
		ShortBreakMinutes: Minutes(config.ShortBreak),
		LongBreakMinutes:  Minutes(config.LongBreak),
		Cycles:            config.Cycles,
		PlaySound:         &playSound,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return nil, fmt.Errorf("marshal config yaml: %w", err)
	}
	return serialized, nil
}

// Minutes converts d to fractional minutes.
func Minutes(d time.Duration) float64 {
	return d.Minutes()
}

// FromMinutes converts fractional minutes to a duration, rounded to the millisecond.
func FromMinutes(minutes float64) time.Duration {
	return (time.Duration(minutes * float64(time.Minute))).Round(time.Millisecond)
}

func applyYamlConfig(config *engine.Config, fileData yamlConfig) {
	if d, ok := fileDuration(fileData.PomodoroMinutes); ok {
		config.Pomodoro = d
	}
	if d, ok := fileDuration(fileData.ShortBreakMinutes); ok {
		config.ShortBreak = d
	}
	if d, ok := fileDuration(fileData.LongBreakMinutes); ok {
		config.LongBreak = d
	}
	if fileData.Cycles >= 1 {
		config.Cycles = fileData.Cycles
	}
	if fileData.PlaySound != nil {
		config.PlaySound = *fileData.PlaySound
	}
}

// fileDuration converts a minutes value from the settings file. Values that
// are not finite, exceed a day or round to nothing are rejected.
func fileDuration(minutes float64) (time.Duration, bool) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes > maxPhaseMinutes {
		return 0, false
	}
	d := FromMinutes(minutes)
	if d <= 0 {
		return 0, false
	}
	return d, true
}
