package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adibhanna/pomodoro/internal/engine"
	"github.com/adibhanna/pomodoro/internal/logging"
	"github.com/adibhanna/pomodoro/internal/notify"
	"github.com/adibhanna/pomodoro/internal/storage"
	"github.com/adibhanna/pomodoro/internal/ui/help"
	"github.com/adibhanna/pomodoro/internal/ui/settings"
	"github.com/adibhanna/pomodoro/internal/ui/stats"
	"github.com/adibhanna/pomodoro/internal/ui/timer"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version   kong.VersionFlag `help:"Show version information"`
	Debug     bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile string           `help:"Custom path for debug log file"`
	DataDir   string           `help:"Directory for settings and history (default ~/.pomodoro)" type:"path" env:"POMODORO_DATA_DIR"`

	Run       RunCmd       `cmd:"" help:"Start the pomodoro timer (default)" default:"1"`
	Stats     StatsCmd     `cmd:"stats" help:"Print today's finished phases"`
	Config    ConfigCmd    `cmd:"config" help:"Print the effective settings as YAML"`
	ResetData ResetDataCmd `cmd:"reset-data" help:"Delete settings and history"`
}

// AfterApply initializes logging after CLI parsing
func (c *CLI) AfterApply() error {
	return logging.Initialize(c.Debug, c.DebugFile)
}

func (c *CLI) openStorage() (*storage.Storage, error) {
	store, err := storage.New(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}

// RunCmd starts the TUI application
type RunCmd struct {
	Pomodoro   float64 `help:"Pomodoro length in minutes for this run"`
	ShortBreak float64 `help:"Short break length in minutes for this run"`
	LongBreak  float64 `help:"Long break length in minutes for this run"`
	Cycles     int     `help:"Pomodoros before a long break for this run"`
	Sound      bool    `help:"Play a sound when a phase ends" xor:"sound"`
	NoSound    bool    `help:"Stay silent when a phase ends" xor:"sound"`
}

// applyOverrides layers the flags that were given over the saved settings.
func (r *RunCmd) applyOverrides(config engine.Config) (engine.Config, error) {
	if r.Pomodoro != 0 {
		config.Pomodoro = storage.FromMinutes(r.Pomodoro)
	}
	if r.ShortBreak != 0 {
		config.ShortBreak = storage.FromMinutes(r.ShortBreak)
	}
	if r.LongBreak != 0 {
		config.LongBreak = storage.FromMinutes(r.LongBreak)
	}
	if r.Cycles != 0 {
		config.Cycles = r.Cycles
	}
	if r.Sound {
		config.PlaySound = true
	}
	if r.NoSound {
		config.PlaySound = false
	}

	if err := config.Validate(); err != nil {
		return engine.Config{}, err
	}
	return config, nil
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	store, err := cli.openStorage()
	if err != nil {
		return err
	}

	if store.IsFirstTime() {
		fmt.Println("*** Welcome to Pomodoro! ***")
		fmt.Println("Let's set up your timer...")

		if _, err := runSettings(store); err != nil {
			return err
		}
	}

	config, err := store.LoadConfig()
	if err != nil {
		return err
	}
	config, err = r.applyOverrides(config)
	if err != nil {
		return err
	}

	eng := engine.New(config)
	notifier := notify.New(notify.NewSoundPlayer(), logging.Logger)

	logging.Logger.Info("Starting timer",
		"pomodoro", config.Pomodoro,
		"short_break", config.ShortBreak,
		"long_break", config.LongBreak,
		"cycles", config.Cycles,
		"play_sound", config.PlaySound)

	return runApp(store, eng, notifier)
}

func runApp(store *storage.Storage, eng *engine.Engine, notifier *notify.Notifier) error {
	// Main app loop
	for {
		timerModel := timer.New(eng, notifier, store)
		p := tea.NewProgram(timerModel, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		timerModel = finalModel.(timer.Model)
		if timerModel.ShouldQuit() {
			farewell(notifier)
			return nil
		}

		switch timerModel.Next() {
		case timer.ScreenSettings:
			saved, err := runSettings(store)
			if err != nil {
				return err
			}
			if !saved {
				continue
			}
			config, err := store.LoadConfig()
			if err != nil {
				return err
			}
			if err := eng.SetConfig(config); err != nil {
				logging.Logger.Warn("Settings not applied", "error", err)
			}

		case timer.ScreenStats:
			statsModel, err := stats.New(store)
			if err != nil {
				return err
			}
			finalModel, err := tea.NewProgram(statsModel, tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			if finalModel.(stats.Model).ShouldQuit() {
				farewell(notifier)
				return nil
			}

		case timer.ScreenHelp:
			finalModel, err := tea.NewProgram(help.New(), tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			if finalModel.(help.Model).ShouldQuit() {
				farewell(notifier)
				return nil
			}

		default:
			notifier.Wait()
			return nil
		}
	}
}

// farewell lets an alert that is still playing finish before the process exits.
func farewell(notifier *notify.Notifier) {
	fmt.Println(">>> See you next pomodoro!")
	notifier.Wait()
}

func runSettings(store *storage.Storage) (bool, error) {
	settingsModel, err := settings.New(store)
	if err != nil {
		return false, err
	}

	finalModel, err := tea.NewProgram(settingsModel, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	return finalModel.(settings.Model).Saved(), nil
}

// StatsCmd prints today's summary without starting the TUI
type StatsCmd struct{}

func (s *StatsCmd) Run(cli *CLI) error {
	store, err := cli.openStorage()
	if err != nil {
		return err
	}

	dayStats, err := store.GetTodayStats()
	if err != nil {
		return err
	}

	fmt.Println(stats.RenderDay(dayStats))
	return nil
}

// ConfigCmd prints the settings the timer would start with
type ConfigCmd struct{}

func (c *ConfigCmd) Run(cli *CLI) error {
	store, err := cli.openStorage()
	if err != nil {
		return err
	}

	config, err := store.LoadConfig()
	if err != nil {
		return err
	}

	data, err := storage.MarshalConfig(config)
	if err != nil {
		return err
	}

	fmt.Printf("# %s\n%s", store.DataDir(), data)
	return nil
}

// ResetDataCmd deletes all settings and history after confirmation
type ResetDataCmd struct {
	Yes bool `help:"Skip confirmation prompt" short:"y"`
}

func (r *ResetDataCmd) Run(cli *CLI) error {
	store, err := cli.openStorage()
	if err != nil {
		return err
	}

	if !r.Yes {
		fmt.Printf("Delete all settings and history in %s? [y/N]: ", store.DataDir())
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := store.ResetAllData(); err != nil {
		return err
	}

	logging.Logger.Info("Data reset", "data_dir", store.DataDir())
	fmt.Println("All data has been reset")
	return nil
}
