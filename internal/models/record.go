package models

import (
	"time"
)

// PhaseRecord is one finished timer phase in the history file.
type PhaseRecord struct {
	ID             string    `json:"id"`
	Phase          string    `json:"phase"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	PlannedMinutes float64   `json:"planned_minutes"`
	SpentMinutes   float64   `json:"spent_minutes"` // Pause-adjusted time actually spent
	Cycle          int       `json:"cycle"`         // Cycle counter after the phase ended
	Skipped        bool      `json:"skipped"`       // Ended early by the user
	Date           string    `json:"date"`          // YYYY-MM-DD format
}

// IsFocus reports whether the record is a pomodoro rather than a break.
func (r PhaseRecord) IsFocus() bool {
	return r.Phase == PhasePomodoro
}

// Phase names as written to the history file.
const (
	PhasePomodoro   = "pomodoro"
	PhaseShortBreak = "short_break"
	PhaseLongBreak  = "long_break"
)

type DayStats struct {
	Date         string        `json:"date"`
	Pomodoros    int           `json:"pomodoros"`
	Breaks       int           `json:"breaks"`
	Skipped      int           `json:"skipped"`
	FocusMinutes float64       `json:"focus_minutes"`
	Records      []PhaseRecord `json:"records"`
}
