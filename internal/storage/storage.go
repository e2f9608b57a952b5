package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/adibhanna/pomodoro/internal/models"
)

const (
	configFileName  = "config.yaml"
	historyFileName = "history.json"
	dateLayout      = "2006-01-02"
)

type Storage struct {
	dataDir string
}

// New opens the data directory, creating it if needed. An empty dataDir
// selects ~/.pomodoro.
func New(dataDir string) (*Storage, error) {
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".pomodoro")
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

func (s *Storage) DataDir() string {
	return s.dataDir
}

func (s *Storage) historyFile() string {
	return filepath.Join(s.dataDir, historyFileName)
}

func (s *Storage) configFile() string {
	return filepath.Join(s.dataDir, configFileName)
}

// RecordPhase appends a finished phase to the history.
func (s *Storage) RecordPhase(record models.PhaseRecord) (models.PhaseRecord, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Date == "" {
		record.Date = record.EndTime.Format(dateLayout)
	}

	records, err := s.GetAllRecords()
	if err != nil {
		return record, err
	}
	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return record, fmt.Errorf("marshal history: %w", err)
	}

	if err := os.WriteFile(s.historyFile(), data, 0o644); err != nil {
		return record, fmt.Errorf("write history file: %w", err)
	}
	return record, nil
}

func (s *Storage) GetAllRecords() ([]models.PhaseRecord, error) {
	data, err := os.ReadFile(s.historyFile())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.PhaseRecord{}, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var records []models.PhaseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse history file: %w", err)
	}

	return records, nil
}

func (s *Storage) GetRecordsByDate(date string) ([]models.PhaseRecord, error) {
	allRecords, err := s.GetAllRecords()
	if err != nil {
		return nil, err
	}

	var records []models.PhaseRecord
	for _, record := range allRecords {
		if record.Date == date {
			records = append(records, record)
		}
	}

	return records, nil
}

func (s *Storage) GetTodayStats() (models.DayStats, error) {
	return s.GetDayStats(time.Now().Format(dateLayout))
}

// GetDayStats summarises one day. Skipped phases are listed but not counted;
// focus minutes include the part of a skipped pomodoro that was actually worked.
func (s *Storage) GetDayStats(date string) (models.DayStats, error) {
	records, err := s.GetRecordsByDate(date)
	if err != nil {
		return models.DayStats{}, err
	}

	stats := models.DayStats{
		Date:    date,
		Records: records,
	}

	for _, record := range records {
		if record.IsFocus() {
			spent := record.SpentMinutes
			if spent > record.PlannedMinutes {
				spent = record.PlannedMinutes
			}
			stats.FocusMinutes += spent
		}

		switch {
		case record.Skipped:
			stats.Skipped++
		case record.IsFocus():
			stats.Pomodoros++
		default:
			stats.Breaks++
		}
	}

	return stats, nil
}

// ResetAllData deletes the history and the settings file.
func (s *Storage) ResetAllData() error {
	if err := os.Remove(s.historyFile()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove history file: %w", err)
	}

	if err := os.Remove(s.configFile()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove config file: %w", err)
	}

	return nil
}

// IsFirstTime reports whether settings have never been saved.
func (s *Storage) IsFirstTime() bool {
	_, err := os.Stat(s.configFile())
	return errors.Is(err, os.ErrNotExist)
}
