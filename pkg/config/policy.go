package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/lssauto/auto-scheduler/internal/models"
	"github.com/lssauto/auto-scheduler/internal/timeutil"
)

// policyFile is the on-disk shape of the scheduling policy. Times use
// clock notation ("9:30 AM") and days the compact notation ("MTuWThF").
type policyFile struct {
	Periods   []periodEntry   `mapstructure:"periods"`
	Positions []positionEntry `mapstructure:"positions"`
	Registrar registrarEntry  `mapstructure:"registrar"`
}

type periodEntry struct {
	Days  string `mapstructure:"days"`
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

type positionEntry struct {
	ID           string   `mapstructure:"id"`
	Name         string   `mapstructure:"name"`
	SessionLimit int      `mapstructure:"session_limit"`
	RequestLimit int      `mapstructure:"request_limit"`
	RoomTypes    []string `mapstructure:"room_types"`
}

type registrarEntry struct {
	Name  string `mapstructure:"name"`
	Days  string `mapstructure:"days"`
	Open  string `mapstructure:"open"`
	Close string `mapstructure:"close"`
}

// LoadPolicy reads the scheduling policy from the given YAML file, or
// returns the built-in default policy when path is empty.
func LoadPolicy(path string) (*models.Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}

	var raw policyFile
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}
	return buildPolicy(raw)
}

func buildPolicy(raw policyFile) (*models.Policy, error) {
	policy := &models.Policy{Periods: models.PeriodTable{}}

	for i, entry := range raw.Periods {
		days, err := timeutil.ParseDays(entry.Days)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", i, err)
		}
		start, err := timeutil.ParseClock(entry.Start)
		if err != nil {
			return nil, fmt.Errorf("period %d start: %w", i, err)
		}
		end, err := timeutil.ParseClock(entry.End)
		if err != nil {
			return nil, fmt.Errorf("period %d end: %w", i, err)
		}
		if start >= end {
			return nil, fmt.Errorf("period %d: start must be before end", i)
		}
		for _, day := range days {
			policy.Periods[day] = append(policy.Periods[day], models.Period{Start: start, End: end})
		}
	}

	for i, entry := range raw.Positions {
		if entry.ID == "" {
			return nil, fmt.Errorf("position %d: id is required", i)
		}
		if entry.SessionLimit <= 0 {
			return nil, fmt.Errorf("position %s: session_limit must be positive", entry.ID)
		}
		types := make([]models.RoomType, 0, len(entry.RoomTypes))
		for _, t := range entry.RoomTypes {
			roomType := models.RoomType(t)
			if !models.ValidRoomType(roomType) {
				return nil, fmt.Errorf("position %s: unknown room type %q", entry.ID, t)
			}
			types = append(types, roomType)
		}
		policy.Positions = append(policy.Positions, models.Position{
			ID:           entry.ID,
			Name:         entry.Name,
			SessionLimit: entry.SessionLimit,
			RequestLimit: entry.RequestLimit,
			RoomTypes:    types,
		})
	}

	days, err := timeutil.ParseDays(raw.Registrar.Days)
	if err != nil {
		return nil, fmt.Errorf("registrar days: %w", err)
	}
	open, err := timeutil.ParseClock(raw.Registrar.Open)
	if err != nil {
		return nil, fmt.Errorf("registrar open: %w", err)
	}
	closeAt, err := timeutil.ParseClock(raw.Registrar.Close)
	if err != nil {
		return nil, fmt.Errorf("registrar close: %w", err)
	}
	policy.Registrar = models.RegistrarPolicy{
		Name:  raw.Registrar.Name,
		Range: models.OpenRange{Days: days, Start: open, End: closeAt},
	}

	return policy, nil
}

// DefaultPolicy is the standard tutoring-center policy: hourly class
// periods on weekdays, the four stock positions, and a weekday-hours
// registrar queue.
func DefaultPolicy() *models.Policy {
	weekdays := []models.Weekday{
		models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday,
	}

	periods := models.PeriodTable{}
	for _, day := range weekdays {
		// Hourly windows from 8:00 AM through 9:00 PM.
		for start := 8 * 60; start < 21*60; start += 60 {
			periods[day] = append(periods[day], models.Period{Start: start, End: start + 60})
		}
	}

	return &models.Policy{
		Periods: periods,
		Positions: []models.Position{
			{
				ID:           "sgt",
				Name:         "Small Group Tutor",
				SessionLimit: 3,
				RequestLimit: 2,
				RoomTypes:    []models.RoomType{models.RoomTypeSmallGroup},
			},
			{
				ID:           "lgt",
				Name:         "Large Group Tutor",
				SessionLimit: 3,
				RequestLimit: 2,
				RoomTypes:    []models.RoomType{models.RoomTypeLargeGroup},
			},
			{
				ID:           models.PositionSI,
				Name:         "SI Leader",
				SessionLimit: 2,
				RequestLimit: 1,
				RoomTypes:    []models.RoomType{models.RoomTypeSI, models.RoomTypeLargeGroup},
			},
			{
				ID:           models.PositionWriting,
				Name:         "Writing Tutor",
				SessionLimit: 3,
				RequestLimit: 2,
				RoomTypes:    []models.RoomType{models.RoomTypeConference, models.RoomTypeSmallGroup},
			},
		},
		Registrar: models.RegistrarPolicy{
			Name: "Registrar Requests",
			Range: models.OpenRange{
				Days:  weekdays,
				Start: 8 * 60,
				End:   17 * 60,
			},
		},
	}
}
