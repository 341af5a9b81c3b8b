// Package timeutil converts between human clock notation and the
// minutes-since-midnight representation the scheduling engine works in.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lssauto/auto-scheduler/internal/models"
)

// dayTokens maps the short day notation used in roster data ("MTuWThF")
// onto weekdays. Two-letter tokens must be matched before single letters.
var dayTokens = []struct {
	token string
	day   models.Weekday
}{
	{"Tu", models.Tuesday},
	{"Th", models.Thursday},
	{"Sa", models.Saturday},
	{"Su", models.Sunday},
	{"M", models.Monday},
	{"W", models.Wednesday},
	{"F", models.Friday},
}

var dayNames = map[string]models.Weekday{
	"sunday":    models.Sunday,
	"monday":    models.Monday,
	"tuesday":   models.Tuesday,
	"wednesday": models.Wednesday,
	"thursday":  models.Thursday,
	"friday":    models.Friday,
	"saturday":  models.Saturday,
	"sun":       models.Sunday,
	"mon":       models.Monday,
	"tue":       models.Tuesday,
	"wed":       models.Wednesday,
	"thu":       models.Thursday,
	"fri":       models.Friday,
	"sat":       models.Saturday,
}

// ParseClock converts a clock string to minutes since midnight. Both
// 12-hour notation ("9:05 AM", "9:05am") and 24-hour notation ("21:05")
// are accepted.
func ParseClock(raw string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return 0, fmt.Errorf("empty clock string")
	}

	meridiem := ""
	switch {
	case strings.HasSuffix(s, "AM"):
		meridiem = "AM"
		s = strings.TrimSpace(strings.TrimSuffix(s, "AM"))
	case strings.HasSuffix(s, "PM"):
		meridiem = "PM"
		s = strings.TrimSpace(strings.TrimSuffix(s, "PM"))
	}

	parts := strings.SplitN(s, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock string %q", raw)
	}
	minute := 0
	if len(parts) == 2 {
		minute, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("invalid clock string %q", raw)
		}
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in clock string %q", raw)
	}

	switch meridiem {
	case "AM":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("invalid hour in clock string %q", raw)
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("invalid hour in clock string %q", raw)
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, fmt.Errorf("invalid hour in clock string %q", raw)
		}
	}

	return hour*60 + minute, nil
}

// Clock renders minutes since midnight in 12-hour notation, e.g. "9:05 AM".
func Clock(minutes int) string {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	hour := minutes / 60
	minute := minutes % 60

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, meridiem)
}

// ParseDays expands a compact multi-day string such as "MWF" or "TuTh"
// into the weekdays it names, preserving order and rejecting duplicates.
func ParseDays(raw string) ([]models.Weekday, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("empty day string")
	}

	var days []models.Weekday
	seen := make(map[models.Weekday]bool)
	for len(s) > 0 {
		matched := false
		for _, entry := range dayTokens {
			if strings.HasPrefix(s, entry.token) {
				if seen[entry.day] {
					return nil, fmt.Errorf("duplicate day %q in %q", entry.token, raw)
				}
				seen[entry.day] = true
				days = append(days, entry.day)
				s = s[len(entry.token):]
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("unrecognized day notation %q", raw)
		}
	}
	return days, nil
}

// FormatDays renders weekdays back into the compact notation.
func FormatDays(days []models.Weekday) string {
	var b strings.Builder
	for _, day := range days {
		for _, entry := range dayTokens {
			if entry.day == day {
				b.WriteString(entry.token)
				break
			}
		}
	}
	return b.String()
}

// ParseWeekday resolves a single weekday from either a full name
// ("Monday"), an abbreviation ("mon"), or the compact token ("M").
func ParseWeekday(raw string) (models.Weekday, error) {
	s := strings.TrimSpace(raw)
	if day, ok := dayNames[strings.ToLower(s)]; ok {
		return day, nil
	}
	for _, entry := range dayTokens {
		if entry.token == s {
			return entry.day, nil
		}
	}
	return 0, fmt.Errorf("unrecognized weekday %q", raw)
}
