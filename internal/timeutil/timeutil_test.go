package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lssauto/auto-scheduler/internal/models"
)

func TestParseClockTwelveHour(t *testing.T) {
	cases := map[string]int{
		"9:05 AM":  9*60 + 5,
		"9:05am":   9*60 + 5,
		"12:00 AM": 0,
		"12:30 PM": 12*60 + 30,
		"1:00 PM":  13 * 60,
		"11:59 PM": 23*60 + 59,
	}
	for raw, want := range cases {
		got, err := ParseClock(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestParseClockTwentyFourHour(t *testing.T) {
	got, err := ParseClock("21:05")
	require.NoError(t, err)
	assert.Equal(t, 21*60+5, got)

	got, err = ParseClock("0:00")
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestParseClockRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "25:00", "13:00 PM", "0:00 AM", "9:61 AM", "noon"} {
		_, err := ParseClock(raw)
		assert.Error(t, err, raw)
	}
}

func TestClockRoundTrip(t *testing.T) {
	for _, raw := range []string{"9:05 AM", "12:00 AM", "12:30 PM", "11:59 PM"} {
		minutes, err := ParseClock(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, Clock(minutes))
	}
}

func TestParseDaysCompactNotation(t *testing.T) {
	days, err := ParseDays("MTuWThF")
	require.NoError(t, err)
	assert.Equal(t, []models.Weekday{
		models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday,
	}, days)

	days, err = ParseDays("TuTh")
	require.NoError(t, err)
	assert.Equal(t, []models.Weekday{models.Tuesday, models.Thursday}, days)

	days, err = ParseDays("SaSu")
	require.NoError(t, err)
	assert.Equal(t, []models.Weekday{models.Saturday, models.Sunday}, days)
}

func TestParseDaysRejectsDuplicatesAndUnknown(t *testing.T) {
	_, err := ParseDays("MM")
	assert.Error(t, err)

	_, err = ParseDays("MXW")
	assert.Error(t, err)

	_, err = ParseDays("")
	assert.Error(t, err)
}

func TestFormatDaysRoundTrip(t *testing.T) {
	for _, raw := range []string{"MWF", "TuTh", "MTuWThF", "SaSu"} {
		days, err := ParseDays(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, FormatDays(days))
	}
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]models.Weekday{
		"Monday":   models.Monday,
		"monday":   models.Monday,
		"thu":      models.Thursday,
		"Th":       models.Thursday,
		"M":        models.Monday,
		"Saturday": models.Saturday,
	}
	for raw, want := range cases {
		got, err := ParseWeekday(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseWeekday("Funday")
	assert.Error(t, err)
}
