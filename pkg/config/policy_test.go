package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lssauto/auto-scheduler/internal/models"
)

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	require.Len(t, policy.Positions, 4)
	ids := map[string]models.Position{}
	for _, p := range policy.Positions {
		ids[p.ID] = p
	}
	require.Contains(t, ids, "sgt")
	require.Contains(t, ids, models.PositionSI)
	require.Contains(t, ids, models.PositionWriting)
	assert.Equal(t, 3, ids["sgt"].SessionLimit)

	// Weekday hourly windows; weekends closed.
	assert.True(t, policy.Periods.Recognizes(models.Monday, 9*60, 10*60))
	assert.True(t, policy.Periods.Recognizes(models.Friday, 20*60, 21*60))
	assert.False(t, policy.Periods.Recognizes(models.Saturday, 9*60, 10*60))
	assert.False(t, policy.Periods.Recognizes(models.Monday, 7*60, 8*60))

	assert.NotEmpty(t, policy.Registrar.Name)
	assert.True(t, policy.Registrar.Range.ContainsDay(models.Wednesday))
}

func TestLoadPolicyEmptyPathUsesDefaults(t *testing.T) {
	policy, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Len(t, policy.Positions, 4)
}

func TestLoadPolicyFromYAML(t *testing.T) {
	raw := `
periods:
  - days: MWF
    start: "9:00 AM"
    end: "10:00 AM"
  - days: TuTh
    start: "10:00 AM"
    end: "11:00 AM"
positions:
  - id: sgt
    name: Small Group Tutor
    session_limit: 2
    request_limit: 1
    room_types: [SMALL_GROUP]
registrar:
  name: Front Desk
  days: MTuWThF
  open: "8:00 AM"
  close: "4:00 PM"
`
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	policy, err := LoadPolicy(path)
	require.NoError(t, err)

	require.Len(t, policy.Positions, 1)
	assert.Equal(t, 2, policy.Positions[0].SessionLimit)
	assert.True(t, policy.Periods.Recognizes(models.Monday, 9*60, 10*60))
	assert.True(t, policy.Periods.Recognizes(models.Tuesday, 10*60, 11*60))
	assert.False(t, policy.Periods.Recognizes(models.Monday, 10*60, 11*60))
	assert.Equal(t, "Front Desk", policy.Registrar.Name)
	assert.Equal(t, 8*60, policy.Registrar.Range.Start)
}

func TestLoadPolicyRejectsBadData(t *testing.T) {
	cases := map[string]string{
		"unknown room type": `
positions:
  - id: sgt
    session_limit: 2
    room_types: [BALLROOM]
registrar: {name: X, days: M, open: "8:00 AM", close: "4:00 PM"}
`,
		"zero session limit": `
positions:
  - id: sgt
    session_limit: 0
registrar: {name: X, days: M, open: "8:00 AM", close: "4:00 PM"}
`,
		"inverted period": `
periods:
  - {days: M, start: "10:00 AM", end: "9:00 AM"}
registrar: {name: X, days: M, open: "8:00 AM", close: "4:00 PM"}
`,
	}
	for name, raw := range cases {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))
		_, err := LoadPolicy(path)
		assert.Error(t, err, name)
	}

	_, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
