package dto

import "time"

// RunScheduleRequest triggers a full scheduling run. A seed makes the
// per-tutor weekday shuffles reproducible; omit it for time-seeded runs.
type RunScheduleRequest struct {
	Seed *int64 `json:"seed"`
}

// TutorRunResult summarises one tutor's pass through the scheduler.
type TutorRunResult struct {
	TutorID   string `json:"tutorId"`
	TutorName string `json:"tutorName"`
	Pass      int    `json:"pass"`
	Skipped   bool   `json:"skipped"`
	Sessions  int    `json:"sessions"`
	Requests  int    `json:"requests"`
	Unplaced  int    `json:"unplaced"`
}

// ScheduleRunReport is the outcome of one scheduling run.
type ScheduleRunReport struct {
	RunID           string           `json:"runId"`
	Seed            int64            `json:"seed"`
	StartedAt       time.Time        `json:"startedAt"`
	DurationMillis  int64            `json:"durationMillis"`
	TutorsProcessed int              `json:"tutorsProcessed"`
	TutorsSkipped   int              `json:"tutorsSkipped"`
	SessionsPlaced  int              `json:"sessionsPlaced"`
	Requests        int              `json:"requests"`
	Unplaced        int              `json:"unplaced"`
	Tutors          []TutorRunResult `json:"tutors"`
}
