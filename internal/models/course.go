package models

// CourseStatus tracks a course through a scheduling run.
type CourseStatus string

const (
	CourseInProgress CourseStatus = "IN_PROGRESS"
	CourseScheduled  CourseStatus = "SCHEDULED"
	CourseErrors     CourseStatus = "ERRORS"
)

// InProgress reports whether the course is still eligible for placement.
func (s CourseStatus) InProgress() bool {
	return s == CourseInProgress
}

// IsError reports whether the course is in the error family; tutors with
// any such course are skipped by the scheduler.
func (s CourseStatus) IsError() bool {
	return s == CourseErrors
}

// PreferenceAny marks a course with no building preference.
const PreferenceAny = "any"

// Course is one tutored course section. The same code can appear on
// several tutors' rosters; the id is unique per tutor.
type Course struct {
	ID         string       `json:"id"`
	Code       string       `json:"code"`
	TutorID    string       `json:"tutorId"`
	PositionID string       `json:"positionId"`
	Status     CourseStatus `json:"status"`
	Preference string       `json:"preference,omitempty"`
}

// HasPreference reports whether the course pins sessions to a specific
// building.
func (c *Course) HasPreference() bool {
	return c.Preference != "" && c.Preference != PreferenceAny
}
