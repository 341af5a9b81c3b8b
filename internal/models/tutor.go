package models

// Tutor owns one weekly schedule and a roster of courses.
type Tutor struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email,omitempty"`
	CourseIDs []string       `json:"courseIds"`
	Schedule  *TutorSchedule `json:"-"`
}

// NewTutor constructs a tutor with an empty schedule.
func NewTutor(id, name, email string) *Tutor {
	return &Tutor{
		ID:       id,
		Name:     name,
		Email:    email,
		Schedule: NewTutorSchedule(id),
	}
}

// RemoveCourse drops the course id from the tutor's roster.
func (t *Tutor) RemoveCourse(courseID string) {
	for i, id := range t.CourseIDs {
		if id == courseID {
			t.CourseIDs = append(t.CourseIDs[:i], t.CourseIDs[i+1:]...)
			return
		}
	}
}
