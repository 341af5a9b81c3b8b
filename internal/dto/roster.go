package dto

// CreateTutorRequest registers a tutor.
type CreateTutorRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CreateCourseRequest attaches a course section to a tutor's roster.
type CreateCourseRequest struct {
	TutorID    string `json:"tutorId" validate:"required"`
	Code       string `json:"code" validate:"required"`
	PositionID string `json:"positionId" validate:"required"`
	Preference string `json:"preference"`
}

// CreateBuildingRequest registers a building with its open hours.
// Days uses the compact notation, e.g. "MTuWThF"; times are clock
// strings such as "8:00 AM".
type CreateBuildingRequest struct {
	Name  string `json:"name" validate:"required"`
	Days  string `json:"days" validate:"required"`
	Open  string `json:"open" validate:"required"`
	Close string `json:"close" validate:"required"`
}

// CreateRoomRequest registers a room, either inside a building (open
// hours inherited) or standalone with its own hours.
type CreateRoomRequest struct {
	Name       string `json:"name" validate:"required"`
	BuildingID string `json:"buildingId"`
	Type       string `json:"type" validate:"required"`
	Days       string `json:"days" validate:"required_without=BuildingID"`
	Open       string `json:"open" validate:"required_without=BuildingID"`
	Close      string `json:"close" validate:"required_without=BuildingID"`
}

// AddTimeBlockRequest appends a block to a tutor's weekly schedule.
type AddTimeBlockRequest struct {
	TutorID      string `json:"tutorId" validate:"required"`
	CourseID     string `json:"courseId"`
	Tag          string `json:"tag" validate:"required"`
	Day          string `json:"day" validate:"required"`
	Start        string `json:"start" validate:"required"`
	End          string `json:"end" validate:"required"`
	RequiresRoom *bool  `json:"requiresRoom"`
}
