package dto

// TimetableBlock is one schedule entry rendered for display.
type TimetableBlock struct {
	ID          string `json:"id"`
	Day         string `json:"day"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Tag         string `json:"tag"`
	CourseCode  string `json:"courseCode,omitempty"`
	TutorName   string `json:"tutorName,omitempty"`
	RoomName    string `json:"roomName,omitempty"`
	HasConflict bool   `json:"hasConflict"`
}

// Timetable is a weekly schedule for one owner (tutor or room).
type Timetable struct {
	OwnerID   string           `json:"ownerId"`
	OwnerName string           `json:"ownerName"`
	Blocks    []TimetableBlock `json:"blocks"`
}
