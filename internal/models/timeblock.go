package models

// Weekday indexes the seven day buckets of a weekly schedule.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (d Weekday) String() string {
	if d < Sunday || d > Saturday {
		return "Unknown"
	}
	return weekdayNames[d]
}

// Valid reports whether the weekday is one of the seven known days.
func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// Weekend reports whether the day is Saturday or Sunday.
func (d Weekday) Weekend() bool {
	return d == Saturday || d == Sunday
}

// AllWeekdays returns the seven weekdays in calendar order.
func AllWeekdays() []Weekday {
	return []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// BlockTag classifies what a time block represents.
type BlockTag string

const (
	TagSession     BlockTag = "SESSION"
	TagLecture     BlockTag = "LECTURE"
	TagOfficeHours BlockTag = "OFFICE_HOURS"
	TagDiscord     BlockTag = "DISCORD_SUPPORT"
	TagConflict    BlockTag = "CONFLICT"
	TagReservation BlockTag = "RESERVATION"
)

// ValidTag reports whether the tag belongs to the known vocabulary.
func ValidTag(tag BlockTag) bool {
	switch tag {
	case TagSession, TagLecture, TagOfficeHours, TagDiscord, TagConflict, TagReservation:
		return true
	}
	return false
}

// TimeBlock is one scheduled weekly interval. Course, tutor and room are
// referenced by id only; lookups go through the scheduling store.
type TimeBlock struct {
	ID           string   `json:"id"`
	Day          Weekday  `json:"day"`
	Start        int      `json:"start"`
	End          int      `json:"end"`
	Tag          BlockTag `json:"tag"`
	CourseID     string   `json:"courseId,omitempty"`
	TutorID      string   `json:"tutorId,omitempty"`
	RoomID       string   `json:"roomId,omitempty"`
	RequiresRoom bool     `json:"requiresRoom"`
	HasConflict  bool     `json:"hasConflict"`
}

// ConflictsWith reports whether the two blocks truly overlap on the same
// day. Intervals that merely touch at an endpoint do not conflict, and a
// block never conflicts with itself.
func (b *TimeBlock) ConflictsWith(other *TimeBlock) bool {
	if b == nil || other == nil || b == other {
		return false
	}
	if b.Day != other.Day {
		return false
	}
	return b.Start < other.End && other.Start < b.End
}

// Matches reports whether the other block describes the same request:
// identical course, tag, day and interval. Used to recognize a re-synced
// copy of an existing entry rather than a real conflict.
func (b *TimeBlock) Matches(other *TimeBlock) bool {
	if b == nil || other == nil {
		return false
	}
	return b.CourseID == other.CourseID &&
		b.Tag == other.Tag &&
		b.Day == other.Day &&
		b.Start == other.Start &&
		b.End == other.End
}
