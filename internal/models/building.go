package models

// OpenRange is a weekly open-hours window: the days a facility operates
// and the daily open/close times in minutes since midnight.
type OpenRange struct {
	Days  []Weekday `json:"days"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

// ContainsDay reports whether the weekday is within the range's days.
func (r OpenRange) ContainsDay(day Weekday) bool {
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}

// Contains reports whether the block's day is an open day and its whole
// interval lies within the open hours.
func (r OpenRange) Contains(b *TimeBlock) bool {
	if b == nil || !r.ContainsDay(b.Day) {
		return false
	}
	return b.Start >= r.Start && b.End <= r.End
}

// Building groups rooms under a shared open-hours window. A building
// with no physical rooms may own a single request room, the manual
// fallback that accumulates unplaceable sessions.
type Building struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Range         OpenRange `json:"range"`
	RoomIDs       []string  `json:"roomIds"`
	RequestRoomID string    `json:"requestRoomId,omitempty"`
}

// InRange reports whether the block falls inside the building's open
// hours.
func (b *Building) InRange(t *TimeBlock) bool {
	return b.Range.Contains(t)
}

// HasRooms reports whether the building owns any physical rooms.
func (b *Building) HasRooms() bool {
	return len(b.RoomIDs) > 0
}
