package models

// MaxRoomSessionsPerDay caps session-tagged blocks per room per weekday.
const MaxRoomSessionsPerDay = 4

// RoomSchedule is the weekly schedule owned by one room. Every entry
// must fall inside the room's open range and entries never overlap
// regardless of tag. Session-tagged entries are additionally capped per
// weekday, with the counter kept symmetric across insert and removal.
type RoomSchedule struct {
	Schedule
	RoomID   string
	sessions map[Weekday]int
}

// NewRoomSchedule returns an empty schedule bound to the room.
func NewRoomSchedule(roomID string) *RoomSchedule {
	return &RoomSchedule{
		Schedule: newSchedule(),
		RoomID:   roomID,
		sessions: make(map[Weekday]int, 7),
	}
}

// AddTime validates the block against the room's open range, the per-day
// session cap and every existing entry, then inserts and binds the room
// back-reference.
func (s *RoomSchedule) AddTime(b *TimeBlock, open OpenRange) InsertOutcome {
	if !open.Contains(b) {
		return InsertOutOfRange
	}
	if b.Tag == TagSession && s.sessions[b.Day] >= MaxRoomSessionsPerDay {
		return InsertOverBooked
	}
	for _, cur := range s.Blocks(b.Day) {
		if cur.Matches(b) {
			continue
		}
		if cur.ConflictsWith(b) {
			return InsertConflict
		}
	}
	s.InsertTime(b)
	b.RoomID = s.RoomID
	if b.Tag == TagSession {
		s.sessions[b.Day]++
	}
	return InsertSuccess
}

// PushTime inserts without validation, binding the room back-reference
// and keeping the session counter consistent.
func (s *RoomSchedule) PushTime(b *TimeBlock) {
	s.InsertTime(b)
	b.RoomID = s.RoomID
	if b.Tag == TagSession {
		s.sessions[b.Day]++
	}
}

// RemoveTime detaches the block, clears its room back-reference and
// decrements the day's session counter for session-tagged blocks.
func (s *RoomSchedule) RemoveTime(b *TimeBlock) *TimeBlock {
	if b == nil || !s.detach(b) {
		return nil
	}
	s.release(b)
	return b
}

// RemoveTimeAt detaches the block at the day index.
func (s *RoomSchedule) RemoveTimeAt(day Weekday, idx int) *TimeBlock {
	b := s.detachAt(day, idx)
	if b == nil {
		return nil
	}
	s.release(b)
	return b
}

func (s *RoomSchedule) release(b *TimeBlock) {
	b.RoomID = ""
	if b.Tag == TagSession && s.sessions[b.Day] > 0 {
		s.sessions[b.Day]--
	}
}

// SessionCount returns the number of session-tagged blocks held for the
// weekday.
func (s *RoomSchedule) SessionCount(day Weekday) int {
	return s.sessions[day]
}
