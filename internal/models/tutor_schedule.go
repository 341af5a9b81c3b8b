package models

// TutorSchedule is the weekly schedule owned by one tutor. Session
// blocks must sit inside a recognized class-period window and must not
// overlap other session blocks; non-session tags skip both checks.
type TutorSchedule struct {
	Schedule
	TutorID string
}

// NewTutorSchedule returns an empty schedule bound to the tutor.
func NewTutorSchedule(tutorID string) *TutorSchedule {
	return &TutorSchedule{Schedule: newSchedule(), TutorID: tutorID}
}

// AddTime validates the block and inserts it on success, binding the
// tutor back-reference. A failed candidate gets its conflict flag set so
// callers can surface the collision.
func (s *TutorSchedule) AddTime(b *TimeBlock, periods PeriodTable) InsertOutcome {
	if b.Tag == TagSession {
		if !periods.Recognizes(b.Day, b.Start, b.End) {
			return InsertInvalidSession
		}
		for _, cur := range s.Blocks(b.Day) {
			if cur.Tag != TagSession || cur.Matches(b) {
				continue
			}
			if cur.ConflictsWith(b) {
				b.HasConflict = true
				return InsertConflict
			}
		}
	}
	s.InsertTime(b)
	b.TutorID = s.TutorID
	return InsertSuccess
}

// PushTime inserts without validation, for re-attaching a block the
// caller already vetted.
func (s *TutorSchedule) PushTime(b *TimeBlock) {
	s.InsertTime(b)
	b.TutorID = s.TutorID
}

// RemoveTime detaches the block, clearing its tutor back-reference and
// conflict flag. Returns the removed block or nil when absent.
func (s *TutorSchedule) RemoveTime(b *TimeBlock) *TimeBlock {
	if b == nil || !s.detach(b) {
		return nil
	}
	b.TutorID = ""
	b.HasConflict = false
	return b
}

// RemoveTimeAt detaches the block at the day index.
func (s *TutorSchedule) RemoveTimeAt(day Weekday, idx int) *TimeBlock {
	b := s.detachAt(day, idx)
	if b == nil {
		return nil
	}
	b.TutorID = ""
	b.HasConflict = false
	return b
}
