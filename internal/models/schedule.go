package models

import "sort"

// InsertOutcome is the non-exceptional result of a schedule insertion.
// Anything other than InsertSuccess leaves the schedule unmutated.
type InsertOutcome string

const (
	InsertSuccess        InsertOutcome = "SUCCESS"
	InsertConflict       InsertOutcome = "CONFLICT"
	InsertOverBooked     InsertOutcome = "OVER_BOOKED"
	InsertInvalidSession InsertOutcome = "INVALID_SESSION"
	InsertOutOfRange     InsertOutcome = "OUT_OF_RANGE"
)

// Schedule is a weekly day-bucketed collection of time blocks, kept
// sorted ascending by start within each day. Validation lives on the
// concrete tutor/room schedule types; Schedule provides the shared
// bucket mechanics.
type Schedule struct {
	days map[Weekday][]*TimeBlock
}

func newSchedule() Schedule {
	return Schedule{days: make(map[Weekday][]*TimeBlock, 7)}
}

// InsertTime places the block into its day bucket preserving ascending
// start order and returns the index it was inserted at. Callers are
// expected to have validated the block first.
func (s *Schedule) InsertTime(b *TimeBlock) int {
	bucket := s.days[b.Day]
	idx := sort.Search(len(bucket), func(i int) bool {
		return bucket[i].Start > b.Start
	})
	bucket = append(bucket, nil)
	copy(bucket[idx+1:], bucket[idx:])
	bucket[idx] = b
	s.days[b.Day] = bucket
	return idx
}

// Blocks returns the day's bucket in ascending start order. The slice is
// shared with the schedule and must not be mutated by callers.
func (s *Schedule) Blocks(day Weekday) []*TimeBlock {
	return s.days[day]
}

// SessionBlocks returns the day's session-tagged blocks in ascending
// start order.
func (s *Schedule) SessionBlocks(day Weekday) []*TimeBlock {
	var sessions []*TimeBlock
	for _, b := range s.days[day] {
		if b.Tag == TagSession {
			sessions = append(sessions, b)
		}
	}
	return sessions
}

// AllBlocks returns every block across the week in day order.
func (s *Schedule) AllBlocks() []*TimeBlock {
	var all []*TimeBlock
	for _, day := range AllWeekdays() {
		all = append(all, s.days[day]...)
	}
	return all
}

// Find returns the block with the given id, or nil.
func (s *Schedule) Find(id string) *TimeBlock {
	for _, bucket := range s.days {
		for _, b := range bucket {
			if b.ID == id {
				return b
			}
		}
	}
	return nil
}

// ConflictingBlock returns the first existing block that truly overlaps
// the candidate, skipping ignore when non-nil. It never mutates.
func (s *Schedule) ConflictingBlock(candidate, ignore *TimeBlock) *TimeBlock {
	for _, b := range s.days[candidate.Day] {
		if b == ignore {
			continue
		}
		if b.ConflictsWith(candidate) {
			return b
		}
	}
	return nil
}

// HasConflictWith reports whether the candidate overlaps any existing
// block, skipping ignore when non-nil.
func (s *Schedule) HasConflictWith(candidate, ignore *TimeBlock) bool {
	return s.ConflictingBlock(candidate, ignore) != nil
}

// detach removes the block from its day bucket and reports whether it
// was present.
func (s *Schedule) detach(b *TimeBlock) bool {
	bucket := s.days[b.Day]
	for i, cur := range bucket {
		if cur == b {
			s.days[b.Day] = append(bucket[:i], bucket[i+1:]...)
			return true
		}
	}
	return false
}

// detachAt removes and returns the block at the given day index, or nil.
func (s *Schedule) detachAt(day Weekday, idx int) *TimeBlock {
	bucket := s.days[day]
	if idx < 0 || idx >= len(bucket) {
		return nil
	}
	b := bucket[idx]
	s.days[day] = append(bucket[:idx], bucket[idx+1:]...)
	return b
}

// Len returns the total number of blocks held across the week.
func (s *Schedule) Len() int {
	total := 0
	for _, bucket := range s.days {
		total += len(bucket)
	}
	return total
}
