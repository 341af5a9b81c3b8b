package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func block(day Weekday, start, end int) *TimeBlock {
	return &TimeBlock{Day: day, Start: start, End: end, Tag: TagSession}
}

func TestConflictsWithOverlap(t *testing.T) {
	a := block(Monday, 9*60, 10*60)
	b := block(Monday, 9*60+30, 10*60+30)

	assert.True(t, a.ConflictsWith(b))
	assert.True(t, b.ConflictsWith(a))
}

func TestConflictsWithIsSymmetricForContainment(t *testing.T) {
	outer := block(Monday, 9*60, 12*60)
	inner := block(Monday, 10*60, 11*60)

	assert.True(t, outer.ConflictsWith(inner))
	assert.True(t, inner.ConflictsWith(outer))
}

func TestConflictsWithTouchingEndpoints(t *testing.T) {
	a := block(Monday, 9*60, 10*60)
	b := block(Monday, 10*60, 11*60)

	assert.False(t, a.ConflictsWith(b))
	assert.False(t, b.ConflictsWith(a))
}

func TestConflictsWithDifferentDays(t *testing.T) {
	a := block(Monday, 9*60, 10*60)
	b := block(Tuesday, 9*60, 10*60)

	assert.False(t, a.ConflictsWith(b))
}

func TestConflictsWithSelfAndNil(t *testing.T) {
	a := block(Monday, 9*60, 10*60)

	assert.False(t, a.ConflictsWith(a))
	assert.False(t, a.ConflictsWith(nil))
	assert.False(t, (*TimeBlock)(nil).ConflictsWith(a))
}

func TestMatchesIgnoresOwnership(t *testing.T) {
	a := &TimeBlock{CourseID: "c1", Tag: TagSession, Day: Monday, Start: 9 * 60, End: 10 * 60, TutorID: "t1"}
	b := &TimeBlock{CourseID: "c1", Tag: TagSession, Day: Monday, Start: 9 * 60, End: 10 * 60, RoomID: "r1"}

	assert.True(t, a.Matches(b))

	b.CourseID = "c2"
	assert.False(t, a.Matches(b))
}

func TestWeekdayHelpers(t *testing.T) {
	assert.True(t, Saturday.Weekend())
	assert.True(t, Sunday.Weekend())
	assert.False(t, Wednesday.Weekend())
	assert.Equal(t, "Wednesday", Wednesday.String())
	assert.Equal(t, "Unknown", Weekday(9).String())
	assert.Len(t, AllWeekdays(), 7)
}
