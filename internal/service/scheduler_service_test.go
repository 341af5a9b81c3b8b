package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lssauto/auto-scheduler/internal/dto"
	"github.com/lssauto/auto-scheduler/internal/models"
	"github.com/lssauto/auto-scheduler/internal/store"
)

type schedulerFixture struct {
	store     *store.Store
	service   *SchedulerService
	strategyF *strategyFixture
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	t.Helper()
	sf := newStrategyFixture(t)
	require.NoError(t, sf.store.AddPosition(&models.Position{
		ID: models.PositionWriting, Name: "Writing Tutor", SessionLimit: 3, RequestLimit: 2,
		RoomTypes: []models.RoomType{models.RoomTypeConference, models.RoomTypeSmallGroup},
	}))

	policy := &models.Policy{Periods: strategyPeriods}
	svc := NewSchedulerService(sf.store, policy, nil, nil, nil, SchedulerConfig{})
	return &schedulerFixture{store: sf.store, service: svc, strategyF: sf}
}

func (f *schedulerFixture) run(t *testing.T, seed int64) *dto.ScheduleRunReport {
	t.Helper()
	// Run acquires the store lock itself.
	report, err := f.service.Run(context.Background(), dto.RunScheduleRequest{Seed: &seed})
	require.NoError(t, err)
	return report
}

func TestSchedulerRunPassOrder(t *testing.T) {
	f := newSchedulerFixture(t)
	sf := f.strategyF
	building := sf.addBuilding(t, "b1")
	sf.addRoom(t, "r1", "b1", models.RoomTypeSmallGroup)
	sf.addRoom(t, "conf", "b1", models.RoomTypeConference)

	// Registered in the reverse of the expected processing order.
	sf.addTutor(t, "t-writing")
	sf.addCourse(t, "cw", "t-writing", "ENGL 101", models.PositionWriting, "")
	sf.addTutor(t, "t-pref")
	sf.addCourse(t, "cp", "t-pref", "MATH 101", "sgt", building.ID)
	sf.addTutor(t, "t-plain")
	sf.addCourse(t, "cn", "t-plain", "CHEM 101", "sgt", "")

	report := f.run(t, 1)

	require.Len(t, report.Tutors, 3)
	assert.Equal(t, "t-pref", report.Tutors[0].TutorID)
	assert.Equal(t, 1, report.Tutors[0].Pass)
	assert.Equal(t, "t-plain", report.Tutors[1].TutorID)
	assert.Equal(t, 2, report.Tutors[1].Pass)
	assert.Equal(t, "t-writing", report.Tutors[2].TutorID)
	assert.Equal(t, 3, report.Tutors[2].Pass)
}

func TestSchedulerRunSkipsErrorStatusTutor(t *testing.T) {
	f := newSchedulerFixture(t)
	sf := f.strategyF
	sf.addBuilding(t, "b1")
	sf.addRoom(t, "r1", "b1", models.RoomTypeSmallGroup)

	tutor := sf.addTutor(t, "t1")
	good := sf.addCourse(t, "c1", "t1", "MATH 101", "sgt", "")
	bad := sf.addCourse(t, "c2", "t1", "PHYS 101", "sgt", "")
	bad.Status = models.CourseErrors
	sf.sessionBlock(t, tutor, "c1", models.Monday, 9*60)

	report := f.run(t, 1)

	require.Len(t, report.Tutors, 1)
	assert.True(t, report.Tutors[0].Skipped)
	assert.Zero(t, report.SessionsPlaced)
	// A skipped tutor's courses keep their statuses.
	assert.Equal(t, models.CourseInProgress, good.Status)
	assert.Equal(t, models.CourseErrors, bad.Status)
}

func TestSchedulerRunAdvancesCourseStatus(t *testing.T) {
	f := newSchedulerFixture(t)
	sf := f.strategyF
	sf.addBuilding(t, "b1")
	sf.addRoom(t, "r1", "b1", models.RoomTypeSmallGroup)

	tutor := sf.addTutor(t, "t1")
	course := sf.addCourse(t, "c1", "t1", "MATH 101", "sgt", "")
	b := sf.sessionBlock(t, tutor, "c1", models.Monday, 9*60)

	report := f.run(t, 1)

	assert.Equal(t, 1, report.SessionsPlaced)
	assert.Equal(t, models.CourseScheduled, course.Status)
	assert.Equal(t, "r1", b.RoomID)
}

func TestSchedulerRunDailyPlacementCap(t *testing.T) {
	f := newSchedulerFixture(t)
	sf := f.strategyF
	sf.addBuilding(t, "b1")
	sf.addRoom(t, "r1", "b1", models.RoomTypeSmallGroup)

	tutor := sf.addTutor(t, "t1")
	sf.addCourse(t, "c1", "t1", "MATH 101", "sgt", "")
	sf.sessionBlock(t, tutor, "c1", models.Monday, 9*60)
	sf.sessionBlock(t, tutor, "c1", models.Monday, 10*60)
	sf.sessionBlock(t, tutor, "c1", models.Monday, 11*60)

	report := f.run(t, 1)

	// At most two new placements land on one weekday per run.
	assert.Equal(t, 2, report.SessionsPlaced)
	assert.Equal(t, 2, sf.store.Room("r1").Schedule.SessionCount(models.Monday))
}

func TestSchedulerRunHonoursPositionSessionLimit(t *testing.T) {
	f := newSchedulerFixture(t)
	sf := f.strategyF
	sf.addBuilding(t, "b1")
	sf.addRoom(t, "r1", "b1", models.RoomTypeSmallGroup)

	tutor := sf.addTutor(t, "t1")
	sf.addCourse(t, "c1", "t1", "MATH 101", "sgt", "")
	// Four candidate blocks across two days for a limit of three.
	sf.sessionBlock(t, tutor, "c1", models.Monday, 9*60)
	sf.sessionBlock(t, tutor, "c1", models.Monday, 10*60)
	sf.sessionBlock(t, tutor, "c1", models.Tuesday, 9*60)
	sf.sessionBlock(t, tutor, "c1", models.Tuesday, 10*60)

	report := f.run(t, 1)

	assert.LessOrEqual(t, report.SessionsPlaced, 3)
}

func TestSchedulerRunCountsExistingPlacements(t *testing.T) {
	f := newSchedulerFixture(t)
	sf := f.strategyF
	sf.addBuilding(t, "b1")
	room := sf.addRoom(t, "r1", "b1", models.RoomTypeSmallGroup)

	tutor := sf.addTutor(t, "t1")
	sf.addCourse(t, "c1", "t1", "MATH 101", "sgt", "")
	placed := sf.sessionBlock(t, tutor, "c1", models.Monday, 9*60)
	require.Equal(t, models.InsertSuccess, room.Schedule.AddTime(placed, room.Range))

	report := f.run(t, 1)

	// The pre-placed block is accounted for, not re-placed.
	assert.Equal(t, 1, report.SessionsPlaced)
	assert.Equal(t, 1, room.Schedule.SessionCount(models.Monday))
}

func TestSchedulerRunSeedIsDeterministic(t *testing.T) {
	build := func(t *testing.T) *schedulerFixture {
		f := newSchedulerFixture(t)
		sf := f.strategyF
		sf.addBuilding(t, "b1")
		sf.addRoom(t, "r1", "b1", models.RoomTypeSmallGroup)
		for _, id := range []string{"t1", "t2"} {
			tutor := sf.addTutor(t, id)
			sf.addCourse(t, "c-"+id, id, "MATH "+id, "sgt", "")
			sf.sessionBlock(t, tutor, "c-"+id, models.Monday, 9*60)
			sf.sessionBlock(t, tutor, "c-"+id, models.Tuesday, 10*60)
		}
		return f
	}

	first := build(t).run(t, 42)
	second := build(t).run(t, 42)

	assert.Equal(t, first.SessionsPlaced, second.SessionsPlaced)
	assert.Equal(t, first.Unplaced, second.Unplaced)
	require.Equal(t, len(first.Tutors), len(second.Tutors))
	for i := range first.Tutors {
		assert.Equal(t, first.Tutors[i], second.Tutors[i])
	}
}

func TestSchedulerReportRetention(t *testing.T) {
	f := newSchedulerFixture(t)
	f.strategyF.addTutor(t, "t1")

	report := f.run(t, 1)

	cached, ok := f.service.Report(report.RunID)
	require.True(t, ok)
	assert.Equal(t, report.RunID, cached.RunID)

	_, ok = f.service.Report("missing")
	assert.False(t, ok)
}
