package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lssauto/auto-scheduler/internal/models"
)

var testPeriods = models.PeriodTable{
	models.Monday: {{Start: 9 * 60, End: 10 * 60}, {Start: 10 * 60, End: 11 * 60}},
}

func newFixture(t *testing.T) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.AddPosition(&models.Position{
		ID: "sgt", Name: "Small Group Tutor", SessionLimit: 3, RequestLimit: 2,
		RoomTypes: []models.RoomType{models.RoomTypeSmallGroup},
	}))
	return s
}

func addBuilding(t *testing.T, s *Store, id string) *models.Building {
	t.Helper()
	b := &models.Building{
		ID:   id,
		Name: "Building " + id,
		Range: models.OpenRange{
			Days:  []models.Weekday{models.Monday, models.Tuesday},
			Start: 8 * 60,
			End:   17 * 60,
		},
	}
	require.NoError(t, s.AddBuilding(b))
	return b
}

func TestAddCourseRequiresTutorAndPosition(t *testing.T) {
	s := newFixture(t)

	err := s.AddCourse(&models.Course{ID: "c1", TutorID: "ghost", PositionID: "sgt"})
	assert.Error(t, err)

	tutor := models.NewTutor("t1", "Ada", "")
	require.NoError(t, s.AddTutor(tutor))

	err = s.AddCourse(&models.Course{ID: "c1", TutorID: "t1", PositionID: "ghost"})
	assert.Error(t, err)

	require.NoError(t, s.AddCourse(&models.Course{ID: "c1", TutorID: "t1", PositionID: "sgt"}))
	assert.Equal(t, []string{"c1"}, tutor.CourseIDs)
}

func TestRemoveCourseDetachesBlocks(t *testing.T) {
	s := newFixture(t)
	tutor := models.NewTutor("t1", "Ada", "")
	require.NoError(t, s.AddTutor(tutor))
	require.NoError(t, s.AddCourse(&models.Course{ID: "c1", TutorID: "t1", PositionID: "sgt"}))

	building := addBuilding(t, s, "b1")
	room := models.NewRoom("r1", "101", models.RoomTypeSmallGroup, models.OpenRange{})
	room.BuildingID = building.ID
	require.NoError(t, s.AddRoom(room))

	blk := &models.TimeBlock{ID: "blk1", Day: models.Monday, Start: 9 * 60, End: 10 * 60, Tag: models.TagSession, CourseID: "c1"}
	require.Equal(t, models.InsertSuccess, tutor.Schedule.AddTime(blk, testPeriods))
	require.Equal(t, models.InsertSuccess, room.Schedule.AddTime(blk, room.Range))

	require.NoError(t, s.RemoveCourse("c1"))

	assert.Nil(t, s.Course("c1"))
	assert.Empty(t, tutor.CourseIDs)
	assert.Zero(t, tutor.Schedule.Len())
	assert.Zero(t, room.Schedule.Len())
	assert.Empty(t, blk.RoomID)
	assert.Zero(t, room.Schedule.SessionCount(models.Monday))
}

func TestRemoveTutorCascades(t *testing.T) {
	s := newFixture(t)
	tutor := models.NewTutor("t1", "Ada", "")
	require.NoError(t, s.AddTutor(tutor))
	require.NoError(t, s.AddCourse(&models.Course{ID: "c1", TutorID: "t1", PositionID: "sgt"}))

	blk := &models.TimeBlock{ID: "blk1", Day: models.Monday, Start: 9 * 60, End: 10 * 60, Tag: models.TagLecture}
	require.Equal(t, models.InsertSuccess, tutor.Schedule.AddTime(blk, testPeriods))

	require.NoError(t, s.RemoveTutor("t1"))

	assert.Nil(t, s.Tutor("t1"))
	assert.Nil(t, s.Course("c1"))
	assert.Empty(t, s.Tutors())
}

func TestRoomInheritsBuildingRange(t *testing.T) {
	s := newFixture(t)
	building := addBuilding(t, s, "b1")

	room := models.NewRoom("r1", "101", models.RoomTypeSmallGroup, models.OpenRange{})
	room.BuildingID = building.ID
	require.NoError(t, s.AddRoom(room))

	assert.Equal(t, building.Range, room.Range)
	assert.Equal(t, []string{"r1"}, building.RoomIDs)
}

func TestEnsureRequestRoomIsIdempotent(t *testing.T) {
	s := newFixture(t)
	building := addBuilding(t, s, "b1")

	first, err := s.EnsureRequestRoom(building.ID)
	require.NoError(t, err)
	assert.True(t, first.IsRequestRoom())
	assert.Equal(t, first.ID, building.RequestRoomID)
	// Request rooms never join the physical room list.
	assert.False(t, building.HasRooms())

	second, err := s.EnsureRequestRoom(building.ID)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestRemoveBuildingCascadesRooms(t *testing.T) {
	s := newFixture(t)
	building := addBuilding(t, s, "b1")

	room := models.NewRoom("r1", "101", models.RoomTypeSmallGroup, models.OpenRange{})
	room.BuildingID = building.ID
	require.NoError(t, s.AddRoom(room))
	_, err := s.EnsureRequestRoom(building.ID)
	require.NoError(t, err)
	require.NoError(t, s.SetRegistrar(building.ID))

	require.NoError(t, s.RemoveBuilding(building.ID))

	assert.Nil(t, s.Building("b1"))
	assert.Nil(t, s.Room("r1"))
	assert.Empty(t, s.Rooms())
	assert.Nil(t, s.Registrar())
}

func TestRemoveRoomReleasesBlocks(t *testing.T) {
	s := newFixture(t)
	tutor := models.NewTutor("t1", "Ada", "")
	require.NoError(t, s.AddTutor(tutor))

	room := models.NewRoom("r1", "101", models.RoomTypeSmallGroup, models.OpenRange{
		Days: []models.Weekday{models.Monday}, Start: 8 * 60, End: 17 * 60,
	})
	require.NoError(t, s.AddRoom(room))

	blk := &models.TimeBlock{ID: "blk1", Day: models.Monday, Start: 9 * 60, End: 10 * 60, Tag: models.TagSession}
	require.Equal(t, models.InsertSuccess, tutor.Schedule.AddTime(blk, testPeriods))
	require.Equal(t, models.InsertSuccess, room.Schedule.AddTime(blk, room.Range))

	require.NoError(t, s.RemoveRoom("r1"))

	assert.Empty(t, blk.RoomID)
	// The block stays on the tutor's schedule.
	assert.Same(t, blk, tutor.Schedule.Find("blk1"))
}

func TestRevisionBumpsOnMutation(t *testing.T) {
	s := New()
	before := s.Revision()
	require.NoError(t, s.AddTutor(models.NewTutor("t1", "Ada", "")))
	assert.Greater(t, s.Revision(), before)
}

func TestOrderPreserved(t *testing.T) {
	s := newFixture(t)
	addBuilding(t, s, "b1")
	addBuilding(t, s, "b2")

	for _, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, s.AddRoom(models.NewRoom(id, id, models.RoomTypeSmallGroup, models.OpenRange{})))
	}

	var roomIDs []string
	for _, r := range s.Rooms() {
		roomIDs = append(roomIDs, r.ID)
	}
	assert.Equal(t, []string{"r1", "r2", "r3"}, roomIDs)

	var buildingIDs []string
	for _, b := range s.Buildings() {
		buildingIDs = append(buildingIDs, b.ID)
	}
	assert.Equal(t, []string{"b1", "b2"}, buildingIDs)
}
