package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lssauto/auto-scheduler/internal/dto"
	"github.com/lssauto/auto-scheduler/internal/models"
	"github.com/lssauto/auto-scheduler/internal/store"
	"github.com/lssauto/auto-scheduler/internal/timeutil"
	appErrors "github.com/lssauto/auto-scheduler/pkg/errors"
)

// RosterService owns every mutation of the scheduling context outside a
// run: entity lifecycle, time block insertion and removal, and the
// timetable queries the display collaborators consume.
type RosterService struct {
	store     *store.Store
	policy    *models.Policy
	validator *validator.Validate
	logger    *zap.Logger
	notifier  Notifier
}

// NewRosterService wires the roster dependencies.
func NewRosterService(st *store.Store, policy *models.Policy, validate *validator.Validate, logger *zap.Logger, notifier Notifier) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}
	return &RosterService{store: st, policy: policy, validator: validate, logger: logger, notifier: notifier}
}

func (s *RosterService) emit(eventType EventType, entity, id string) {
	s.notifier.Notify(Event{Type: eventType, Entity: entity, ID: id, At: time.Now().UTC()})
}

// Revision exposes the store revision for cache versioning.
func (s *RosterService) Revision() uint64 {
	s.store.RLock()
	defer s.store.RUnlock()
	return s.store.Revision()
}

// --- Tutors ---

// CreateTutor registers a tutor with an empty weekly schedule.
func (s *RosterService) CreateTutor(ctx context.Context, req dto.CreateTutorRequest) (*models.Tutor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tutor payload")
	}
	tutor := models.NewTutor(uuid.NewString(), req.Name, req.Email)

	s.store.Lock()
	defer s.store.Unlock()
	if err := s.store.AddTutor(tutor); err != nil {
		return nil, err
	}
	s.emit(EventCreated, "tutor", tutor.ID)
	return tutor, nil
}

// ListTutors returns tutors in registration order.
func (s *RosterService) ListTutors(ctx context.Context) []*models.Tutor {
	s.store.RLock()
	defer s.store.RUnlock()
	return s.store.Tutors()
}

// DeleteTutor removes a tutor, cascading to courses and schedule blocks.
func (s *RosterService) DeleteTutor(ctx context.Context, id string) error {
	s.store.Lock()
	defer s.store.Unlock()
	if err := s.store.RemoveTutor(id); err != nil {
		return err
	}
	s.emit(EventDeleted, "tutor", id)
	return nil
}

// --- Courses ---

// CreateCourse attaches a course to a tutor's roster in the in-progress
// status. A building preference must name a known building or "any".
func (s *RosterService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	s.store.Lock()
	defer s.store.Unlock()

	course := &models.Course{
		ID:         uuid.NewString(),
		Code:       req.Code,
		TutorID:    req.TutorID,
		PositionID: req.PositionID,
		Status:     models.CourseInProgress,
		Preference: req.Preference,
	}
	if course.HasPreference() && s.store.Building(course.Preference) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("preferred building %s not found", course.Preference))
	}
	if err := s.store.AddCourse(course); err != nil {
		return nil, err
	}
	s.emit(EventCreated, "course", course.ID)
	return course, nil
}

// UpdateCourseStatus moves a course between status families, e.g. to
// flag a data error before a run or to reopen a scheduled course.
func (s *RosterService) UpdateCourseStatus(ctx context.Context, id string, status models.CourseStatus) (*models.Course, error) {
	switch status {
	case models.CourseInProgress, models.CourseScheduled, models.CourseErrors:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown course status %q", status))
	}

	s.store.Lock()
	defer s.store.Unlock()
	course := s.store.Course(id)
	if course == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found", id))
	}
	course.Status = status
	s.emit(EventStatusChanged, "course", id)
	return course, nil
}

// DeleteCourse removes a course and its schedule blocks.
func (s *RosterService) DeleteCourse(ctx context.Context, id string) error {
	s.store.Lock()
	defer s.store.Unlock()
	if err := s.store.RemoveCourse(id); err != nil {
		return err
	}
	s.emit(EventDeleted, "course", id)
	return nil
}

// --- Buildings ---

// CreateBuilding registers a building with the given open hours.
func (s *RosterService) CreateBuilding(ctx context.Context, req dto.CreateBuildingRequest) (*models.Building, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid building payload")
	}
	openRange, err := parseOpenRange(req.Days, req.Open, req.Close)
	if err != nil {
		return nil, err
	}
	building := &models.Building{ID: uuid.NewString(), Name: req.Name, Range: openRange}

	s.store.Lock()
	defer s.store.Unlock()
	if err := s.store.AddBuilding(building); err != nil {
		return nil, err
	}
	s.emit(EventCreated, "building", building.ID)
	return building, nil
}

// ListBuildings returns buildings in registration order.
func (s *RosterService) ListBuildings(ctx context.Context) []*models.Building {
	s.store.RLock()
	defer s.store.RUnlock()
	return s.store.Buildings()
}

// DeleteBuilding removes a building and its rooms.
func (s *RosterService) DeleteBuilding(ctx context.Context, id string) error {
	s.store.Lock()
	defer s.store.Unlock()
	if err := s.store.RemoveBuilding(id); err != nil {
		return err
	}
	s.emit(EventDeleted, "building", id)
	return nil
}

// --- Rooms ---

// CreateRoom registers a room. Rooms inside a building inherit its open
// hours; standalone rooms must carry their own.
func (s *RosterService) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	roomType := models.RoomType(req.Type)
	if !models.ValidRoomType(roomType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown room type %q", req.Type))
	}

	var openRange models.OpenRange
	if req.BuildingID == "" {
		parsed, err := parseOpenRange(req.Days, req.Open, req.Close)
		if err != nil {
			return nil, err
		}
		openRange = parsed
	}

	room := models.NewRoom(uuid.NewString(), req.Name, roomType, openRange)
	room.BuildingID = req.BuildingID

	s.store.Lock()
	defer s.store.Unlock()
	if err := s.store.AddRoom(room); err != nil {
		return nil, err
	}
	s.emit(EventCreated, "room", room.ID)
	return room, nil
}

// ListRooms returns rooms in registration order.
func (s *RosterService) ListRooms(ctx context.Context) []*models.Room {
	s.store.RLock()
	defer s.store.RUnlock()
	return s.store.Rooms()
}

// DeleteRoom removes a room, releasing its blocks back to their tutors.
func (s *RosterService) DeleteRoom(ctx context.Context, id string) error {
	s.store.Lock()
	defer s.store.Unlock()
	if err := s.store.RemoveRoom(id); err != nil {
		return err
	}
	s.emit(EventDeleted, "room", id)
	return nil
}

// --- Time blocks ---

// AddTimeBlock validates and inserts a block on the tutor's schedule.
func (s *RosterService) AddTimeBlock(ctx context.Context, req dto.AddTimeBlockRequest) (*models.TimeBlock, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time block payload")
	}
	tag := models.BlockTag(req.Tag)
	if !models.ValidTag(tag) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown block tag %q", req.Tag))
	}
	day, err := timeutil.ParseWeekday(req.Day)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid weekday")
	}
	start, err := timeutil.ParseClock(req.Start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start time")
	}
	end, err := timeutil.ParseClock(req.End)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end time")
	}
	if start >= end {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start must be before end")
	}

	requiresRoom := tag == models.TagSession
	if req.RequiresRoom != nil {
		requiresRoom = *req.RequiresRoom
	}

	s.store.Lock()
	defer s.store.Unlock()

	tutor := s.store.Tutor(req.TutorID)
	if tutor == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("tutor %s not found", req.TutorID))
	}
	if req.CourseID != "" {
		course := s.store.Course(req.CourseID)
		if course == nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found", req.CourseID))
		}
		if course.TutorID != tutor.ID {
			return nil, appErrors.Clone(appErrors.ErrValidation, "course belongs to a different tutor")
		}
	}

	block := &models.TimeBlock{
		ID:           uuid.NewString(),
		Day:          day,
		Start:        start,
		End:          end,
		Tag:          tag,
		CourseID:     req.CourseID,
		RequiresRoom: requiresRoom,
	}
	if outcome := tutor.Schedule.AddTime(block, s.policy.Periods); outcome != models.InsertSuccess {
		return nil, insertError(outcome)
	}
	s.emit(EventTimeAdded, "block", block.ID)
	return block, nil
}

// RemoveTimeBlock detaches a block from the tutor's schedule and, when
// room-bound, from the room schedule as well.
func (s *RosterService) RemoveTimeBlock(ctx context.Context, tutorID, blockID string) (*models.TimeBlock, error) {
	s.store.Lock()
	defer s.store.Unlock()

	tutor := s.store.Tutor(tutorID)
	if tutor == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("tutor %s not found", tutorID))
	}
	block := tutor.Schedule.Find(blockID)
	if block == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("block %s not found", blockID))
	}
	if block.RoomID != "" {
		if room := s.store.Room(block.RoomID); room != nil {
			room.Schedule.RemoveTime(block)
		}
	}
	tutor.Schedule.RemoveTime(block)
	s.emit(EventTimeRemoved, "block", blockID)
	return block, nil
}

// --- Timetables ---

// TutorTimetable renders a tutor's weekly schedule for display.
func (s *RosterService) TutorTimetable(ctx context.Context, tutorID string) (*dto.Timetable, error) {
	s.store.RLock()
	defer s.store.RUnlock()

	tutor := s.store.Tutor(tutorID)
	if tutor == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("tutor %s not found", tutorID))
	}
	return s.renderTimetable(tutorID, tutor.Name, tutor.Schedule.AllBlocks()), nil
}

// RoomTimetable renders a room's weekly schedule for display.
func (s *RosterService) RoomTimetable(ctx context.Context, roomID string) (*dto.Timetable, error) {
	s.store.RLock()
	defer s.store.RUnlock()

	room := s.store.Room(roomID)
	if room == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %s not found", roomID))
	}
	return s.renderTimetable(roomID, room.Name, room.Schedule.AllBlocks()), nil
}

func (s *RosterService) renderTimetable(ownerID, ownerName string, blocks []*models.TimeBlock) *dto.Timetable {
	timetable := &dto.Timetable{OwnerID: ownerID, OwnerName: ownerName, Blocks: []dto.TimetableBlock{}}
	for _, b := range blocks {
		entry := dto.TimetableBlock{
			ID:          b.ID,
			Day:         b.Day.String(),
			Start:       timeutil.Clock(b.Start),
			End:         timeutil.Clock(b.End),
			Tag:         string(b.Tag),
			HasConflict: b.HasConflict,
		}
		if course := s.store.Course(b.CourseID); course != nil {
			entry.CourseCode = course.Code
		}
		if tutor := s.store.Tutor(b.TutorID); tutor != nil {
			entry.TutorName = tutor.Name
		}
		if room := s.store.Room(b.RoomID); room != nil {
			entry.RoomName = room.Name
		}
		timetable.Blocks = append(timetable.Blocks, entry)
	}
	return timetable
}

func parseOpenRange(days, open, close string) (models.OpenRange, error) {
	parsedDays, err := timeutil.ParseDays(days)
	if err != nil {
		return models.OpenRange{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid day notation")
	}
	start, err := timeutil.ParseClock(open)
	if err != nil {
		return models.OpenRange{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid open time")
	}
	end, err := timeutil.ParseClock(close)
	if err != nil {
		return models.OpenRange{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid close time")
	}
	if start >= end {
		return models.OpenRange{}, appErrors.Clone(appErrors.ErrValidation, "open must be before close")
	}
	return models.OpenRange{Days: parsedDays, Start: start, End: end}, nil
}

func insertError(outcome models.InsertOutcome) *appErrors.Error {
	switch outcome {
	case models.InsertConflict:
		return appErrors.Clone(appErrors.ErrConflict, "time conflicts with an existing block")
	case models.InsertOverBooked:
		return appErrors.Clone(appErrors.ErrOverBooked, "")
	case models.InsertInvalidSession:
		return appErrors.Clone(appErrors.ErrInvalidSession, "")
	case models.InsertOutOfRange:
		return appErrors.Clone(appErrors.ErrOutOfRange, "")
	}
	return appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("unexpected insert outcome %q", outcome))
}
