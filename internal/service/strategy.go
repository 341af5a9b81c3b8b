package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lssauto/auto-scheduler/internal/models"
	"github.com/lssauto/auto-scheduler/internal/store"
	appErrors "github.com/lssauto/auto-scheduler/pkg/errors"
)

// Strategy decides where one pending session block goes. Implementations
// may mutate room schedules on success; the returned state tells the
// scheduler how to account for the attempt. An error means the entity
// graph is inconsistent and the run must stop.
type Strategy interface {
	Choose(block *models.TimeBlock, counts *models.SessionCounts) (models.ScheduledState, error)
}

// DefaultStrategy is the standard first-fit room search: preferred
// building first, SI rooms before general inventory for SI sessions,
// registrar request as the fallback. Room iteration follows registration
// order; there is no best-fit or balancing pass.
type DefaultStrategy struct {
	store  *store.Store
	logger *zap.Logger
}

// NewDefaultStrategy wires the strategy to the scheduling context.
func NewDefaultStrategy(st *store.Store, logger *zap.Logger) *DefaultStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultStrategy{store: st, logger: logger}
}

// Choose attempts the placement stages in order and returns on the first
// success.
func (d *DefaultStrategy) Choose(b *models.TimeBlock, counts *models.SessionCounts) (models.ScheduledState, error) {
	tutor := d.store.Tutor(b.TutorID)
	course := d.store.Course(b.CourseID)
	position := d.store.Position(counts.PositionID)
	if tutor == nil || course == nil || position == nil {
		return models.StateNoSession, appErrors.Clone(appErrors.ErrPreconditionFailed,
			fmt.Sprintf("block %s references a missing tutor, course or position", b.ID))
	}

	// Weekend blocks skip the cross-day guard: weekend inventory is
	// scarce enough that repeating a weekday start time is expected.
	if !b.Day.Weekend() && d.sameStartOnAnotherDay(tutor, b) {
		return models.StateNoSession, nil
	}
	taken, err := d.courseSlotTaken(course, b)
	if err != nil {
		return models.StateNoSession, err
	}
	if taken {
		return models.StateNoSession, nil
	}

	// The tutor secured their own space; nothing to search.
	if !b.RequiresRoom {
		return models.StateTutorScheduled, nil
	}

	// Automatic placements beyond the position's fair share overflow to
	// the registrar queue while it is open for this slot.
	if counts.Count-counts.Requests >= position.RequestLimit {
		if state := d.pushRegistrarRequest(b); state == models.StateRequest {
			return state, nil
		}
	}

	if course.HasPreference() {
		building := d.store.Building(course.Preference)
		if building == nil {
			return models.StateNoSession, appErrors.Clone(appErrors.ErrPreconditionFailed,
				fmt.Sprintf("course %s prefers unknown building %s", course.ID, course.Preference))
		}
		if building.InRange(b) {
			if !building.HasRooms() {
				if room, err := d.store.EnsureRequestRoom(building.ID); err == nil {
					room.Schedule.PushTime(b)
					return models.StateRequest, nil
				}
			} else {
				rooms := d.store.RoomsOf(building)
				if position.ID == models.PositionSI && d.placeInRooms(b, rooms, siRoom) {
					return models.StateScheduled, nil
				}
				if d.placeInRooms(b, rooms, eligibleRoom(position)) {
					return models.StateScheduled, nil
				}
			}
		}
	}

	if position.ID == models.PositionSI && d.placeInRooms(b, d.store.Rooms(), siRoom) {
		return models.StateScheduled, nil
	}
	if d.placeInRooms(b, d.store.Rooms(), eligibleRoom(position)) {
		return models.StateScheduled, nil
	}
	if state := d.pushRegistrarRequest(b); state == models.StateRequest {
		return state, nil
	}
	return models.StateNoSession, nil
}

// sameStartOnAnotherDay reports whether the tutor already holds a
// room-bound session starting at the identical time on a different
// weekday, which masks double-booking across days.
func (d *DefaultStrategy) sameStartOnAnotherDay(tutor *models.Tutor, b *models.TimeBlock) bool {
	for _, day := range models.AllWeekdays() {
		if day == b.Day {
			continue
		}
		for _, other := range tutor.Schedule.SessionBlocks(day) {
			if other.RoomID != "" && other.Start == b.Start {
				return true
			}
		}
	}
	return false
}

// courseSlotTaken reports whether another tutor covering the same course
// code under the same position already holds a room-bound session
// overlapping this slot.
func (d *DefaultStrategy) courseSlotTaken(course *models.Course, b *models.TimeBlock) (bool, error) {
	for _, other := range d.store.Tutors() {
		if other.ID == course.TutorID {
			continue
		}
		for _, blk := range other.Schedule.SessionBlocks(b.Day) {
			if blk.RoomID == "" || !blk.ConflictsWith(b) {
				continue
			}
			blkCourse := d.store.Course(blk.CourseID)
			if blkCourse == nil {
				return false, appErrors.Clone(appErrors.ErrPreconditionFailed,
					fmt.Sprintf("block %s references missing course %s", blk.ID, blk.CourseID))
			}
			if blkCourse.Code == course.Code && blkCourse.PositionID == course.PositionID {
				return true, nil
			}
		}
	}
	return false, nil
}

// pushRegistrarRequest queues the block on the registrar's request room.
// Request rooms are manual-handling queues, not real inventory, so
// entries accumulate without overlap or cap checks; the only gate is the
// registrar being open for the slot.
func (d *DefaultStrategy) pushRegistrarRequest(b *models.TimeBlock) models.ScheduledState {
	registrar := d.store.Registrar()
	if registrar == nil || !registrar.InRange(b) {
		return models.StateNoSession
	}
	room, err := d.store.EnsureRequestRoom(registrar.ID)
	if err != nil {
		return models.StateNoSession
	}
	room.Schedule.PushTime(b)
	return models.StateRequest
}

// placeInRooms runs the first-fit scan, skipping request pseudo-rooms.
func (d *DefaultStrategy) placeInRooms(b *models.TimeBlock, rooms []*models.Room, allowed func(*models.Room) bool) bool {
	for _, room := range rooms {
		if room.IsRequestRoom() || !allowed(room) {
			continue
		}
		if room.Schedule.AddTime(b, room.Range) == models.InsertSuccess {
			d.logger.Debug("session placed",
				zap.String("block", b.ID),
				zap.String("room", room.ID),
				zap.String("day", b.Day.String()),
			)
			return true
		}
	}
	return false
}

func siRoom(r *models.Room) bool {
	return r.Type == models.RoomTypeSI
}

func eligibleRoom(p *models.Position) func(*models.Room) bool {
	return func(r *models.Room) bool {
		return p.AllowsRoom(r.Type)
	}
}
