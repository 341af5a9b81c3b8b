// Package store holds the in-memory scheduling context: tutors, courses,
// rooms, buildings and positions, looked up by id. Insertion order of
// rooms and buildings is preserved because the room-search heuristic is
// first-fit over natural collection order.
package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/lssauto/auto-scheduler/internal/models"
	appErrors "github.com/lssauto/auto-scheduler/pkg/errors"
)

// Store is the scheduling context. Methods do not lock internally;
// callers serialize access through the embedded RWMutex. A scheduling
// run holds the write lock for its full duration since room fill-order
// across tutors determines outcomes.
type Store struct {
	sync.RWMutex

	tutors     map[string]*models.Tutor
	tutorOrder []string

	courses map[string]*models.Course

	rooms     map[string]*models.Room
	roomOrder []string

	buildings     map[string]*models.Building
	buildingOrder []string

	positions     map[string]*models.Position
	positionOrder []string

	registrarID string
	revision    uint64
}

// New returns an empty scheduling context.
func New() *Store {
	return &Store{
		tutors:    make(map[string]*models.Tutor),
		courses:   make(map[string]*models.Course),
		rooms:     make(map[string]*models.Room),
		buildings: make(map[string]*models.Building),
		positions: make(map[string]*models.Position),
	}
}

// Revision returns a counter bumped on every mutation, used to version
// cached query responses.
func (s *Store) Revision() uint64 {
	return s.revision
}

func (s *Store) bump() {
	s.revision++
}

// --- Positions ---

// AddPosition registers a position policy.
func (s *Store) AddPosition(p *models.Position) error {
	if _, exists := s.positions[p.ID]; exists {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("position %s already exists", p.ID))
	}
	s.positions[p.ID] = p
	s.positionOrder = append(s.positionOrder, p.ID)
	s.bump()
	return nil
}

// Position returns the position by id, or nil.
func (s *Store) Position(id string) *models.Position {
	return s.positions[id]
}

// Positions returns positions in registration order.
func (s *Store) Positions() []*models.Position {
	result := make([]*models.Position, 0, len(s.positionOrder))
	for _, id := range s.positionOrder {
		result = append(result, s.positions[id])
	}
	return result
}

// --- Tutors ---

// AddTutor registers a tutor.
func (s *Store) AddTutor(t *models.Tutor) error {
	if _, exists := s.tutors[t.ID]; exists {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("tutor %s already exists", t.ID))
	}
	s.tutors[t.ID] = t
	s.tutorOrder = append(s.tutorOrder, t.ID)
	s.bump()
	return nil
}

// Tutor returns the tutor by id, or nil.
func (s *Store) Tutor(id string) *models.Tutor {
	return s.tutors[id]
}

// Tutors returns tutors in registration order.
func (s *Store) Tutors() []*models.Tutor {
	result := make([]*models.Tutor, 0, len(s.tutorOrder))
	for _, id := range s.tutorOrder {
		result = append(result, s.tutors[id])
	}
	return result
}

// RemoveTutor deletes a tutor, cascading to their courses and detaching
// every owned block from room schedules.
func (s *Store) RemoveTutor(id string) error {
	tutor, ok := s.tutors[id]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("tutor %s not found", id))
	}
	for _, courseID := range append([]string(nil), tutor.CourseIDs...) {
		if err := s.RemoveCourse(courseID); err != nil {
			return err
		}
	}
	for _, b := range tutor.Schedule.AllBlocks() {
		s.detachFromRoom(b)
		tutor.Schedule.RemoveTime(b)
	}
	delete(s.tutors, id)
	s.tutorOrder = removeID(s.tutorOrder, id)
	s.bump()
	return nil
}

// --- Courses ---

// AddCourse registers a course on its tutor's roster. The tutor and
// position must already exist.
func (s *Store) AddCourse(c *models.Course) error {
	tutor, ok := s.tutors[c.TutorID]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("tutor %s not found", c.TutorID))
	}
	if _, ok := s.positions[c.PositionID]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("position %s not found", c.PositionID))
	}
	if _, exists := s.courses[c.ID]; exists {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("course %s already exists", c.ID))
	}
	s.courses[c.ID] = c
	tutor.CourseIDs = append(tutor.CourseIDs, c.ID)
	s.bump()
	return nil
}

// Course returns the course by id, or nil.
func (s *Store) Course(id string) *models.Course {
	return s.courses[id]
}

// CoursesOf returns the tutor's courses in roster order.
func (s *Store) CoursesOf(t *models.Tutor) []*models.Course {
	result := make([]*models.Course, 0, len(t.CourseIDs))
	for _, id := range t.CourseIDs {
		if c := s.courses[id]; c != nil {
			result = append(result, c)
		}
	}
	return result
}

// RemoveCourse deletes a course and every schedule block referencing it,
// clearing room and tutor back-references.
func (s *Store) RemoveCourse(id string) error {
	course, ok := s.courses[id]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found", id))
	}
	if tutor := s.tutors[course.TutorID]; tutor != nil {
		for _, b := range tutor.Schedule.AllBlocks() {
			if b.CourseID != id {
				continue
			}
			s.detachFromRoom(b)
			tutor.Schedule.RemoveTime(b)
		}
		tutor.RemoveCourse(id)
	}
	delete(s.courses, id)
	s.bump()
	return nil
}

// --- Buildings ---

// AddBuilding registers a building.
func (s *Store) AddBuilding(b *models.Building) error {
	if _, exists := s.buildings[b.ID]; exists {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("building %s already exists", b.ID))
	}
	s.buildings[b.ID] = b
	s.buildingOrder = append(s.buildingOrder, b.ID)
	s.bump()
	return nil
}

// Building returns the building by id, or nil.
func (s *Store) Building(id string) *models.Building {
	return s.buildings[id]
}

// Buildings returns buildings in registration order.
func (s *Store) Buildings() []*models.Building {
	result := make([]*models.Building, 0, len(s.buildingOrder))
	for _, id := range s.buildingOrder {
		result = append(result, s.buildings[id])
	}
	return result
}

// RemoveBuilding deletes a building and cascades to its rooms, including
// the request room when present.
func (s *Store) RemoveBuilding(id string) error {
	building, ok := s.buildings[id]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("building %s not found", id))
	}
	for _, roomID := range append([]string(nil), building.RoomIDs...) {
		if err := s.RemoveRoom(roomID); err != nil {
			return err
		}
	}
	if building.RequestRoomID != "" {
		if err := s.RemoveRoom(building.RequestRoomID); err != nil {
			return err
		}
	}
	if s.registrarID == id {
		s.registrarID = ""
	}
	delete(s.buildings, id)
	s.buildingOrder = removeID(s.buildingOrder, id)
	s.bump()
	return nil
}

// SetRegistrar marks the building acting as the manual-request fallback.
func (s *Store) SetRegistrar(buildingID string) error {
	if _, ok := s.buildings[buildingID]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("building %s not found", buildingID))
	}
	s.registrarID = buildingID
	return nil
}

// Registrar returns the manual-request pseudo-building, or nil.
func (s *Store) Registrar() *models.Building {
	if s.registrarID == "" {
		return nil
	}
	return s.buildings[s.registrarID]
}

// --- Rooms ---

// AddRoom registers a room. A room naming a building joins that
// building's room list and inherits its open range.
func (s *Store) AddRoom(r *models.Room) error {
	if _, exists := s.rooms[r.ID]; exists {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("room %s already exists", r.ID))
	}
	if r.BuildingID != "" {
		building, ok := s.buildings[r.BuildingID]
		if !ok {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("building %s not found", r.BuildingID))
		}
		r.Range = building.Range
		if !r.IsRequestRoom() {
			building.RoomIDs = append(building.RoomIDs, r.ID)
		}
	}
	if r.Schedule == nil {
		r.Schedule = models.NewRoomSchedule(r.ID)
	}
	s.rooms[r.ID] = r
	s.roomOrder = append(s.roomOrder, r.ID)
	s.bump()
	return nil
}

// Room returns the room by id, or nil.
func (s *Store) Room(id string) *models.Room {
	return s.rooms[id]
}

// Rooms returns rooms in registration order.
func (s *Store) Rooms() []*models.Room {
	result := make([]*models.Room, 0, len(s.roomOrder))
	for _, id := range s.roomOrder {
		result = append(result, s.rooms[id])
	}
	return result
}

// RoomsOf returns the building's physical rooms in attachment order.
func (s *Store) RoomsOf(b *models.Building) []*models.Room {
	result := make([]*models.Room, 0, len(b.RoomIDs))
	for _, id := range b.RoomIDs {
		if r := s.rooms[id]; r != nil {
			result = append(result, r)
		}
	}
	return result
}

// RemoveRoom deletes a room, detaching its blocks and clearing their
// room back-references. Blocks remain on their tutor schedules.
func (s *Store) RemoveRoom(id string) error {
	room, ok := s.rooms[id]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %s not found", id))
	}
	for _, b := range room.Schedule.AllBlocks() {
		room.Schedule.RemoveTime(b)
	}
	if room.BuildingID != "" {
		if building := s.buildings[room.BuildingID]; building != nil {
			building.RoomIDs = removeID(building.RoomIDs, id)
			if building.RequestRoomID == id {
				building.RequestRoomID = ""
			}
		}
	}
	delete(s.rooms, id)
	s.roomOrder = removeID(s.roomOrder, id)
	s.bump()
	return nil
}

// EnsureRequestRoom returns the building's request room, creating the
// pseudo-room on first use.
func (s *Store) EnsureRequestRoom(buildingID string) (*models.Room, error) {
	building, ok := s.buildings[buildingID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("building %s not found", buildingID))
	}
	if building.RequestRoomID != "" {
		if room := s.rooms[building.RequestRoomID]; room != nil {
			return room, nil
		}
	}
	room := models.NewRoom(uuid.NewString(), building.Name+" Requests", models.RoomTypeRequest, building.Range)
	room.BuildingID = buildingID
	if err := s.AddRoom(room); err != nil {
		return nil, err
	}
	building.RequestRoomID = room.ID
	return room, nil
}

func (s *Store) detachFromRoom(b *models.TimeBlock) {
	if b.RoomID == "" {
		return
	}
	if room := s.rooms[b.RoomID]; room != nil {
		room.Schedule.RemoveTime(b)
	}
}

func removeID(ids []string, id string) []string {
	for i, cur := range ids {
		if cur == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
