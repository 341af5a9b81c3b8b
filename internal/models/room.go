package models

// RoomType classifies what kinds of sessions a room can host. Position
// policies list the types their sessions are eligible for.
type RoomType string

const (
	RoomTypeSmallGroup RoomType = "SMALL_GROUP"
	RoomTypeLargeGroup RoomType = "LARGE_GROUP"
	RoomTypeSI         RoomType = "SI"
	RoomTypeConference RoomType = "CONFERENCE"
	RoomTypeRequest    RoomType = "REQUEST"
)

// ValidRoomType reports whether the type belongs to the known vocabulary.
func ValidRoomType(t RoomType) bool {
	switch t {
	case RoomTypeSmallGroup, RoomTypeLargeGroup, RoomTypeSI, RoomTypeConference, RoomTypeRequest:
		return true
	}
	return false
}

// Room is a bookable space with its own weekly schedule. Rooms attached
// to a building inherit its open range; standalone rooms carry their own.
type Room struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	BuildingID string        `json:"buildingId,omitempty"`
	Type       RoomType      `json:"type"`
	Range      OpenRange     `json:"range"`
	Schedule   *RoomSchedule `json:"-"`
}

// NewRoom constructs a room with an empty schedule.
func NewRoom(id, name string, roomType RoomType, open OpenRange) *Room {
	return &Room{
		ID:       id,
		Name:     name,
		Type:     roomType,
		Range:    open,
		Schedule: NewRoomSchedule(id),
	}
}

// IsRequestRoom reports whether the room is a manual-booking pseudo-room.
func (r *Room) IsRequestRoom() bool {
	return r.Type == RoomTypeRequest
}
