package models

// Well-known position ids with special scheduling behaviour.
const (
	PositionSI      = "si"
	PositionWriting = "writing"
)

// Position is a tutoring role: how many sessions each of its courses
// may receive per run, how many automatic placements a tutor gets before
// overflowing to registrar requests, and which room types its sessions
// may occupy. A position-specific strategy can be registered on the
// scheduler; the default heuristic applies otherwise.
type Position struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	SessionLimit int        `json:"sessionLimit"`
	RequestLimit int        `json:"requestLimit"`
	RoomTypes    []RoomType `json:"roomTypes"`
}

// AllowsRoom reports whether the room type is eligible for this position.
func (p *Position) AllowsRoom(t RoomType) bool {
	for _, rt := range p.RoomTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// SessionCounts accumulates per-course placement totals during one
// scheduling run.
type SessionCounts struct {
	PositionID string `json:"positionId"`
	Count      int    `json:"count"`
	Requests   int    `json:"requests"`
}

// ScheduledState is the per-attempt outcome of placing one session.
type ScheduledState string

const (
	StateNoSession      ScheduledState = "NO_SESSION"
	StateRequest        ScheduledState = "REQUEST"
	StateScheduled      ScheduledState = "SCHEDULED"
	StateTutorScheduled ScheduledState = "TUTOR_SCHEDULED"
)
