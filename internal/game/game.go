// Package game implements the room/player session core: the room
// registry, the per-room state machine, pick validation and scoring.
// It is transport-free and lock-free on purpose — the hub drives it
// from a single goroutine, so a transition always runs to completion
// before the next command is applied.
package game

// Status is the room lifecycle phase.
//
//	waiting → playing → ended
//
// There is no "closed" status: closing a room means removing it from
// the Registry, after which its code resolves to nothing.
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
	StatusEnded   Status = "ended"
)

// Settings configures one round. Immutable once the room leaves waiting.
type Settings struct {
	Product      string `json:"product"`
	Year         string `json:"year"`
	NumCountries int    `json:"numCountries"`
}

// Player is one joined connection. A player belongs to exactly one room
// and does not outlive it.
type Player struct {
	ConnID       string
	Name         string
	Selected     []string // pick order preserved
	Score        float64
	SharePercent float64
}

// Room is one game session. The manager connection that created it is
// the sole authority over settings and lifecycle transitions and is not
// itself a player unless it joins.
type Room struct {
	Code      string
	ManagerID string
	Settings  *Settings
	Status    Status

	players map[string]*Player
	order   []string            // join order, meaningful for tie-breaks
	used    map[string]struct{} // countries reserved room-wide
}

func newRoom(code, managerID string) *Room {
	return &Room{
		Code:      code,
		ManagerID: managerID,
		Status:    StatusWaiting,
		players:   make(map[string]*Player),
		used:      make(map[string]struct{}),
	}
}

// Player returns the player for a connection, or nil.
func (r *Room) Player(connID string) *Player {
	return r.players[connID]
}

// Players returns the roster in join order.
func (r *Room) Players() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Reserved reports whether a country is reserved in this room.
func (r *Room) Reserved(country string) bool {
	_, ok := r.used[country]
	return ok
}

// ReservedCount is the number of countries reserved room-wide.
func (r *Room) ReservedCount() int { return len(r.used) }

// IsManager reports whether connID created this room.
func (r *Room) IsManager(connID string) bool { return connID == r.ManagerID }
