// internal/models/gathering.go
// Domain models representing core business entities

package models

import "time"

// AttributeCount is the fixed width of a gathering's opaque attribute array
const AttributeCount = 20

// Gathering represents a matchmake session
type Gathering struct {
	GID             uint32    `bson:"gid" json:"gid"`
	OwnerPID        uint32    `bson:"owner_pid" json:"owner_pid"`
	HostPID         uint32    `bson:"host_pid" json:"host_pid"`
	Attributes      [AttributeCount]uint32 `bson:"attributes" json:"attributes"`
	Players         []uint32  `bson:"players" json:"players"`
	MinParticipants int       `bson:"min_participants" json:"min_participants"`
	MaxParticipants int       `bson:"max_participants" json:"max_participants"`
	GameMode        uint32    `bson:"game_mode" json:"game_mode"`
	ApplicationData []byte    `bson:"application_data" json:"application_data"`
	SessionKey      []byte    `bson:"session_key" json:"session_key"`
	JoinMessage     string    `bson:"join_message" json:"join_message"`
	FriendsOnly     bool      `bson:"friends_only" json:"friends_only"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// GatheringTemplate is the caller-supplied shape for Create
type GatheringTemplate struct {
	Attributes      [AttributeCount]uint32
	MinParticipants int
	MaxParticipants int
	GameMode        uint32
	ApplicationData []byte
	JoinMessage     string
	// FriendsOnly mirrors attributes slot semantics used by the admission
	// check in Join; kept as its own field so the engine doesn't need to
	// know which slot encodes visibility beyond this one read.
	FriendsOnly bool
}

// Slot indices with fixed meaning, per the data model
const (
	AttrSlotTournamentID = 0
	AttrSlotRegion       = 3
	AttrSlotDLCFlag      = 4
)

// IsFull reports whether the gathering has reached max_participants
func (g *Gathering) IsFull() bool {
	return len(g.Players) >= g.MaxParticipants
}

// HasPlayer reports whether pid currently occupies a seat
func (g *Gathering) HasPlayer(pid uint32) bool {
	for _, p := range g.Players {
		if p == pid {
			return true
		}
	}
	return false
}
