// Package domain contains entity without logic, just meta-data
package domain

import "github.com/google/uuid"

type PlayerID string

// Vec3 is a position or rotation triple as it travels on the wire.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

const DefaultPlayerName = "Explorer"

// PlayerColors is the fixed palette cycled through at join time.
// The Nth admission gets PlayerColors[N % len(PlayerColors)].
var PlayerColors = []string{
	"#ff6b6b", "#4ecdc4", "#45b7d1", "#96ceb4",
	"#ffeaa7", "#dfe6e9", "#fd79a8", "#a29bfe",
}

// SpawnPosition is where every player starts; rotation starts zeroed.
var SpawnPosition = Vec3{X: 0, Y: 0.5, Z: 2}

type Player struct {
	ID       PlayerID
	Name     string
	Position Vec3
	Rotation Vec3
	Color    string
}

// NewPlayer avoids raw literals in adapters and keeps construction obvious.
// joinIndex is the room's lifetime admission count at admission time.
func NewPlayer(name string, joinIndex int) *Player {
	if name == "" {
		name = DefaultPlayerName
	}
	return &Player{
		ID:       PlayerID(NewShortID()),
		Name:     name,
		Position: SpawnPosition,
		Color:    PlayerColors[joinIndex%len(PlayerColors)],
	}
}

// NewShortID returns the 8-char identifier form shared by rooms and players.
func NewShortID() string {
	return uuid.NewString()[:8]
}
