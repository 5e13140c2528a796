// Package protocol defines the JSON envelopes exchanged over the relay
// socket. Every frame is one UTF-8 text message with a "type" discriminator.
package protocol

import "github.com/karunchanna/SplatsExperiment/internal/domain"

const (
	// client → relay
	TypeJoin     = "join"
	TypeMove     = "move"
	TypeSetScene = "set_scene"

	// relay → client
	TypeJoined       = "joined"
	TypePlayerJoined = "participant_joined"
	TypePlayerMoved  = "participant_moved"
	TypePlayerLeft   = "participant_left"
	TypeSceneLoaded  = "scene_loaded"
	TypeError        = "error"

	// both directions
	TypeChat = "chat"
)

// Envelope sniffs only the discriminator; handlers re-parse the full frame.
type Envelope struct {
	Type string `json:"type"`
}

type JoinPayload struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

type MovePayload struct {
	Position domain.Vec3 `json:"position"`
	Rotation domain.Vec3 `json:"rotation"`
}

type SetScenePayload struct {
	SceneURL *string `json:"sceneUrl"`
	SceneID  *string `json:"sceneId"`
}

type ChatPayload struct {
	Message string `json:"message"`
}

// PlayerSnapshot is the transport-free view of a player sent to peers.
type PlayerSnapshot struct {
	ID       domain.PlayerID `json:"id"`
	Name     string          `json:"name"`
	Position domain.Vec3     `json:"position"`
	Rotation domain.Vec3     `json:"rotation"`
	Color    string          `json:"color"`
}

// Snapshot avoids ad-hoc struct literals at every send site.
func Snapshot(p *domain.Player) PlayerSnapshot {
	return PlayerSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		Position: p.Position,
		Rotation: p.Rotation,
		Color:    p.Color,
	}
}

// Joined is the reply to the joining connection itself.
type Joined struct {
	Type     string           `json:"type"`
	PlayerID domain.PlayerID  `json:"playerId"`
	Color    string           `json:"color"`
	IsHost   bool             `json:"isHost"`
	SceneURL *string          `json:"sceneUrl"`
	SceneID  *string          `json:"sceneId"`
	Players  []PlayerSnapshot `json:"players"`
}

type PlayerJoined struct {
	Type   string         `json:"type"`
	Player PlayerSnapshot `json:"player"`
}

type PlayerMoved struct {
	Type     string          `json:"type"`
	PlayerID domain.PlayerID `json:"playerId"`
	Position domain.Vec3     `json:"position"`
	Rotation domain.Vec3     `json:"rotation"`
}

type PlayerLeft struct {
	Type     string          `json:"type"`
	PlayerID domain.PlayerID `json:"playerId"`
}

type SceneLoaded struct {
	Type     string  `json:"type"`
	SceneURL *string `json:"sceneUrl"`
	SceneID  *string `json:"sceneId"`
}

type Chat struct {
	Type     string          `json:"type"`
	PlayerID domain.PlayerID `json:"playerId"`
	Name     string          `json:"name"`
	Color    string          `json:"color"`
	Message  string          `json:"message"`
}

type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
