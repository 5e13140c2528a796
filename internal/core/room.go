package core

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/karunchanna/SplatsExperiment/internal/domain"
	"github.com/karunchanna/SplatsExperiment/internal/protocol"
)

// session binds a player's meta to its transport endpoint.
type session struct {
	player *domain.Player
	conn   Conn
}

// Room is a threadsafe in-memory room. Each operation mutates membership
// and fans out its notifications under one lock, so every player observes
// room events in the same order. Room never closes adapter-owned
// connections.
type Room struct {
	meta *domain.Room

	mu       sync.Mutex
	players  map[domain.PlayerID]*session
	admitted int
}

func NewRoom(meta *domain.Room) *Room {
	return &Room{
		meta:    meta,
		players: make(map[domain.PlayerID]*session),
	}
}

func (r *Room) ID() domain.RoomID { return r.meta.ID }

// Join admits a new player: fresh id, color by admission count, host iff the
// room was empty, spawn transform. The joiner receives the joined reply with
// a snapshot of everyone else; the rest receive participant_joined. The lock
// covers the empty-room host check through the fan-out, so two concurrent
// joins cannot both observe an empty room.
func (r *Room) Join(conn Conn, requestedName string) *domain.Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Color cycles over lifetime admissions, so departures never shift the
	// colors of later joiners.
	p := domain.NewPlayer(requestedName, r.admitted)
	r.admitted++
	if len(r.players) == 0 {
		r.meta.HostID = p.ID
	}

	others := make([]protocol.PlayerSnapshot, 0, len(r.players))
	for _, s := range r.players {
		others = append(others, protocol.Snapshot(s.player))
	}
	r.players[p.ID] = &session{player: p, conn: conn}

	r.sendLocked(conn, protocol.Joined{
		Type:     protocol.TypeJoined,
		PlayerID: p.ID,
		Color:    p.Color,
		IsHost:   r.meta.HostID == p.ID,
		SceneURL: r.meta.SceneURL,
		SceneID:  r.meta.SceneID,
		Players:  others,
	})
	r.broadcastLocked(p.ID, protocol.PlayerJoined{
		Type:   protocol.TypePlayerJoined,
		Player: protocol.Snapshot(p),
	})

	log.Info().Str("module", "core.room").Str("room", string(r.meta.ID)).
		Str("player", string(p.ID)).Str("name", p.Name).Bool("host", r.meta.HostID == p.ID).
		Msg("player joined")
	return p
}

// Move overwrites the player's transform and notifies everyone else.
// No-ops silently when the player is already gone.
func (r *Room) Move(id domain.PlayerID, position, rotation domain.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.players[id]
	if !ok {
		return
	}
	s.player.Position = position
	s.player.Rotation = rotation

	r.broadcastLocked(id, protocol.PlayerMoved{
		Type:     protocol.TypePlayerMoved,
		PlayerID: id,
		Position: position,
		Rotation: rotation,
	})
}

// SetScene overwrites the shared scene and notifies everyone, sender
// included. Any player may set it.
func (r *Room) SetScene(sceneURL, sceneID *string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.meta.SceneURL = sceneURL
	r.meta.SceneID = sceneID

	r.broadcastLocked("", protocol.SceneLoaded{
		Type:     protocol.TypeSceneLoaded,
		SceneURL: sceneURL,
		SceneID:  sceneID,
	})
	log.Info().Str("module", "core.room").Str("room", string(r.meta.ID)).Msg("scene updated")
}

// Chat relays the message verbatim to everyone, sender included.
func (r *Room) Chat(id domain.PlayerID, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.players[id]
	if !ok {
		return
	}
	r.broadcastLocked("", protocol.Chat{
		Type:     protocol.TypeChat,
		PlayerID: id,
		Name:     s.player.Name,
		Color:    s.player.Color,
		Message:  message,
	})
}

// Leave removes the player, tells the remaining players, and reports
// whether the room is now empty. The host id is left as-is: the host is
// never re-elected after a disconnect.
func (r *Room) Leave(id domain.PlayerID) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return len(r.players) == 0
	}
	delete(r.players, id)

	r.broadcastLocked("", protocol.PlayerLeft{
		Type:     protocol.TypePlayerLeft,
		PlayerID: id,
	})
	log.Info().Str("module", "core.room").Str("room", string(r.meta.ID)).
		Str("player", string(id)).Msg("player left")
	return len(r.players) == 0
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

func (r *Room) HostID() domain.PlayerID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.meta.HostID
}

// Scene returns the current shared scene url/id, either may be nil.
func (r *Room) Scene() (sceneURL, sceneID *string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.meta.SceneURL, r.meta.SceneID
}

// broadcastLocked serializes once and fans out best-effort: a recipient
// whose connection is closing or backed up is skipped, never retried, and
// never aborts delivery to the rest.
func (r *Room) broadcastLocked(exclude domain.PlayerID, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "core.room").Msg("broadcast marshal")
		return
	}
	sent, dropped := 0, 0
	for id, s := range r.players {
		if exclude != "" && id == exclude {
			continue
		}
		if err := s.conn.TrySend(data); err != nil {
			dropped++
			continue
		}
		sent++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.meta.ID)).
		Int("sent", sent).Int("dropped", dropped).Msg("broadcast result")
}

func (r *Room) sendLocked(conn Conn, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "core.room").Msg("send marshal")
		return
	}
	_ = conn.TrySend(data)
}
