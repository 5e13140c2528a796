package core

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/karunchanna/SplatsExperiment/internal/domain"
)

// Registry is the process-wide room table. Rooms are created explicitly
// over HTTP before any socket references them and reclaimed asynchronously
// once they have stayed empty for the grace window.
type Registry struct {
	reclaimDelay time.Duration

	mu    sync.RWMutex
	rooms map[domain.RoomID]*Room
}

func NewRegistry(reclaimDelay time.Duration) *Registry {
	return &Registry{
		reclaimDelay: reclaimDelay,
		rooms:        make(map[domain.RoomID]*Room),
	}
}

// Create inserts a fresh empty room under a new unique short id.
func (reg *Registry) Create() *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var id domain.RoomID
	for {
		id = domain.RoomID(domain.NewShortID())
		if _, taken := reg.rooms[id]; !taken {
			break
		}
	}
	room := NewRoom(&domain.Room{ID: id})
	reg.rooms[id] = room
	log.Info().Str("module", "core.registry").Str("room", string(id)).Msg("room created")
	return room
}

// Admit looks the room up and admits the player while still holding the
// registry lock. The reclaim timer takes the write lock, so it can never
// delete a room between an admission's lookup and its join: the timer
// either runs first (the lookup fails here) or runs after and sees the
// player it must spare.
func (reg *Registry) Admit(id domain.RoomID, conn Conn, requestedName string) (*Room, *domain.Player, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	room, ok := reg.rooms[id]
	if !ok {
		return nil, nil, false
	}
	return room, room.Join(conn, requestedName), true
}

func (reg *Registry) Get(id domain.RoomID) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[id]
	return room, ok
}

func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// ScheduleReclaim starts the deferred empty-room check. The timer re-reads
// the live player count at fire time, so a join during the grace window
// keeps the room alive and overlapping timers are harmless no-ops.
func (reg *Registry) ScheduleReclaim(id domain.RoomID) {
	time.AfterFunc(reg.reclaimDelay, func() {
		reg.mu.Lock()
		defer reg.mu.Unlock()

		room, ok := reg.rooms[id]
		if !ok || room.PlayerCount() > 0 {
			return
		}
		delete(reg.rooms, id)
		log.Info().Str("module", "core.registry").Str("room", string(id)).Msg("reclaimed empty room")
	})
}
