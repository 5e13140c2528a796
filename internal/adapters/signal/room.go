package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/karunchanna/SplatsExperiment/internal/domain"
	"github.com/karunchanna/SplatsExperiment/internal/protocol"
)

func (ctl *RelayController) handleJoin(sess *session, data []byte) {
	var p protocol.JoinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad join payload, frame dropped")
		return
	}

	// Admission goes through the registry so a pending reclaim timer can
	// never delete the room between lookup and join.
	room, player, ok := ctl.Registry.Admit(domain.RoomID(p.RoomID), sess.conn, p.Name)
	if !ok {
		log.Info().Str("module", "signal").Str("room", p.RoomID).Msg("join to unknown room")
		ctl.sendJSON(sess.conn, protocol.Error{
			Type:    protocol.TypeError,
			Message: "Room not found",
		})
		return
	}

	sess.player = player
	sess.room = room
	sess.state = stateJoined
}

func (ctl *RelayController) handleSetScene(sess *session, data []byte) {
	var p protocol.SetScenePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad set_scene payload, frame dropped")
		return
	}
	sess.room.SetScene(p.SceneURL, p.SceneID)
}
