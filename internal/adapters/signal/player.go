package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/karunchanna/SplatsExperiment/internal/protocol"
)

func (ctl *RelayController) handleMove(sess *session, data []byte) {
	var p protocol.MovePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad move payload, frame dropped")
		return
	}
	sess.room.Move(sess.player.ID, p.Position, p.Rotation)
}

func (ctl *RelayController) handleChat(sess *session, data []byte) {
	var p protocol.ChatPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad chat payload, frame dropped")
		return
	}
	sess.room.Chat(sess.player.ID, p.Message)
}
