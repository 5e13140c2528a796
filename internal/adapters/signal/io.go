package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/karunchanna/SplatsExperiment/internal/protocol"
)

func (ctl *RelayController) writePump(ctx context.Context, c *WsConn) {
	ticker := time.NewTicker(ctl.Cfg.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (ctl *RelayController) readPump(ctx context.Context, cancel context.CancelFunc, sess *session) {
	defer func() {
		log.Info().Str("module", "signal").Msg("readPump closing")
		sess.conn.Close()
		cancel()
		ctl.finish(sess)
	}()

	pongWait := ctl.Cfg.PingPeriod * 10 / 9
	sess.conn.conn.SetReadLimit(ctl.Cfg.ReadLimit)
	_ = sess.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	sess.conn.conn.SetPongHandler(func(string) error {
		return sess.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("readPump ctx done")
			return
		default:
			_, data, err := sess.conn.conn.ReadMessage()
			if err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("readPump read error")
				return
			}
			ctl.handleFrame(sess, data)
		}
	}
}

// handleFrame validates message sequencing: before join only a join frame
// does anything, everything else is dropped without a reply. Unparseable
// frames are dropped the same way.
func (ctl *RelayController) handleFrame(sess *session, data []byte) {
	var env protocol.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad json, frame dropped")
		return
	}

	switch env.Type {
	case protocol.TypeJoin:
		if sess.state != stateUnjoined {
			return
		}
		ctl.handleJoin(sess, data)
	case protocol.TypeMove:
		if sess.state != stateJoined {
			return
		}
		ctl.handleMove(sess, data)
	case protocol.TypeSetScene:
		if sess.state != stateJoined {
			return
		}
		ctl.handleSetScene(sess, data)
	case protocol.TypeChat:
		if sess.state != stateJoined {
			return
		}
		ctl.handleChat(sess, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown frame type")
	}
}

// finish runs exactly once per connection, on any kind of disconnect.
// A session that never joined has nothing to clean up.
func (ctl *RelayController) finish(sess *session) {
	if sess.state != stateJoined {
		sess.state = stateClosed
		return
	}
	sess.state = stateClosed

	if empty := sess.room.Leave(sess.player.ID); empty {
		ctl.Registry.ScheduleReclaim(sess.room.ID())
	}
}

func (ctl *RelayController) sendJSON(c *WsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
