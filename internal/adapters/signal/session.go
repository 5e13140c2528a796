package signal

import (
	"github.com/karunchanna/SplatsExperiment/internal/core"
	"github.com/karunchanna/SplatsExperiment/internal/domain"
)

type sessionState int

const (
	stateUnjoined sessionState = iota
	stateJoined
	stateClosed
)

// session is the per-connection protocol state. It moves
// unjoined → joined → closed and never back. Only the connection's own
// read loop touches it, so no lock is needed.
type session struct {
	conn   *WsConn
	state  sessionState
	player *domain.Player
	room   *core.Room
}

func newSession(conn *WsConn) *session {
	return &session{conn: conn, state: stateUnjoined}
}
