// Package signal is the websocket adapter of the relay: it owns the
// per-connection protocol state machine and the transport endpoints the
// rooms fan out to.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/karunchanna/SplatsExperiment/internal/config"
	"github.com/karunchanna/SplatsExperiment/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

const defaultPingPeriod = 54 * time.Second

type RelayController struct {
	Cfg      *config.Config
	Registry *core.Registry
}

func NewRelayController(cfg *config.Config, reg *core.Registry) *RelayController {
	// A zero ping period would panic the write pump's ticker.
	if cfg.PingPeriod <= 0 {
		cfg.PingPeriod = defaultPingPeriod
	}
	return &RelayController{
		Cfg:      cfg,
		Registry: reg,
	}
}

type WsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *RelayController) HandleRelay(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	log.Info().Str("module", "signal").Str("remote", ws.RemoteAddr().String()).Msg("new WS connection")

	conn := &WsConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}
	sess := newSession(conn)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sess)
}
