// Package signal is the event-plane adapter: it owns the WebSocket
// connections, dispatches inbound events to the coordinator, relays
// peer-to-peer signaling verbatim, and fans room events out through the
// connection registry.
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

	"github.com/HarshitBamotra/StreamSync-Backend/internal/app"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/ident"
)

var ErrBackpressure = errors.New("backpressure")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Controller drives the relay for all connections.
type Controller struct {
	Coord    *app.Coordinator
	Registry *app.Registry
	IDs      ident.Source
	Events   app.EventSink

	ReadLimit  int64
	PingPeriod time.Duration
	SendBuffer int
}

func NewController(coord *app.Coordinator, reg *app.Registry, ids ident.Source) *Controller {
	return &Controller{
		Coord:      coord,
		Registry:   reg,
		IDs:        ids,
		Events:     NewRegistrySink(reg),
		ReadLimit:  32768,
		PingPeriod: 54 * time.Second,
		SendBuffer: 32,
	}
}

// wsConn implements app.Conn over a gorilla connection. Sends go through a
// buffered channel so a slow peer never stalls a room broadcast.
type wsConn struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) ID() string { return c.id }

func (c *wsConn) TrySend(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- data:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
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

// HandleSignal upgrades the request, registers the connection under a
// fresh connection id, and runs the pumps until disconnect.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	connID := ctl.IDs.NewID()
	conn := &wsConn{
		id:   connID,
		conn: ws,
		send: make(chan []byte, ctl.SendBuffer),
	}
	ctl.Registry.Register(conn)
	log.Info().Str("module", "signal").Str("conn", connID).Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go func() {
		defer cancel()
		ctl.readPump(ctx, conn)
	}()
}
