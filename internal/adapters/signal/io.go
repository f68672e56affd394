package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/app"
)

func (ctl *Controller) writePump(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
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

func (ctl *Controller) readPump(ctx context.Context, c *wsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", c.id).Msg("readPump closing")
		ctl.handleDisconnect(ctx, c.id)
		c.Close()
	}()

	c.conn.SetReadLimit(ctl.ReadLimit)
	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Error().Err(err).Str("module", "signal").Str("conn", c.id).Msg("readPump read error")
				}
				return
			}
			ctl.handleEvent(ctx, c, data)
		}
	}
}

func (ctl *Controller) handleEvent(ctx context.Context, c app.Conn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		ctl.sendError(c, "malformed event")
		return
	}

	switch env.Type {
	case "join-room":
		ctl.handleJoin(ctx, c, data)
	case "offer", "answer", "ice-candidate":
		ctl.handleRelay(c, env.Type, data)
	case "toggle-audio":
		ctl.handleToggleAudio(ctx, c, data)
	case "toggle-video":
		ctl.handleToggleVideo(ctx, c, data)
	case "toggle-screen-share":
		ctl.handleToggleScreenShare(ctx, c, data)
	case "kick-participant":
		ctl.handleKick(ctx, c, data)
	case "chat-message":
		ctl.handleChat(ctx, c, data)
	case "leave-room":
		ctl.handleLeave(ctx, c)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown event")
		ctl.sendError(c, "unknown event type")
	}
}

func (ctl *Controller) sendJSON(c app.Conn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	if err := c.TrySend(b); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", c.ID()).Msg("send failed")
	}
}

// sendError goes to the originating connection only; it never aborts the
// connection or touches other participants.
func (ctl *Controller) sendError(c app.Conn, msg string) {
	ctl.sendJSON(c, errorEvent{Type: app.EventError, Message: msg})
}

type errorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
