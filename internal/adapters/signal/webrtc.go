package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/app"
)

// relayedSignal is what the target receives: the payload untouched, the
// sender's connection id attached so the peer can reply.
type relayedSignal struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	Sender  string          `json:"sender"`
}

// handleRelay forwards offer/answer/ice-candidate to the named target
// connection only. The payload is an opaque pass-through: session
// descriptions and connectivity candidates are never interpreted here.
func (ctl *Controller) handleRelay(c app.Conn, eventType string, data []byte) {
	var p struct {
		Target  string          `json:"target"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "malformed event")
		return
	}
	target, ok := ctl.Registry.Get(p.Target)
	if !ok {
		log.Warn().Str("module", "signal").Str("type", eventType).Str("target", p.Target).Msg("relay target gone")
		ctl.sendError(c, "target connection not found")
		return
	}
	ctl.sendJSON(target, relayedSignal{
		Type:    eventType,
		Payload: p.Payload,
		Sender:  c.ID(),
	})
}
