package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/app"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
)

// RegistrySink implements app.EventSink over the connection registry.
// Delivery is per-connection best effort: a full buffer or dead connection
// is logged and never aborts delivery to the rest of the room.
type RegistrySink struct {
	Registry *app.Registry
}

func NewRegistrySink(reg *app.Registry) *RegistrySink {
	return &RegistrySink{Registry: reg}
}

func (s *RegistrySink) ToRoom(roomID domain.RoomID, v any, exclude ...string) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal.sink").Msg("marshal broadcast")
		return
	}
	for _, conn := range s.Registry.RoomConns(roomID, exclude...) {
		if err := conn.TrySend(b); err != nil {
			log.Warn().Err(err).Str("module", "signal.sink").Str("conn", conn.ID()).Str("room", string(roomID)).Msg("broadcast delivery failed")
		}
	}
}

func (s *RegistrySink) ToConn(connID string, v any) {
	conn, ok := s.Registry.Get(connID)
	if !ok {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal.sink").Msg("marshal event")
		return
	}
	if err := conn.TrySend(b); err != nil {
		log.Warn().Err(err).Str("module", "signal.sink").Str("conn", connID).Msg("event delivery failed")
	}
}
