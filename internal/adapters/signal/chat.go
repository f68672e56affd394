package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/app"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
)

type chatMessageEvent struct {
	Type      string        `json:"type"`
	ID        string        `json:"id"`
	UserID    domain.UserID `json:"userId"`
	UserName  string        `json:"userName"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
}

// handleChat stamps the message with a generated id and timestamp and
// broadcasts it. The sender is excluded from the target set: its client
// already has the local echo.
func (ctl *Controller) handleChat(ctx context.Context, c app.Conn, data []byte) {
	binding, ok := ctl.Registry.BindingOf(c.ID())
	if !ok {
		log.Debug().Str("module", "signal").Str("conn", c.ID()).Msg("chat with no binding")
		return
	}
	var p struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "malformed event")
		return
	}

	room, err := ctl.Coord.GetRoomInfo(ctx, binding.RoomID)
	if err != nil {
		ctl.sendError(c, eventErrMessage(err))
		return
	}
	sender := room.Participant(binding.UserID)
	if sender == nil {
		ctl.sendError(c, "participant not found")
		return
	}

	ctl.Events.ToRoom(binding.RoomID, chatMessageEvent{
		Type:      app.EventChatMessage,
		ID:        ctl.IDs.NewID(),
		UserID:    sender.ID,
		UserName:  sender.Name,
		Message:   p.Message,
		Timestamp: time.Now().UTC(),
	}, c.ID())
}
