package signal

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/app"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
)

// Status toggles: forward the patch to the coordinator, which applies it
// and broadcasts the new value to the rest of the room while still holding
// the room lock. A connection with no room binding is a silent no-op.

func (ctl *Controller) handleToggleAudio(ctx context.Context, c app.Conn, data []byte) {
	var p struct {
		IsAudioMuted bool `json:"isAudioMuted"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "malformed event")
		return
	}
	ctl.applyToggle(ctx, c, domain.StatusPatch{IsAudioMuted: &p.IsAudioMuted})
}

func (ctl *Controller) handleToggleVideo(ctx context.Context, c app.Conn, data []byte) {
	var p struct {
		IsVideoEnabled bool `json:"isVideoEnabled"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "malformed event")
		return
	}
	ctl.applyToggle(ctx, c, domain.StatusPatch{IsVideoEnabled: &p.IsVideoEnabled})
}

func (ctl *Controller) handleToggleScreenShare(ctx context.Context, c app.Conn, data []byte) {
	var p struct {
		IsScreenSharing bool `json:"isScreenSharing"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "malformed event")
		return
	}
	ctl.applyToggle(ctx, c, domain.StatusPatch{IsScreenSharing: &p.IsScreenSharing})
}

func (ctl *Controller) applyToggle(ctx context.Context, c app.Conn, patch domain.StatusPatch) {
	binding, ok := ctl.Registry.BindingOf(c.ID())
	if !ok {
		log.Debug().Str("module", "signal").Str("conn", c.ID()).Msg("toggle with no binding")
		return
	}
	if _, err := ctl.Coord.UpdateParticipantStatus(ctx, binding.RoomID, binding.UserID, patch); err != nil {
		ctl.sendError(c, eventErrMessage(err))
	}
}
