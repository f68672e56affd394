package signal

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/app"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
)

// eventErrMessage maps a coordinator error to an error-event message.
// Taxonomy errors carry safe, user-facing text; everything else stays
// internal.
func eventErrMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		return "room not found"
	case errors.Is(err, domain.ErrParticipantNotFound):
		return "participant not found"
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrInvalidInput):
		return err.Error()
	default:
		return "internal error"
	}
}

type rosterEvent struct {
	Type         string               `json:"type"`
	Participants []domain.Participant `json:"participants"`
}

type leftEvent struct {
	Type string `json:"type"`
}

// handleJoin binds the connection to its (room, participant) pair. The
// registry binding happens first so the connection is part of the room's
// subscriber set from the moment the coordinator announces it; on
// coordinator failure the binding rolls back.
func (ctl *Controller) handleJoin(ctx context.Context, c app.Conn, data []byte) {
	var p struct {
		RoomID string `json:"roomId"`
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "malformed event")
		return
	}
	roomID, userID := domain.RoomID(p.RoomID), domain.UserID(p.UserID)

	if !ctl.Registry.Bind(c.ID(), roomID, userID) {
		ctl.sendError(c, "already in a room")
		return
	}
	room, err := ctl.Coord.Bind(ctx, roomID, userID, c.ID())
	if err != nil {
		ctl.Registry.Unbind(c.ID())
		ctl.sendError(c, eventErrMessage(err))
		return
	}

	// Roster order matches the room's participant (join) order.
	ctl.sendJSON(c, rosterEvent{
		Type:         app.EventRoomParticipants,
		Participants: room.Participants,
	})
}

// handleLeave is the explicit leave path; disconnects funnel into the same
// procedure through handleDisconnect.
func (ctl *Controller) handleLeave(ctx context.Context, c app.Conn) {
	binding, ok := ctl.Registry.Unbind(c.ID())
	if !ok {
		log.Debug().Str("module", "signal").Str("conn", c.ID()).Msg("leave with no binding")
		return
	}
	ctl.leave(ctx, binding)
	ctl.sendJSON(c, leftEvent{Type: "left"})
}

// handleDisconnect always drops the registry entry, even when the room is
// stale or already gone.
func (ctl *Controller) handleDisconnect(ctx context.Context, connID string) {
	binding, hadBinding := ctl.Registry.Drop(connID)
	if hadBinding {
		ctl.leave(ctx, binding)
	}
}

func (ctl *Controller) leave(ctx context.Context, binding app.Binding) {
	_, err := ctl.Coord.Leave(ctx, binding.RoomID, binding.UserID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrRoomNotFound), errors.Is(err, domain.ErrParticipantNotFound):
		// Already removed by an earlier leave, kick, or room teardown.
	default:
		log.Error().Err(err).Str("module", "signal").Str("room", string(binding.RoomID)).Msg("leave failed")
	}
}

type kickSuccessEvent struct {
	Type            string        `json:"type"`
	UserID          domain.UserID `json:"userId"`
	ParticipantName string        `json:"participantName"`
}

// handleKick is host-only; the host check itself lives in the coordinator.
func (ctl *Controller) handleKick(ctx context.Context, c app.Conn, data []byte) {
	binding, ok := ctl.Registry.BindingOf(c.ID())
	if !ok {
		ctl.sendError(c, "not in a room")
		return
	}
	var p struct {
		UserID string `json:"userId"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "malformed event")
		return
	}

	removed, err := ctl.Coord.Kick(ctx, binding.RoomID, binding.UserID, domain.UserID(p.UserID), p.Reason)
	if err != nil {
		ctl.sendError(c, eventErrMessage(err))
		return
	}

	// The target got its terminal kicked event from the coordinator;
	// forcibly unbind its connection so nothing else reaches it.
	if removed.ConnectionID != "" {
		ctl.Registry.Unbind(removed.ConnectionID)
	}
	ctl.sendJSON(c, kickSuccessEvent{
		Type:            app.EventKickSuccess,
		UserID:          removed.ID,
		ParticipantName: removed.Name,
	})
}
