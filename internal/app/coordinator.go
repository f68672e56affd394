// Package app owns the room/participant state machine, the connection
// registry, and the idle-reaper policy.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/ident"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/store"
)

const closedByHostReason = "Host ended the meeting"

// Coordinator is the room state machine. Every mutating operation runs
// under the room's keyed lock, so mutations to one room are totally
// ordered while unrelated rooms proceed in parallel. Broadcasts are
// emitted through the sink before the lock is released, which pins the
// broadcast order to the mutation order; sink sends never block.
type Coordinator struct {
	store  store.Store
	ids    ident.Source
	events EventSink
	locks  *keyedMutex
}

func NewCoordinator(st store.Store, ids ident.Source, events EventSink) *Coordinator {
	if events == nil {
		events = NopSink{}
	}
	return &Coordinator{
		store:  st,
		ids:    ids,
		events: events,
		locks:  newKeyedMutex(),
	}
}

// LeaveOutcome reports what a leave/disconnect did, so the relay can ack
// and clean up its side.
type LeaveOutcome struct {
	Removed     domain.Participant
	NewHost     *domain.Participant
	Deactivated bool
}

// activeRoom loads the room and treats an inactive one as absent.
func (c *Coordinator) activeRoom(ctx context.Context, roomID domain.RoomID) (*domain.Room, error) {
	room, err := c.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, domain.ErrRoomNotFound
	}
	return room, nil
}

// CreateRoom allocates a room with its host as the sole participant and a
// matching user record.
func (c *Coordinator) CreateRoom(ctx context.Context, hostName string) (*domain.Room, error) {
	hostName = strings.TrimSpace(hostName)
	if hostName == "" {
		return nil, fmt.Errorf("%w: host name is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	roomID := domain.RoomID(c.ids.NewID())
	hostID := domain.UserID(c.ids.NewID())

	room := &domain.Room{
		ID:           roomID,
		HostID:       hostID,
		HostName:     hostName,
		Participants: []domain.Participant{domain.NewHostParticipant(hostID, hostName, now)},
		CreatedAt:    now,
		LastActivity: now,
		IsActive:     true,
	}
	if err := c.store.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	if err := c.store.SaveUser(ctx, domain.NewUser(hostID, hostName, roomID, now)); err != nil {
		return nil, err
	}

	log.Info().Str("module", "app.coordinator").Str("room", string(roomID)).Str("host", hostName).Msg("room created")
	return room, nil
}

// JoinRoom appends a non-host participant to an active room and creates
// the matching user record. Joining a missing or inactive room fails with
// ErrRoomNotFound and creates nothing.
func (c *Coordinator) JoinRoom(ctx context.Context, roomID domain.RoomID, userName string) (domain.UserID, *domain.Room, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return "", nil, fmt.Errorf("%w: user name is required", domain.ErrInvalidInput)
	}

	unlock := c.locks.lock(roomID)
	defer unlock()

	room, err := c.activeRoom(ctx, roomID)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	userID := domain.UserID(c.ids.NewID())
	room.Participants = append(room.Participants, domain.NewParticipant(userID, userName, now))
	room.LastActivity = now
	if err := c.store.SaveRoom(ctx, room); err != nil {
		return "", nil, err
	}
	if err := c.store.SaveUser(ctx, domain.NewUser(userID, userName, roomID, now)); err != nil {
		return "", nil, err
	}

	log.Info().Str("module", "app.coordinator").Str("room", string(roomID)).Str("user", userName).Msg("participant joined")
	return userID, room, nil
}

// GetRoomInfo returns the room regardless of its active flag: inspection
// is read-only and inactive rooms stay observable until the reaper takes
// them.
func (c *Coordinator) GetRoomInfo(ctx context.Context, roomID domain.RoomID) (*domain.Room, error) {
	return c.store.GetRoom(ctx, roomID)
}

// DeleteRoom deactivates the room (the first durable step), notifies every
// bound connection, then best-effort deletes the participants' user
// records. Cleanup failures are logged and left to the reaper; the room is
// never left flagged active after a partial failure.
func (c *Coordinator) DeleteRoom(ctx context.Context, roomID domain.RoomID, requesterID domain.UserID) error {
	unlock := c.locks.lock(roomID)
	defer unlock()

	room, err := c.store.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	requester := room.Participant(requesterID)
	if requester == nil || !requester.IsHost {
		return fmt.Errorf("%w: only host can delete room", domain.ErrForbidden)
	}

	room.IsActive = false
	room.LastActivity = time.Now()
	if err := c.store.SaveRoom(ctx, room); err != nil {
		return err
	}

	for _, p := range room.Participants {
		if p.ConnectionID != "" {
			c.events.ToConn(p.ConnectionID, RoomClosedEvent{
				Type:   EventRoomClosed,
				RoomID: roomID,
				Reason: closedByHostReason,
			})
		}
	}

	for _, p := range room.Participants {
		if err := c.store.DeleteUser(ctx, p.ID); err != nil {
			log.Warn().Err(err).Str("module", "app.coordinator").Str("user", string(p.ID)).Msg("user cleanup failed, reaper will retry")
		}
	}

	log.Info().Str("module", "app.coordinator").Str("room", string(roomID)).Msg("room deleted")
	return nil
}

// UpdateParticipantStatus applies a partial update to the participant's
// mutable flags and returns the updated participant. Structural fields are
// not patchable by construction (see domain.StatusPatch). Each patched
// media flag is broadcast to the rest of the room before the room lock is
// released, so a toggle can never be observed after a later mutation's
// events.
func (c *Coordinator) UpdateParticipantStatus(ctx context.Context, roomID domain.RoomID, userID domain.UserID, patch domain.StatusPatch) (*domain.Participant, error) {
	unlock := c.locks.lock(roomID)
	defer unlock()

	room, err := c.activeRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	p := room.Participant(userID)
	if p == nil {
		return nil, domain.ErrParticipantNotFound
	}
	p.ApplyStatus(patch)
	room.LastActivity = time.Now()
	if err := c.store.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	updated := *p

	if patch.IsAudioMuted != nil {
		c.events.ToRoom(roomID, AudioToggleEvent{
			Type:         EventAudioToggle,
			UserID:       updated.ID,
			IsAudioMuted: updated.IsAudioMuted,
		}, updated.ConnectionID)
	}
	if patch.IsVideoEnabled != nil {
		c.events.ToRoom(roomID, VideoToggleEvent{
			Type:           EventVideoToggle,
			UserID:         updated.ID,
			IsVideoEnabled: updated.IsVideoEnabled,
		}, updated.ConnectionID)
	}
	if patch.IsScreenSharing != nil {
		c.events.ToRoom(roomID, ScreenShareToggleEvent{
			Type:            EventScreenShareToggle,
			UserID:          updated.ID,
			IsScreenSharing: updated.IsScreenSharing,
		}, updated.ConnectionID)
	}
	return &updated, nil
}

// Bind attaches a live connection to its participant and announces the
// arrival to the rest of the room. Returns a room snapshot for the roster
// reply; roster order is the room's join order.
func (c *Coordinator) Bind(ctx context.Context, roomID domain.RoomID, userID domain.UserID, connID string) (*domain.Room, error) {
	unlock := c.locks.lock(roomID)
	defer unlock()

	room, err := c.activeRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	p := room.Participant(userID)
	if p == nil {
		return nil, domain.ErrParticipantNotFound
	}
	p.ConnectionID = connID
	room.LastActivity = time.Now()
	if err := c.store.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.events.ToRoom(roomID, UserJoinedEvent{Type: EventUserJoined, Participant: *p}, connID)
	log.Info().Str("module", "app.coordinator").Str("room", string(roomID)).Str("user", p.Name).Msg("connection bound")
	return room, nil
}

// Leave is the single unbind path shared by leave-room, disconnect, and
// participant removal. If the departing participant is host and others
// remain, the earliest-joined remaining participant is promoted and a
// host-changed event broadcast; if nobody remains the room deactivates.
// Departures from an already-inactive room (the host closed it, the
// stragglers are still disconnecting) only strip the participant: no
// succession and no broadcasts after room-closed. A second call for the
// same participant finds nothing and is a no-op (ErrParticipantNotFound,
// no events).
func (c *Coordinator) Leave(ctx context.Context, roomID domain.RoomID, userID domain.UserID) (LeaveOutcome, error) {
	unlock := c.locks.lock(roomID)
	defer unlock()

	var out LeaveOutcome

	room, err := c.store.GetRoom(ctx, roomID)
	if err != nil {
		return out, err
	}
	p := room.Participant(userID)
	if p == nil {
		return out, domain.ErrParticipantNotFound
	}
	out.Removed = *p
	wasActive := room.IsActive

	if p.IsHost && wasActive {
		if next := room.NextHost(userID); next != nil {
			room.ChangeHost(next.ID)
			promoted := *next
			out.NewHost = &promoted
		} else {
			room.IsActive = false
			out.Deactivated = true
		}
	}

	room.RemoveParticipant(userID)
	if len(room.Participants) == 0 && room.IsActive {
		// A room with zero participants must not remain active.
		room.IsActive = false
		out.Deactivated = true
	}
	room.LastActivity = time.Now()
	if err := c.store.SaveRoom(ctx, room); err != nil {
		return LeaveOutcome{}, err
	}
	if err := c.store.DeleteUser(ctx, userID); err != nil {
		log.Warn().Err(err).Str("module", "app.coordinator").Str("user", string(userID)).Msg("user cleanup failed, reaper will retry")
	}

	if wasActive {
		if out.NewHost != nil {
			c.events.ToRoom(roomID, HostChangedEvent{
				Type:        EventHostChanged,
				NewHostID:   out.NewHost.ID,
				NewHostName: out.NewHost.Name,
			}, out.Removed.ConnectionID)
		}
		c.events.ToRoom(roomID, UserLeftEvent{
			Type:     EventUserLeft,
			UserID:   out.Removed.ID,
			UserName: out.Removed.Name,
		}, out.Removed.ConnectionID)
	}

	log.Info().Str("module", "app.coordinator").Str("room", string(roomID)).Str("user", out.Removed.Name).Bool("deactivated", out.Deactivated).Msg("participant left")
	return out, nil
}

// Kick removes a participant on behalf of the host. The target gets a
// terminal kicked event; the rest of the room (minus kicker and target)
// gets participant-kicked. Kicking the host is always forbidden.
func (c *Coordinator) Kick(ctx context.Context, roomID domain.RoomID, requesterID, targetID domain.UserID, reason string) (domain.Participant, error) {
	unlock := c.locks.lock(roomID)
	defer unlock()

	room, err := c.activeRoom(ctx, roomID)
	if err != nil {
		return domain.Participant{}, err
	}
	requester := room.Participant(requesterID)
	if requester == nil || !requester.IsHost {
		return domain.Participant{}, fmt.Errorf("%w: only host can kick participants", domain.ErrForbidden)
	}
	target := room.Participant(targetID)
	if target == nil {
		return domain.Participant{}, domain.ErrParticipantNotFound
	}
	if target.IsHost {
		return domain.Participant{}, fmt.Errorf("%w: cannot kick host", domain.ErrForbidden)
	}

	// Copy before RemoveParticipant shifts the slice under the pointers.
	requesterConn := requester.ConnectionID
	removed := *target
	room.RemoveParticipant(targetID)
	room.LastActivity = time.Now()
	if err := c.store.SaveRoom(ctx, room); err != nil {
		return domain.Participant{}, err
	}
	if err := c.store.DeleteUser(ctx, targetID); err != nil {
		log.Warn().Err(err).Str("module", "app.coordinator").Str("user", string(targetID)).Msg("user cleanup failed, reaper will retry")
	}

	if reason == "" {
		reason = "You have been removed from the room"
	}
	if removed.ConnectionID != "" {
		c.events.ToConn(removed.ConnectionID, KickedEvent{Type: EventKicked, Reason: reason})
	}
	c.events.ToRoom(roomID, ParticipantKickedEvent{
		Type:            EventParticipantKicked,
		UserID:          removed.ID,
		ParticipantName: removed.Name,
	}, requesterConn, removed.ConnectionID)

	log.Info().Str("module", "app.coordinator").Str("room", string(roomID)).Str("user", removed.Name).Msg("participant kicked")
	return removed, nil
}

// ChangeHost reassigns the host role to an existing participant. Reports
// false when the target is not a current participant; idempotent for the
// already-current host.
func (c *Coordinator) ChangeHost(ctx context.Context, roomID domain.RoomID, newHostID domain.UserID) (bool, error) {
	unlock := c.locks.lock(roomID)
	defer unlock()

	room, err := c.activeRoom(ctx, roomID)
	if err != nil {
		return false, err
	}
	if !room.ChangeHost(newHostID) {
		return false, nil
	}
	room.LastActivity = time.Now()
	if err := c.store.SaveRoom(ctx, room); err != nil {
		return false, err
	}

	c.events.ToRoom(roomID, HostChangedEvent{
		Type:        EventHostChanged,
		NewHostID:   room.HostID,
		NewHostName: room.HostName,
	})
	return true, nil
}

// IsHost is the single host-authorization predicate: false when the room
// or participant is absent or the room is inactive.
func (c *Coordinator) IsHost(ctx context.Context, roomID domain.RoomID, userID domain.UserID) bool {
	room, err := c.activeRoom(ctx, roomID)
	if err != nil {
		return false
	}
	p := room.Participant(userID)
	return p != nil && p.IsHost
}
