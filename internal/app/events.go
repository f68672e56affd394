package app

import "github.com/HarshitBamotra/StreamSync-Backend/internal/domain"

// EventSink is how the coordinator pushes events to bound connections.
// Implementations must not block: the coordinator calls the sink while
// holding the room's mutation lock so that every connection observes
// broadcasts in mutation order. The signal adapter implements it with
// buffered, non-blocking per-connection sends.
type EventSink interface {
	// ToRoom delivers v to every connection bound to the room except the
	// listed connection ids.
	ToRoom(roomID domain.RoomID, v any, exclude ...string)
	// ToConn delivers v to a single connection, if it is still live.
	ToConn(connID string, v any)
}

// NopSink discards everything. Used when the coordinator runs without a
// relay (pure state-machine tests).
type NopSink struct{}

func (NopSink) ToRoom(domain.RoomID, any, ...string) {}
func (NopSink) ToConn(string, any)                   {}

// Outbound event names shared by coordinator and relay.
const (
	EventUserJoined        = "user-joined"
	EventRoomParticipants  = "room-participants"
	EventHostChanged       = "host-changed"
	EventUserLeft          = "user-left"
	EventRoomClosed        = "room-closed"
	EventKicked            = "kicked"
	EventParticipantKicked = "participant-kicked"
	EventKickSuccess       = "kick-success"
	EventChatMessage       = "chat-message"
	EventAudioToggle       = "participant-audio-toggle"
	EventVideoToggle       = "participant-video-toggle"
	EventScreenShareToggle = "participant-screen-share-toggle"
	EventError             = "error"
)

type UserJoinedEvent struct {
	Type        string             `json:"type"`
	Participant domain.Participant `json:"participant"`
}

type HostChangedEvent struct {
	Type        string        `json:"type"`
	NewHostID   domain.UserID `json:"newHostId"`
	NewHostName string        `json:"newHostName"`
}

type UserLeftEvent struct {
	Type     string        `json:"type"`
	UserID   domain.UserID `json:"userId"`
	UserName string        `json:"userName"`
}

type RoomClosedEvent struct {
	Type   string        `json:"type"`
	RoomID domain.RoomID `json:"roomId"`
	Reason string        `json:"reason"`
}

type KickedEvent struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type ParticipantKickedEvent struct {
	Type            string        `json:"type"`
	UserID          domain.UserID `json:"userId"`
	ParticipantName string        `json:"participantName"`
}

type AudioToggleEvent struct {
	Type         string        `json:"type"`
	UserID       domain.UserID `json:"userId"`
	IsAudioMuted bool          `json:"isAudioMuted"`
}

type VideoToggleEvent struct {
	Type           string        `json:"type"`
	UserID         domain.UserID `json:"userId"`
	IsVideoEnabled bool          `json:"isVideoEnabled"`
}

type ScreenShareToggleEvent struct {
	Type            string        `json:"type"`
	UserID          domain.UserID `json:"userId"`
	IsScreenSharing bool          `json:"isScreenSharing"`
}
