// Package domain contains the persisted entities and the pure logic over
// them. Nothing here touches transport or storage.
package domain

import "time"

type (
	RoomID string
	UserID string
)

// Participant is a room-scoped membership record, distinct from the global
// User identity. Embedded in Room, never stored on its own.
type Participant struct {
	ID     UserID `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
	// ConnectionID is a weak back-reference owned by the relay; it never
	// implies ownership of the connection itself and is not exposed on the
	// wire.
	ConnectionID    string    `json:"-"`
	JoinedAt        time.Time `json:"joinedAt"`
	IsAudioMuted    bool      `json:"isAudioMuted"`
	IsVideoEnabled  bool      `json:"isVideoEnabled"`
	IsScreenSharing bool      `json:"isScreenSharing"`
}

// Room is a bounded real-time session: one host, zero or more other
// participants, ordered by join time.
type Room struct {
	ID           RoomID        `json:"id"`
	HostID       UserID        `json:"hostId"`
	HostName     string        `json:"hostName"`
	Participants []Participant `json:"participants"`
	CreatedAt    time.Time     `json:"createdAt"`
	LastActivity time.Time     `json:"lastActivity"`
	IsActive     bool          `json:"isActive"`
}

// StatusPatch is a partial update to a participant's mutable flags.
// Structural fields (id, isHost) are deliberately absent.
type StatusPatch struct {
	IsAudioMuted    *bool
	IsVideoEnabled  *bool
	IsScreenSharing *bool
	ConnectionID    *string
}

// NewHostParticipant builds the initial host entry for a fresh room.
// Hosts start unmuted with video enabled; everyone else joins muted with
// video off (see NewParticipant).
func NewHostParticipant(id UserID, name string, now time.Time) Participant {
	return Participant{
		ID:             id,
		Name:           name,
		IsHost:         true,
		JoinedAt:       now,
		IsAudioMuted:   false,
		IsVideoEnabled: true,
	}
}

// NewParticipant builds a non-host entry with the default media flags:
// audio muted, video disabled, screen share off.
func NewParticipant(id UserID, name string, now time.Time) Participant {
	return Participant{
		ID:           id,
		Name:         name,
		JoinedAt:     now,
		IsAudioMuted: true,
	}
}

// Participant returns a pointer into the room's sequence, or nil.
func (r *Room) Participant(id UserID) *Participant {
	for i := range r.Participants {
		if r.Participants[i].ID == id {
			return &r.Participants[i]
		}
	}
	return nil
}

// RemoveParticipant drops the participant from the sequence, preserving
// join order for the rest. Reports whether anything was removed.
func (r *Room) RemoveParticipant(id UserID) bool {
	for i := range r.Participants {
		if r.Participants[i].ID == id {
			r.Participants = append(r.Participants[:i], r.Participants[i+1:]...)
			return true
		}
	}
	return false
}

// NextHost selects the successor when the current host departs: the
// earliest-joined remaining participant, excluding the departing one.
// Participants are kept in join order, so the first match wins. Returns
// nil when nobody remains.
func (r *Room) NextHost(departing UserID) *Participant {
	for i := range r.Participants {
		p := &r.Participants[i]
		if p.ID == departing || p.IsHost {
			continue
		}
		return p
	}
	return nil
}

// ChangeHost clears isHost on every participant and sets it on the target,
// keeping hostId/hostName in sync. Reports false if the target is not a
// current participant; calling it with the already-current host is a no-op
// that still reports true.
func (r *Room) ChangeHost(newHostID UserID) bool {
	target := r.Participant(newHostID)
	if target == nil {
		return false
	}
	for i := range r.Participants {
		r.Participants[i].IsHost = false
	}
	target.IsHost = true
	r.HostID = target.ID
	r.HostName = target.Name
	return true
}

// ApplyStatus applies a patch to the participant's mutable flags.
func (p *Participant) ApplyStatus(patch StatusPatch) {
	if patch.IsAudioMuted != nil {
		p.IsAudioMuted = *patch.IsAudioMuted
	}
	if patch.IsVideoEnabled != nil {
		p.IsVideoEnabled = *patch.IsVideoEnabled
	}
	if patch.IsScreenSharing != nil {
		p.IsScreenSharing = *patch.IsScreenSharing
	}
	if patch.ConnectionID != nil {
		p.ConnectionID = *patch.ConnectionID
	}
}
