package domain

import "time"

// User is the global identity record mirroring participant membership: it
// is created when someone joins a room through the control plane and must
// be deleted when they leave, are kicked, or their room is torn down. A
// user with no matching participant in any active room is a dangling state
// the reaper eventually corrects.
type User struct {
	ID          UserID    `json:"id"`
	Name        string    `json:"name"`
	CurrentRoom RoomID    `json:"currentRoom,omitempty"`
	LastSeen    time.Time `json:"lastSeen"`
}

// NewUser avoids ad-hoc struct literals in the coordinator.
func NewUser(id UserID, name string, room RoomID, now time.Time) *User {
	return &User{ID: id, Name: name, CurrentRoom: room, LastSeen: now}
}
