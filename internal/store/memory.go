package store

import (
	"context"
	"sync"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
)

// MemoryStore keeps rooms and users in mutex-guarded maps. It hands out
// deep copies so callers can mutate freely and nothing is applied until
// SaveRoom/SaveUser.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*domain.Room
	users map[domain.UserID]*domain.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[domain.RoomID]*domain.Room),
		users: make(map[domain.UserID]*domain.User),
	}
}

func copyRoom(r *domain.Room) *domain.Room {
	out := *r
	out.Participants = make([]domain.Participant, len(r.Participants))
	copy(out.Participants, r.Participants)
	return &out
}

func (s *MemoryStore) GetRoom(_ context.Context, id domain.RoomID) (*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return copyRoom(room), nil
}

func (s *MemoryStore) SaveRoom(_ context.Context, room *domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = copyRoom(room)
	return nil
}

func (s *MemoryStore) DeleteRoom(_ context.Context, id domain.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
	return nil
}

func (s *MemoryStore) ListRooms(_ context.Context) ([]*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, copyRoom(r))
	}
	return out, nil
}

func (s *MemoryStore) GetUser(_ context.Context, id domain.UserID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *MemoryStore) SaveUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[user.ID] = &u
	return nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, id domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}
