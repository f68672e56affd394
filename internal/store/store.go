// Package store persists Room and User records. The coordinator only ever
// talks to the Store interface, so its logic is testable without a real
// database.
package store

import (
	"context"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
)

// Store is the persistence boundary. Absence of a record is reported as
// domain.ErrRoomNotFound / domain.ErrUserNotFound; anything else is a
// storage failure and the mutation must be treated as not applied.
type Store interface {
	GetRoom(ctx context.Context, id domain.RoomID) (*domain.Room, error)
	SaveRoom(ctx context.Context, room *domain.Room) error
	DeleteRoom(ctx context.Context, id domain.RoomID) error
	ListRooms(ctx context.Context) ([]*domain.Room, error)

	GetUser(ctx context.Context, id domain.UserID) (*domain.User, error)
	SaveUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id domain.UserID) error
}
