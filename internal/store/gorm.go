package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
)

// roomRecord is the gorm mapping of domain.Room. The participant sequence
// persists as a JSON column; it is small, always read and written whole,
// and its order is load-bearing (host succession).
type roomRecord struct {
	ID           string               `gorm:"primaryKey"`
	HostID       string               `gorm:"index"`
	HostName     string               ``
	Participants []domain.Participant `gorm:"serializer:json"`
	CreatedAt    time.Time            ``
	LastActivity time.Time            `gorm:"index"`
	IsActive     bool                 `gorm:"index"`
}

func (roomRecord) TableName() string { return "rooms" }

type userRecord struct {
	ID          string `gorm:"primaryKey"`
	Name        string ``
	CurrentRoom string ``
	LastSeen    time.Time
}

func (userRecord) TableName() string { return "users" }

// GormStore is the durable Store backed by PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

// OpenGorm connects to postgres and migrates the schema.
func OpenGorm(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&roomRecord{}, &userRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func toRoomRecord(r *domain.Room) *roomRecord {
	return &roomRecord{
		ID:           string(r.ID),
		HostID:       string(r.HostID),
		HostName:     r.HostName,
		Participants: r.Participants,
		CreatedAt:    r.CreatedAt,
		LastActivity: r.LastActivity,
		IsActive:     r.IsActive,
	}
}

func fromRoomRecord(rec *roomRecord) *domain.Room {
	return &domain.Room{
		ID:           domain.RoomID(rec.ID),
		HostID:       domain.UserID(rec.HostID),
		HostName:     rec.HostName,
		Participants: rec.Participants,
		CreatedAt:    rec.CreatedAt,
		LastActivity: rec.LastActivity,
		IsActive:     rec.IsActive,
	}
}

func (s *GormStore) GetRoom(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	var rec roomRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", string(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	return fromRoomRecord(&rec), nil
}

func (s *GormStore) SaveRoom(ctx context.Context, room *domain.Room) error {
	if err := s.db.WithContext(ctx).Save(toRoomRecord(room)).Error; err != nil {
		return fmt.Errorf("save room: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteRoom(ctx context.Context, id domain.RoomID) error {
	if err := s.db.WithContext(ctx).Delete(&roomRecord{}, "id = ?", string(id)).Error; err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}

func (s *GormStore) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	var recs []roomRecord
	if err := s.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	out := make([]*domain.Room, 0, len(recs))
	for i := range recs {
		out = append(out, fromRoomRecord(&recs[i]))
	}
	return out, nil
}

func (s *GormStore) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var rec userRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", string(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &domain.User{
		ID:          domain.UserID(rec.ID),
		Name:        rec.Name,
		CurrentRoom: domain.RoomID(rec.CurrentRoom),
		LastSeen:    rec.LastSeen,
	}, nil
}

func (s *GormStore) SaveUser(ctx context.Context, user *domain.User) error {
	rec := &userRecord{
		ID:          string(user.ID),
		Name:        user.Name,
		CurrentRoom: string(user.CurrentRoom),
		LastSeen:    user.LastSeen,
	}
	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteUser(ctx context.Context, id domain.UserID) error {
	if err := s.db.WithContext(ctx).Delete(&userRecord{}, "id = ?", string(id)).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
