package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/app"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/store"
)

func seedRoom(t *testing.T, st *store.MemoryStore, id domain.RoomID, active bool, lastActivity time.Time) {
	t.Helper()
	ctx := context.Background()
	userID := domain.UserID("user-" + id)
	require.NoError(t, st.SaveRoom(ctx, &domain.Room{
		ID:           id,
		HostID:       userID,
		Participants: []domain.Participant{domain.NewHostParticipant(userID, "Host", lastActivity)},
		CreatedAt:    lastActivity,
		LastActivity: lastActivity,
		IsActive:     active,
	}))
	require.NoError(t, st.SaveUser(ctx, domain.NewUser(userID, "Host", id, lastActivity)))
}

func TestReaper_Sweep(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	now := time.Now()

	seedRoom(t, st, "fresh", true, now)
	seedRoom(t, st, "idle", true, now.Add(-time.Hour))
	seedRoom(t, st, "inactive", false, now)

	r := app.NewReaper(st, 30*time.Minute)
	assert.Equal(t, 2, r.Sweep(ctx))

	// The fresh active room survives, with its user record.
	_, err := st.GetRoom(ctx, "fresh")
	assert.NoError(t, err)
	_, err = st.GetUser(ctx, "user-fresh")
	assert.NoError(t, err)

	// Idle and inactive rooms are gone along with their users.
	for _, id := range []domain.RoomID{"idle", "inactive"} {
		_, err = st.GetRoom(ctx, id)
		assert.ErrorIs(t, err, domain.ErrRoomNotFound)
		_, err = st.GetUser(ctx, domain.UserID("user-"+id))
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	}

	// Second sweep finds nothing.
	assert.Equal(t, 0, r.Sweep(ctx))
}

func TestReaper_DefaultThreshold(t *testing.T) {
	r := app.NewReaper(store.NewMemoryStore(), 0)
	assert.Equal(t, app.DefaultIdleThreshold, r.Threshold)
}

func TestReaper_EmptyStore(t *testing.T) {
	r := app.NewReaper(store.NewMemoryStore(), time.Minute)
	assert.Equal(t, 0, r.Sweep(context.Background()))
}
