package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
)

func testRoom() *domain.Room {
	now := time.Now()
	return &domain.Room{
		ID:       "room-1",
		HostID:   "alice",
		HostName: "Alice",
		Participants: []domain.Participant{
			domain.NewHostParticipant("alice", "Alice", now),
			domain.NewParticipant("bob", "Bob", now.Add(time.Second)),
			domain.NewParticipant("carol", "Carol", now.Add(2*time.Second)),
		},
		CreatedAt:    now,
		LastActivity: now,
		IsActive:     true,
	}
}

func TestDefaultMediaFlags(t *testing.T) {
	now := time.Now()

	host := domain.NewHostParticipant("h", "Host", now)
	assert.True(t, host.IsHost)
	assert.False(t, host.IsAudioMuted)
	assert.True(t, host.IsVideoEnabled)
	assert.False(t, host.IsScreenSharing)

	joiner := domain.NewParticipant("j", "Joiner", now)
	assert.False(t, joiner.IsHost)
	assert.True(t, joiner.IsAudioMuted)
	assert.False(t, joiner.IsVideoEnabled)
	assert.False(t, joiner.IsScreenSharing)
}

func TestNextHost_EarliestJoinedWins(t *testing.T) {
	room := testRoom()

	next := room.NextHost("alice")
	require.NotNil(t, next)
	assert.Equal(t, domain.UserID("bob"), next.ID)
}

func TestNextHost_NobodyLeft(t *testing.T) {
	room := testRoom()
	room.Participants = room.Participants[:1]

	assert.Nil(t, room.NextHost("alice"))
}

func TestChangeHost(t *testing.T) {
	room := testRoom()

	require.True(t, room.ChangeHost("bob"))
	assert.Equal(t, domain.UserID("bob"), room.HostID)
	assert.Equal(t, "Bob", room.HostName)

	hosts := 0
	for _, p := range room.Participants {
		if p.IsHost {
			hosts++
			assert.Equal(t, domain.UserID("bob"), p.ID)
		}
	}
	assert.Equal(t, 1, hosts)
}

func TestChangeHost_UnknownTarget(t *testing.T) {
	room := testRoom()

	assert.False(t, room.ChangeHost("mallory"))
	assert.Equal(t, domain.UserID("alice"), room.HostID)
}

func TestChangeHost_CurrentHostIsNoop(t *testing.T) {
	room := testRoom()

	require.True(t, room.ChangeHost("alice"))
	assert.Equal(t, domain.UserID("alice"), room.HostID)
	assert.True(t, room.Participants[0].IsHost)
}

func TestRemoveParticipant_KeepsJoinOrder(t *testing.T) {
	room := testRoom()

	require.True(t, room.RemoveParticipant("bob"))
	require.Len(t, room.Participants, 2)
	assert.Equal(t, domain.UserID("alice"), room.Participants[0].ID)
	assert.Equal(t, domain.UserID("carol"), room.Participants[1].ID)

	assert.False(t, room.RemoveParticipant("bob"))
}

func TestApplyStatus_PartialPatch(t *testing.T) {
	p := domain.NewParticipant("bob", "Bob", time.Now())

	muted := false
	p.ApplyStatus(domain.StatusPatch{IsAudioMuted: &muted})
	assert.False(t, p.IsAudioMuted)
	assert.False(t, p.IsVideoEnabled, "untouched flags stay put")

	sharing := true
	conn := "conn-1"
	p.ApplyStatus(domain.StatusPatch{IsScreenSharing: &sharing, ConnectionID: &conn})
	assert.True(t, p.IsScreenSharing)
	assert.Equal(t, "conn-1", p.ConnectionID)
	assert.False(t, p.IsAudioMuted)
}
