package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/store"
)

// DefaultIdleThreshold matches the default sweep interval: a room silent
// for half an hour is gone.
const DefaultIdleThreshold = 30 * time.Minute

// Reaper owns the purge policy for stale rooms: anything inactive, or idle
// past Threshold, is deleted together with its participants' user records.
// The sweep trigger (ticker, cron, whatever) lives with the caller.
type Reaper struct {
	Store     store.Store
	Threshold time.Duration
}

func NewReaper(st store.Store, threshold time.Duration) *Reaper {
	if threshold <= 0 {
		threshold = DefaultIdleThreshold
	}
	return &Reaper{Store: st, Threshold: threshold}
}

// Sweep is best effort: a failure on one room never aborts the sweep of
// the others. Returns how many rooms were reaped.
func (r *Reaper) Sweep(ctx context.Context) int {
	rooms, err := r.Store.ListRooms(ctx)
	if err != nil {
		log.Error().Err(err).Str("module", "app.reaper").Msg("list rooms failed")
		return 0
	}

	cutoff := time.Now().Add(-r.Threshold)
	reaped := 0
	for _, room := range rooms {
		if room.IsActive && room.LastActivity.After(cutoff) {
			continue
		}
		for _, p := range room.Participants {
			if err := r.Store.DeleteUser(ctx, p.ID); err != nil {
				log.Warn().Err(err).Str("module", "app.reaper").Str("user", string(p.ID)).Msg("user delete failed")
			}
		}
		if err := r.Store.DeleteRoom(ctx, room.ID); err != nil {
			log.Warn().Err(err).Str("module", "app.reaper").Str("room", string(room.ID)).Msg("room delete failed")
			continue
		}
		reaped++
		log.Info().Str("module", "app.reaper").Str("room", string(room.ID)).Msg("reaped inactive room")
	}
	if reaped > 0 {
		log.Info().Str("module", "app.reaper").Int("count", reaped).Msg("sweep complete")
	}
	return reaped
}
