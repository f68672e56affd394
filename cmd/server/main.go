package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/HarshitBamotra/StreamSync-Backend/internal/adapters/http"
	signalws "github.com/HarshitBamotra/StreamSync-Backend/internal/adapters/signal"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/app"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/config"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/ident"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var st store.Store
	if cfg.DatabaseURL != "" {
		gs, err := store.OpenGorm(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open database")
		}
		st = gs
		log.Info().Msg("using postgres store")
	} else {
		st = store.NewMemoryStore()
		log.Info().Msg("using in-memory store")
	}

	ids := ident.UUIDSource{}
	registry := app.NewRegistry()
	coord := app.NewCoordinator(st, ids, signalws.NewRegistrySink(registry))

	ctl := signalws.NewController(coord, registry, ids)
	ctl.ReadLimit = cfg.ReadLimit
	ctl.PingPeriod = cfg.PingPeriod
	ctl.SendBuffer = cfg.SendBuffer

	r := router.SetupRouter(ctx, cfg, coord, ctl)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// The reaper policy lives in app; only the trigger lives here.
	reaper := app.NewReaper(st, cfg.IdleThreshold)
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				reaper.Sweep(ctx)
			}
		}
	}()

	go func() {
		log.Info().Str("addr", addr).Msg("StreamSync server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
