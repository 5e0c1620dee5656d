// Package main is the entry point for the Drifting game server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MRamiBalles/Drifting/server/internal/engine"
	"github.com/MRamiBalles/Drifting/server/internal/infra/storage"
	"github.com/MRamiBalles/Drifting/server/internal/network"
	"github.com/MRamiBalles/Drifting/server/internal/platform/clock"
	"github.com/MRamiBalles/Drifting/server/internal/platform/config"
	"github.com/MRamiBalles/Drifting/server/internal/platform/logger"
	"github.com/MRamiBalles/Drifting/server/internal/platform/metrics"
	"github.com/MRamiBalles/Drifting/server/internal/session"
)

// rosterRecorder mirrors the party's vitals into the roster table after
// each tick. Snapshots older than the last recorded tick are dropped.
type rosterRecorder struct {
	repo   *storage.SQLiteRosterRepository
	gameID string
	logger *logger.Logger

	mu       sync.Mutex
	lastTick int64
}

func (r *rosterRecorder) Publish(snap engine.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if snap.Tick <= r.lastTick {
		return
	}
	r.lastTick = snap.Tick

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, m := range snap.Team {
		err := r.repo.Upsert(ctx, storage.MemberSnapshot{
			CharacterID: m.ID,
			GameID:      r.gameID,
			Name:        m.Name,
			Satiety:     m.Vitals.Satiety,
			Hydration:   m.Vitals.Hydration,
			Stamina:     m.Vitals.Stamina,
			Mood:        m.Vitals.Mood,
			Tick:        snap.Tick,
		})
		if err != nil {
			r.logger.Warn("Roster snapshot failed: " + err.Error())
		}
	}
}

// fanout publishes to several sinks in order.
type fanout []session.Publisher

func (f fanout) Publish(snap engine.Snapshot) {
	for _, p := range f {
		p.Publish(snap)
	}
}

func main() {
	appLogger := logger.NewLogger()
	if err := run(appLogger); err != nil {
		appLogger.Error(err.Error())
		os.Exit(1)
	}
}

func run(appLogger *logger.Logger) error {
	appLogger.Info("Initializing Drifting server...")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	appLogger.Info("Initializing SQLite journal " + cfg.JournalPath + "...")
	db, err := storage.InitSQLite(cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("init journal: %w", err)
	}
	defer db.Close()
	journalRepo := storage.NewSQLiteJournalRepository(db)
	rosterRepo := storage.NewSQLiteRosterRepository(db)
	collector := metrics.Get()

	appLogger.Info("Bootstrapping Engine Subsystems...")
	eng, err := engine.NewEngine(cfg, engine.Deps{
		Clock:     clock.RealClock{},
		Logger:    appLogger,
		Metrics:   collector,
		Persister: storage.NewJournalPersister(journalRepo, cfg.GameID, collector),
	})
	if err != nil {
		return err
	}
	state := eng.NewState(cfg.PlayerName)
	game := session.New(eng, state, cfg.TickInterval, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(game, appLogger, collector)
	go hub.Run(ctx)
	game.SetPublisher(fanout{hub, &rosterRecorder{repo: rosterRepo, gameID: cfg.GameID, logger: appLogger}})
	go game.Run(ctx)

	// Setup API Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", network.ServeWS(hub))
	network.NewAPI(game, journalRepo, cfg.GameID, appLogger).RegisterRoutes(mux)
	mux.HandleFunc("/metrics", collector.Handler())
	mux.HandleFunc("/metrics/prom", collector.PrometheusHandler())

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("HTTP API & WS Server listening on " + cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	appLogger.Info("Shutting down...")
	game.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("HTTP shutdown: " + err.Error())
	}

	snap := game.Snapshot()
	appLogger.Info(fmt.Sprintf("Session over after %s ticks, %s units traveled, up since %s",
		humanize.Comma(snap.Tick), humanize.Commaf(float64(int64(snap.Distance))), humanize.Time(collector.StartTime)))
	return nil
}
