// Package session hosts one simulation: it owns the tick timer and
// serializes every tick and player action on the game state.
package session

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MRamiBalles/Drifting/server/internal/domain/world"
	"github.com/MRamiBalles/Drifting/server/internal/engine"
	"github.com/MRamiBalles/Drifting/server/internal/platform/logger"
)

// Publisher receives a snapshot after every change. Publish is called with
// the session locked and must not block for long.
type Publisher interface {
	Publish(snap engine.Snapshot)
}

// Session is the game loop heartbeat for a single State.
type Session struct {
	mu        sync.Mutex
	engine    *engine.Engine
	state     *engine.State
	interval  time.Duration
	logger    *logger.Logger
	publisher Publisher

	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates a session ticking st every interval.
func New(eng *engine.Engine, st *engine.State, interval time.Duration, log *logger.Logger) *Session {
	return &Session{
		engine:   eng,
		state:    st,
		interval: interval,
		logger:   log,
		stopChan: make(chan struct{}),
	}
}

// SetPublisher installs p; nil disables publishing.
func (s *Session) SetPublisher(p Publisher) {
	s.mu.Lock()
	s.publisher = p
	s.mu.Unlock()
}

// Run ticks until ctx is done or Stop is called. Call in a goroutine.
func (s *Session) Run(ctx context.Context) {
	s.logger.Info(fmt.Sprintf("Session started, ticking every %s", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Session stopped by context.")
			return
		case <-s.stopChan:
			s.logger.Info("Session stopped manually.")
			return
		case <-ticker.C:
			snap := s.Tick()
			s.logger.Event("TICK", "SYSTEM", fmt.Sprintf("Day %d %02d:00, %s units traveled",
				snap.Day, snap.Hour, humanize.Commaf(math.Round(snap.Distance))))
		}
	}
}

// Stop ends Run. Safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// apply runs fn and publishes the resulting snapshot, both under the lock,
// so publishers see snapshots one at a time and in tick order. Publishers
// must not call back into the session.
func (s *Session) apply(fn func(eng *engine.Engine, st *engine.State)) engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.engine, s.state)
	snap := s.engine.Snapshot(s.state)
	if s.publisher != nil {
		s.publisher.Publish(snap)
	}
	return snap
}

// Tick advances the simulation once.
func (s *Session) Tick() engine.Snapshot {
	return s.apply(func(eng *engine.Engine, st *engine.State) {
		eng.Tick(st)
	})
}

// ToggleTravel switches between traveling and resting.
func (s *Session) ToggleTravel() engine.Snapshot {
	return s.apply(func(eng *engine.Engine, st *engine.State) {
		eng.ToggleTravel(st)
	})
}

// Select focuses a member or passerby.
func (s *Session) Select(id string) engine.Snapshot {
	return s.apply(func(eng *engine.Engine, st *engine.State) {
		eng.Select(st, id)
	})
}

// Interact resolves an action against a passerby.
func (s *Session) Interact(action engine.Action, id string) engine.Snapshot {
	return s.apply(func(eng *engine.Engine, st *engine.State) {
		eng.Interact(st, action, id)
	})
}

// TravelTo sets out for a neighboring city.
func (s *Session) TravelTo(city string) engine.Snapshot {
	return s.apply(func(eng *engine.Engine, st *engine.State) {
		eng.TravelTo(st, city)
	})
}

// Dismiss sends a companion away.
func (s *Session) Dismiss(id string) engine.Snapshot {
	return s.apply(func(eng *engine.Engine, st *engine.State) {
		eng.Dismiss(st, id)
	})
}

// Map returns the world map. It never changes after the engine is built.
func (s *Session) Map() *world.Graph {
	return s.engine.Map()
}

// AddNames extends the generator's name pool between ticks.
func (s *Session) AddNames(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Generator().AddNames(names...)
}

// AddGenders extends the generator's gender pool between ticks.
func (s *Session) AddGenders(genders ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Generator().AddGenders(genders...)
}

// Snapshot returns the current state without changing it.
func (s *Session) Snapshot() engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot(s.state)
}
