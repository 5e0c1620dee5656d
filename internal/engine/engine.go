// Package engine advances the road simulation: a traveling or resting
// party, the strangers it meets and what happens along the way.
//
// The engine is synchronous and holds no locks. Callers own a *State and
// must not tick it concurrently with any other operation on it.
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MRamiBalles/Drifting/server/internal/domain/character"
	"github.com/MRamiBalles/Drifting/server/internal/domain/item"
	"github.com/MRamiBalles/Drifting/server/internal/domain/party"
	"github.com/MRamiBalles/Drifting/server/internal/domain/world"
	"github.com/MRamiBalles/Drifting/server/internal/events"
	"github.com/MRamiBalles/Drifting/server/internal/platform/clock"
	"github.com/MRamiBalles/Drifting/server/internal/platform/config"
	"github.com/MRamiBalles/Drifting/server/internal/platform/logger"
	"github.com/MRamiBalles/Drifting/server/internal/platform/metrics"
	"github.com/MRamiBalles/Drifting/server/internal/platform/random"
)

// DefaultTeamName names a new party.
const DefaultTeamName = "Drifters"

// Deps are the engine's collaborators. Nil fields get production defaults.
type Deps struct {
	Clock     clock.Clock
	Random    random.Source
	Map       *world.Graph
	Logger    *logger.Logger
	Metrics   *metrics.Collector
	Persister events.EventPersister
	Events    []WorldEvent
}

// Engine is the central orchestrator wiring the sub-systems to a State.
type Engine struct {
	cfg       config.Config
	clock     clock.Clock
	rng       random.Source
	worldMap  *world.Graph
	logger    *logger.Logger
	metrics   *metrics.Collector
	persister events.EventPersister

	// Sub-systems
	generator  *Generator
	eventTable *EventTable
	passersby  *PasserbySystem
	metabolism *MetabolismSystem
}

// NewEngine validates cfg and builds the sub-systems.
func NewEngine(cfg config.Config, deps Deps) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	e := &Engine{
		cfg:       cfg,
		clock:     deps.Clock,
		rng:       deps.Random,
		worldMap:  deps.Map,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		persister: deps.Persister,
	}
	if e.clock == nil {
		e.clock = clock.RealClock{}
	}
	if e.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			var err error
			if seed, err = random.NewSeed(); err != nil {
				return nil, fmt.Errorf("engine seed: %w", err)
			}
		}
		e.rng = random.New(seed)
	}
	if e.worldMap == nil {
		e.worldMap = world.DefaultMap()
	}
	if e.logger == nil {
		e.logger = logger.NewLogger()
	}
	if e.metrics == nil {
		e.metrics = metrics.Get()
	}

	evs := deps.Events
	if evs == nil {
		evs = DefaultEvents()
	}
	table, err := NewEventTable(e.rng, evs...)
	if err != nil {
		return nil, fmt.Errorf("engine events: %w", err)
	}

	e.generator = NewGenerator(cfg, e.rng)
	e.eventTable = table
	e.passersby = NewPasserbySystem(cfg, e.rng, e.generator)
	e.metabolism = NewMetabolismSystem(cfg)
	return e, nil
}

// Map exposes the world map.
func (e *Engine) Map() *world.Graph {
	return e.worldMap
}

// Generator exposes the character generator so content can extend its pools.
func (e *Engine) Generator() *Generator {
	return e.generator
}

// RegisterEvent appends a road event after the existing ones.
func (e *Engine) RegisterEvent(ev WorldEvent) error {
	return e.eventTable.Register(ev)
}

// NewState starts a game: the player and two companions resting at the
// starting city with a random supply of each item.
func (e *Engine) NewState(playerName string) *State {
	player := e.generator.Generate()
	if playerName != "" {
		player.Name = playerName
	}

	team := party.NewTeam(DefaultTeamName, player, e.cfg.TeamCapacity)
	for i := 0; i < 2; i++ {
		team.AddMember(e.generator.Generate())
	}
	for _, t := range item.StartingTypes {
		team.Items.Add(t, random.IntRange(e.rng, e.cfg.ItemCountMin, e.cfg.ItemCountMax))
	}
	if _, ok := e.worldMap.Cities[world.DefaultStart]; ok {
		team.Location = world.DefaultStart
	}

	now := e.clock.Now()
	st := &State{
		Team:       team,
		Log:        events.NewEventLog(e.clock, e.persister, e.logger),
		Now:        now,
		LastTickAt: now,
	}
	st.RestStartedAt = now
	st.Log.Narrate(events.EventTypeRestStarted, player.ID, "",
		fmt.Sprintf("%s and %d companions make camp at %s.", player.Name, len(team.Members)-1, locationName(team.Location)))
	e.logger.Info(fmt.Sprintf("New game for %s at %s", player.Name, locationName(team.Location)))
	return st
}

// Tick applies one step of the current mode.
func (e *Engine) Tick(st *State) {
	start := time.Now()

	now := e.clock.Now()
	st.Now = now
	st.LastTickAt = now
	st.Ticks++
	day := st.Day()
	st.GameHours += e.cfg.HoursPerTick

	if st.Team.Traveling {
		e.travelTick(st, now, st.Day() != day)
	} else {
		e.metabolism.OnRestTick(st.Team.Members)
	}

	e.metrics.RecordTick(time.Since(start))
}

func (e *Engine) travelTick(st *State, now time.Time, newDay bool) {
	speed := st.Team.Speed()
	st.Team.Distance += speed

	e.metabolism.OnTravelTick(st.Team.Members)
	if newDay {
		e.consumeRations(st)
	}

	if name := e.eventTable.Resolve(&st.Team.Items, st.Log); name != "" {
		e.metrics.RecordWorldEvent()
		e.logger.Event(string(events.EventTypeWorldEvent), events.ActorSystem, name)
	}

	var spawned *character.Passerby
	st.Passersby, spawned = e.passersby.Tick(now, st.Passersby)
	st.reconcileSelection()
	if spawned != nil {
		c := spawned.Character
		e.metrics.RecordPasserbySpawn()
		st.Log.Narrate(events.EventTypePasserbyAppeared, events.ActorSystem, c.ID,
			fmt.Sprintf("%s, a %d-year-old traveler, appears on the road.", c.Name, c.Age))
	}

	e.advanceJourney(st, speed)
}

// consumeRations feeds the party at the turn of a game day.
func (e *Engine) consumeRations(st *State) {
	for _, t := range e.metabolism.ConsumeRations(st.Team.Members, &st.Team.Items) {
		msg := fmt.Sprintf("The party runs out of %s on day %d and spirits sink.", t, st.Day())
		e.logger.Warn(msg)
		st.Log.Narrate(events.EventTypeRationsShort, events.ActorSystem, "", msg)
	}
}

// advanceJourney moves toward the destination, if any, and makes camp on
// arrival.
func (e *Engine) advanceJourney(st *State, speed float64) {
	team := st.Team
	if team.Destination == "" {
		return
	}
	team.Remaining -= speed
	if team.Remaining > 0 {
		return
	}

	arrived := team.Destination
	team.Location = arrived
	team.Destination = ""
	team.Remaining = 0
	st.Log.Narrate(events.EventTypeArrival, events.ActorSystem, "",
		fmt.Sprintf("The party arrives at %s, %s units from where it set out.", arrived, units(team.Distance)))
	e.setTraveling(st, false)
}

// ToggleTravel switches between traveling and resting.
func (e *Engine) ToggleTravel(st *State) {
	e.setTraveling(st, !st.Team.Traveling)
}

// setTraveling changes mode and freezes passersby while resting. Going to
// rest pushes expirations past the next tick boundary; resuming pushes them
// by the time spent resting.
func (e *Engine) setTraveling(st *State, traveling bool) {
	if st.Team.Traveling == traveling {
		return
	}
	now := e.clock.Now()
	st.Now = now
	player := st.Team.Player()

	if traveling {
		if !st.RestStartedAt.IsZero() {
			e.passersby.Compensate(st.Passersby, now.Sub(st.RestStartedAt))
		}
		st.RestStartedAt = time.Time{}
		st.Team.Traveling = true
		st.Log.Narrate(events.EventTypeTravelStarted, player.ID, "",
			fmt.Sprintf("%s breaks camp and the party takes to the road.", player.Name))
		return
	}

	e.passersby.Compensate(st.Passersby, e.untilNextTick(st, now))
	st.RestStartedAt = now
	st.Team.Traveling = false
	st.Log.Narrate(events.EventTypeRestStarted, player.ID, "",
		fmt.Sprintf("%s calls a halt and the party rests.", player.Name))
}

// untilNextTick is the time left before the next tick boundary, clamped to
// [0, interval].
func (e *Engine) untilNextTick(st *State, now time.Time) time.Duration {
	interval := e.cfg.TickInterval
	if st.LastTickAt.IsZero() {
		return interval
	}
	left := interval - now.Sub(st.LastTickAt)
	if left < 0 {
		return 0
	}
	if left > interval {
		return interval
	}
	return left
}

// TravelTo sets out for a neighboring city. It reports whether the party
// departed.
func (e *Engine) TravelTo(st *State, city string) bool {
	team := st.Team
	player := team.Player()

	if team.Destination != "" {
		e.ignore(st, player.ID, fmt.Sprintf("The party is already bound for %s.", team.Destination))
		return false
	}
	if !e.worldMap.Connected(team.Location, city) {
		e.ignore(st, player.ID, fmt.Sprintf("No road leads from %s to %s.", locationName(team.Location), city))
		return false
	}
	dist, err := e.worldMap.Distance(team.Location, city)
	if err != nil {
		e.ignore(st, player.ID, fmt.Sprintf("The way to %s is unknown.", city))
		return false
	}

	team.Destination = city
	team.Remaining = dist
	st.Log.Narrate(events.EventTypeDeparture, player.ID, "",
		fmt.Sprintf("The party sets out from %s toward %s, %s units away.", team.Location, city, units(dist)))
	e.setTraveling(st, true)
	return true
}

// ignore records a rejected request without changing state.
func (e *Engine) ignore(st *State, actorID, reason string) {
	e.logger.Warn(reason)
	st.Log.Narrate(events.EventTypeActionIgnored, actorID, "", reason)
}

func locationName(city string) string {
	if city == "" {
		return "the open road"
	}
	return city
}

// units renders a distance rounded to whole world units.
func units(v float64) string {
	return humanize.Commaf(math.Round(v))
}
