package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MRamiBalles/Drifting/server/internal/domain/character"
	"github.com/MRamiBalles/Drifting/server/internal/domain/party"
	"github.com/MRamiBalles/Drifting/server/internal/domain/world"
	"github.com/MRamiBalles/Drifting/server/internal/events"
	"github.com/MRamiBalles/Drifting/server/internal/platform/clock"
	"github.com/MRamiBalles/Drifting/server/internal/platform/config"
	"github.com/MRamiBalles/Drifting/server/internal/platform/logger"
	"github.com/MRamiBalles/Drifting/server/internal/platform/metrics"
	"github.com/MRamiBalles/Drifting/server/internal/platform/random"
)

var epoch = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, rng random.Source) (*Engine, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(epoch)
	e, err := NewEngine(config.Default(), Deps{
		Clock:   clk,
		Random:  rng,
		Logger:  logger.NewDiscard(),
		Metrics: metrics.New(),
	})
	require.NoError(t, err)
	return e, clk
}

func walker(id string) *character.Character {
	return &character.Character{
		ID:           id,
		Name:         id,
		WalkingSpeed: 70,
		RidingSpeed:  120,
		Vitals:       character.FullVitals(),
	}
}

// newTestState builds a resting one-member party at the start city without
// drawing from the engine's source.
func newTestState(clk clock.Clock) *State {
	team := party.NewTeam("Test", walker("player"), 4)
	team.Location = world.DefaultStart
	now := clk.Now()
	return &State{
		Team:          team,
		Log:           events.NewEventLog(clk, nil, logger.NewDiscard()),
		Now:           now,
		LastTickAt:    now,
		RestStartedAt: now,
	}
}

func addPasserby(st *State, id string, expires time.Time) {
	st.Passersby = append(st.Passersby, character.Passerby{Character: walker(id), ExpiresAt: expires})
}

func newTestClock() *clock.Manual {
	return clock.NewManual(epoch)
}
