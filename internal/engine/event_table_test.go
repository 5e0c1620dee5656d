package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MRamiBalles/Drifting/server/internal/domain/item"
	"github.com/MRamiBalles/Drifting/server/internal/events"
	"github.com/MRamiBalles/Drifting/server/internal/platform/clock"
	"github.com/MRamiBalles/Drifting/server/internal/platform/logger"
	"github.com/MRamiBalles/Drifting/server/internal/platform/random"
)

func TestResolveBands(t *testing.T) {
	cases := map[float64]string{
		0.0:  "forage",
		0.2:  "forage",
		0.3:  "abandoned_cart",
		0.32: "abandoned_cart",
		0.35: "",
		0.9:  "",
	}
	for draw, want := range cases {
		table, err := NewEventTable(random.NewSequence(draw), DefaultEvents()...)
		require.NoError(t, err)
		var items item.Inventory
		log := events.NewEventLog(clock.NewManual(epoch), nil, logger.NewDiscard())

		got := table.Resolve(&items, log)

		assert.Equal(t, want, got, "draw %v", draw)
		if want == "" {
			assert.Zero(t, log.Len(), "draw %v", draw)
		} else {
			assert.Equal(t, 1, log.Len(), "draw %v", draw)
		}
	}
}

func TestResolveDrawsOncePerCall(t *testing.T) {
	seq := random.NewSequence(0.9)
	table, err := NewEventTable(seq, DefaultEvents()...)
	require.NoError(t, err)
	var items item.Inventory
	log := events.NewEventLog(clock.NewManual(epoch), nil, logger.NewDiscard())

	table.Resolve(&items, log)
	table.Resolve(&items, log)

	assert.Equal(t, 2, seq.Draws())
}

func TestRegisterValidatesThresholds(t *testing.T) {
	noop := func(*item.Inventory, *events.EventLog) {}
	table, err := NewEventTable(random.NewSequence())
	require.NoError(t, err)

	require.NoError(t, table.Register(WorldEvent{Name: "a", Threshold: 0.1, Effect: noop}))
	assert.ErrorIs(t, table.Register(WorldEvent{Name: "b", Threshold: 0.1, Effect: noop}), ErrThresholdOrder)
	assert.ErrorIs(t, table.Register(WorldEvent{Name: "c", Threshold: 1.5, Effect: noop}), ErrThresholdOrder)
	assert.Error(t, table.Register(WorldEvent{Name: "d", Threshold: 0.5}))
	require.NoError(t, table.Register(WorldEvent{Name: "e", Threshold: 1, Effect: noop}))

	assert.Equal(t, []string{"a", "e"}, table.Events())
}
