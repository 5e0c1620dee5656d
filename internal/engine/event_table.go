package engine

import (
	"errors"
	"fmt"

	"github.com/MRamiBalles/Drifting/server/internal/domain/item"
	"github.com/MRamiBalles/Drifting/server/internal/events"
	"github.com/MRamiBalles/Drifting/server/internal/platform/random"
)

// ErrThresholdOrder is returned when event thresholds are not strictly
// increasing within (0,1].
var ErrThresholdOrder = errors.New("event thresholds must increase within (0,1]")

// WorldEvent is a statically registered road event. Threshold is
// cumulative: the event fires when the tick's draw is below it and below no
// earlier threshold.
type WorldEvent struct {
	Name      string
	Threshold float64
	Effect    func(items *item.Inventory, log *events.EventLog)
}

// DefaultEvents is the built-in table.
func DefaultEvents() []WorldEvent {
	return []WorldEvent{
		{
			Name:      "forage",
			Threshold: 0.30,
			Effect: func(items *item.Inventory, log *events.EventLog) {
				items.Add(item.ItemFood, 1)
				log.Narrate(events.EventTypeWorldEvent, events.ActorSystem, "", "The party forages wild berries along the road. (+1 food)")
			},
		},
		{
			Name:      "abandoned_cart",
			Threshold: 0.35,
			Effect: func(items *item.Inventory, log *events.EventLog) {
				items.Add(item.ItemWeapon, 1)
				log.Narrate(events.EventTypeWorldEvent, events.ActorSystem, "", "An abandoned cart lies in the ditch; a rusty blade is still inside. (+1 weapon)")
			},
		},
	}
}

// EventTable selects at most one event per tick by banded draw.
type EventTable struct {
	rng    random.Source
	events []WorldEvent
}

// NewEventTable validates the ordering invariant of evs.
func NewEventTable(rng random.Source, evs ...WorldEvent) (*EventTable, error) {
	t := &EventTable{rng: rng}
	for _, ev := range evs {
		if err := t.Register(ev); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Register appends ev after the last event. Its threshold must exceed the
// last one.
func (t *EventTable) Register(ev WorldEvent) error {
	last := 0.0
	if n := len(t.events); n > 0 {
		last = t.events[n-1].Threshold
	}
	if ev.Threshold <= last || ev.Threshold > 1 {
		return fmt.Errorf("register %q at %v after %v: %w", ev.Name, ev.Threshold, last, ErrThresholdOrder)
	}
	if ev.Effect == nil {
		return fmt.Errorf("register %q: nil effect", ev.Name)
	}
	t.events = append(t.events, ev)
	return nil
}

// Events returns the registered names in order.
func (t *EventTable) Events() []string {
	names := make([]string, len(t.events))
	for i, ev := range t.events {
		names[i] = ev.Name
	}
	return names
}

// Resolve draws once and applies the first event whose threshold lies
// above the draw. It returns the fired event's name, or "" if none fired.
func (t *EventTable) Resolve(items *item.Inventory, log *events.EventLog) string {
	r := t.rng.Float64()
	for _, ev := range t.events {
		if r < ev.Threshold {
			ev.Effect(items, log)
			return ev.Name
		}
	}
	return ""
}
