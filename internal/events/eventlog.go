// Package events provides the narration journal of a simulation.
// It is an append-only log: the engine and party actions write to it, the
// display layer and the storage sink read it, and no game logic reads it
// back.
package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MRamiBalles/Drifting/server/internal/platform/clock"
	"github.com/MRamiBalles/Drifting/server/internal/platform/logger"
)

// EventType defines the category of a journal entry.
type EventType string

const (
	EventTypeTravelStarted    EventType = "TRAVEL_STARTED"
	EventTypeRestStarted      EventType = "REST_STARTED"
	EventTypeDeparture        EventType = "DEPARTURE"
	EventTypeArrival          EventType = "ARRIVAL"
	EventTypeWorldEvent       EventType = "WORLD_EVENT"
	EventTypePasserbyAppeared EventType = "PASSERBY_APPEARED"
	EventTypePasserbyTalk     EventType = "PASSERBY_TALK"
	EventTypePasserbyAttack   EventType = "PASSERBY_ATTACK"
	EventTypeInviteAccepted   EventType = "INVITE_ACCEPTED"
	EventTypeInviteRefused    EventType = "INVITE_REFUSED"
	EventTypeMemberDismissed  EventType = "MEMBER_DISMISSED"
	EventTypeRationsShort     EventType = "RATIONS_SHORT"
	EventTypeActionIgnored    EventType = "ACTION_IGNORED"
)

// ActorSystem marks entries written by the simulation itself.
const ActorSystem = "SYSTEM"

// GameEvent is one immutable line of narration.
type GameEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	ActorID   string    `json:"actor_id"`
	TargetID  string    `json:"target_id,omitempty"`
	Message   string    `json:"message"`
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event GameEvent) error
}

// EventLog is the in-memory append-only journal. It is not safe for
// concurrent use; the owning session serializes access.
type EventLog struct {
	events    []GameEvent
	clock     clock.Clock
	persister EventPersister
	logger    *logger.Logger
}

// NewEventLog creates an event log. persister may be nil.
func NewEventLog(clk clock.Clock, persister EventPersister, log *logger.Logger) *EventLog {
	return &EventLog{
		events:    make([]GameEvent, 0),
		clock:     clk,
		persister: persister,
		logger:    log,
	}
}

// Append adds a new event to the log. A failing persister is logged and
// never blocks the append.
func (el *EventLog) Append(event GameEvent) {
	if event.ID == "" {
		event.ID = GenerateEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = el.clock.Now()
	}
	el.events = append(el.events, event)

	if el.persister != nil {
		if err := el.persister.Append(event); err != nil {
			el.logger.Warn(fmt.Sprintf("journal write failed for %s: %v", event.ID, err))
		}
	}
}

// Narrate appends a line written by actorID about targetID.
func (el *EventLog) Narrate(t EventType, actorID, targetID, message string) {
	el.Append(GameEvent{
		Type:     t,
		ActorID:  actorID,
		TargetID: targetID,
		Message:  message,
	})
}

// Len returns the number of entries.
func (el *EventLog) Len() int {
	return len(el.events)
}

// Replay returns a copy of the full history.
func (el *EventLog) Replay() []GameEvent {
	out := make([]GameEvent, len(el.events))
	copy(out, el.events)
	return out
}

// Since returns a copy of the entries from index i on.
func (el *EventLog) Since(i int) []GameEvent {
	if i < 0 {
		i = 0
	}
	if i >= len(el.events) {
		return nil
	}
	out := make([]GameEvent, len(el.events)-i)
	copy(out, el.events[i:])
	return out
}

// Narration returns the messages in order.
func (el *EventLog) Narration() []string {
	lines := make([]string, len(el.events))
	for i, e := range el.events {
		lines[i] = e.Message
	}
	return lines
}

// GetByType returns all events of type t.
func (el *EventLog) GetByType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range el.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// GenerateEventID creates a unique event identifier.
func GenerateEventID() string {
	return uuid.NewString()
}
