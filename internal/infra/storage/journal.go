package storage

import (
	"context"
	"time"

	"github.com/MRamiBalles/Drifting/server/internal/events"
	"github.com/MRamiBalles/Drifting/server/internal/platform/metrics"
)

// JournalPersister adapts a JournalRepository to events.EventPersister so
// a game's narration lands in the store as it is written.
type JournalPersister struct {
	repo    JournalRepository
	gameID  string
	metrics *metrics.Collector
	timeout time.Duration
}

// NewJournalPersister writes gameID's events to repo. m may be nil.
func NewJournalPersister(repo JournalRepository, gameID string, m *metrics.Collector) *JournalPersister {
	return &JournalPersister{repo: repo, gameID: gameID, metrics: m, timeout: 2 * time.Second}
}

// Append implements events.EventPersister.
func (p *JournalPersister) Append(event events.GameEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	err := p.repo.Append(ctx, JournalEntry{
		ID:        event.ID,
		GameID:    p.gameID,
		Timestamp: event.Timestamp,
		EventType: string(event.Type),
		ActorID:   event.ActorID,
		TargetID:  event.TargetID,
		Message:   event.Message,
	})
	if p.metrics != nil {
		p.metrics.RecordJournalWrite(err)
	}
	return err
}
