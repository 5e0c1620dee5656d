// Package storage provides the persistence layer for the game server.
// This package implements the repository pattern to keep the domain pure.
package storage

import (
	"context"
	"time"
)

// JournalEntry mirrors one narration line for persistence.
// The domain package should NOT import this; use interfaces instead.
type JournalEntry struct {
	ID        string    `json:"id" db:"id"`
	GameID    string    `json:"game_id" db:"game_id"`
	Seq       int64     `json:"seq" db:"seq"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	EventType string    `json:"event_type" db:"event_type"`
	ActorID   string    `json:"actor_id" db:"actor_id"`
	TargetID  string    `json:"target_id" db:"target_id"`
	Message   string    `json:"message" db:"message"`
}

// JournalRepository stores the narration of each game. It is written by
// the running game and read only by operators and tools.
type JournalRepository interface {
	// Append adds a line to the journal; Seq is assigned by the store.
	Append(ctx context.Context, entry JournalEntry) error

	// ListByGame returns a game's journal in append order.
	ListByGame(ctx context.Context, gameID string) ([]JournalEntry, error)

	// ListByType returns a game's entries of one type in append order.
	ListByType(ctx context.Context, gameID, eventType string) ([]JournalEntry, error)
}

// MemberSnapshot is the latest known vitals of one party member.
type MemberSnapshot struct {
	CharacterID string    `json:"character_id" db:"character_id"`
	GameID      string    `json:"game_id" db:"game_id"`
	Name        string    `json:"name" db:"name"`
	Satiety     float64   `json:"satiety" db:"satiety"`
	Hydration   float64   `json:"hydration" db:"hydration"`
	Stamina     float64   `json:"stamina" db:"stamina"`
	Mood        float64   `json:"mood" db:"mood"`
	Tick        int64     `json:"tick" db:"tick"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}

// RosterRepository keeps the party roster readable from outside the
// process. Games never load their state from it.
type RosterRepository interface {
	// Upsert updates or inserts a member snapshot.
	Upsert(ctx context.Context, snapshot MemberSnapshot) error

	// GetByGameID retrieves all member snapshots for a game.
	GetByGameID(ctx context.Context, gameID string) ([]MemberSnapshot, error)
}
