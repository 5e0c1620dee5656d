package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteJournalRepository implements JournalRepository for SQLite.
type SQLiteJournalRepository struct {
	db *sql.DB
}

func NewSQLiteJournalRepository(db *sql.DB) *SQLiteJournalRepository {
	return &SQLiteJournalRepository{db: db}
}

func (r *SQLiteJournalRepository) Append(ctx context.Context, entry JournalEntry) error {
	query := `
		INSERT INTO journal (id, game_id, timestamp, event_type, actor_id, target_id, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.GameID, entry.Timestamp.UnixNano(), entry.EventType,
		entry.ActorID, entry.TargetID, entry.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

func (r *SQLiteJournalRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var ts int64
		if err := rows.Scan(&e.Seq, &e.ID, &e.GameID, &ts, &e.EventType, &e.ActorID, &e.TargetID, &e.Message); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.Timestamp = time.Unix(0, ts).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SQLiteJournalRepository) ListByGame(ctx context.Context, gameID string) ([]JournalEntry, error) {
	query := `SELECT seq, id, game_id, timestamp, event_type, actor_id, target_id, message FROM journal WHERE game_id = ? ORDER BY seq ASC`
	return r.getMany(ctx, query, gameID)
}

func (r *SQLiteJournalRepository) ListByType(ctx context.Context, gameID, eventType string) ([]JournalEntry, error) {
	query := `SELECT seq, id, game_id, timestamp, event_type, actor_id, target_id, message FROM journal WHERE game_id = ? AND event_type = ? ORDER BY seq ASC`
	return r.getMany(ctx, query, gameID, eventType)
}

// ---------------------------------------------------------
// SQLiteRosterRepository
// ---------------------------------------------------------

type SQLiteRosterRepository struct {
	db *sql.DB
}

func NewSQLiteRosterRepository(db *sql.DB) *SQLiteRosterRepository {
	return &SQLiteRosterRepository{db: db}
}

func (r *SQLiteRosterRepository) Upsert(ctx context.Context, snapshot MemberSnapshot) error {
	query := `
		INSERT INTO roster (character_id, game_id, name, satiety, hydration, stamina, mood, tick, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id, character_id) DO UPDATE SET
			name=excluded.name,
			satiety=excluded.satiety,
			hydration=excluded.hydration,
			stamina=excluded.stamina,
			mood=excluded.mood,
			tick=excluded.tick,
			last_updated=excluded.last_updated
	`
	updated := snapshot.LastUpdated
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err := r.db.ExecContext(ctx, query,
		snapshot.CharacterID, snapshot.GameID, snapshot.Name,
		snapshot.Satiety, snapshot.Hydration, snapshot.Stamina, snapshot.Mood,
		snapshot.Tick, updated.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert member %s: %w", snapshot.CharacterID, err)
	}
	return nil
}

func (r *SQLiteRosterRepository) GetByGameID(ctx context.Context, gameID string) ([]MemberSnapshot, error) {
	query := `SELECT character_id, game_id, name, satiety, hydration, stamina, mood, tick, last_updated FROM roster WHERE game_id = ? ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	var snaps []MemberSnapshot
	for rows.Next() {
		var p MemberSnapshot
		var updated int64
		if err := rows.Scan(&p.CharacterID, &p.GameID, &p.Name, &p.Satiety, &p.Hydration, &p.Stamina, &p.Mood, &p.Tick, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		p.LastUpdated = time.Unix(0, updated).UTC()
		snaps = append(snaps, p)
	}
	return snaps, rows.Err()
}
