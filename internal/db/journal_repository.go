package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/horde/internal/model"
)

// EventKind classifies combat journal rows.
type EventKind string

const (
	// EventAttack is a successful zombie strike.
	EventAttack EventKind = "attack"
	// EventZombieDeath is a zombie reaching zero health.
	EventZombieDeath EventKind = "zombie_death"
	// EventSurvivorDeath is a survivor reaching zero health.
	EventSurvivorDeath EventKind = "survivor_death"
)

// CombatEvent is one row of the combat journal.
type CombatEvent struct {
	ID         int64
	Kind       EventKind
	AttackerID uint32
	TargetID   uint32
	Damage     float64
	Position   model.Vec3
	SimTime    time.Duration // millisecond precision in storage
	RecordedAt time.Time
}

// JournalRepository handles combat_events persistence.
type JournalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new journal repository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: pool}
}

// InsertBatch writes events with a single COPY.
func (r *JournalRepository) InsertBatch(ctx context.Context, events []CombatEvent) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(events))
	for _, ev := range events {
		recordedAt := ev.RecordedAt
		if recordedAt.IsZero() {
			recordedAt = time.Now()
		}
		rows = append(rows, []any{
			string(ev.Kind),
			int64(ev.AttackerID),
			int64(ev.TargetID),
			ev.Damage,
			ev.Position.X, ev.Position.Y, ev.Position.Z,
			ev.SimTime.Milliseconds(),
			recordedAt,
		})
	}

	n, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"combat_events"},
		[]string{"kind", "attacker_id", "target_id", "damage", "x", "y", "z", "sim_time_ms", "recorded_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting %d combat events: %w", len(events), err)
	}

	slog.Debug("combat events written", "count", n)
	return nil
}

// CountByKind returns number of journal rows of kind.
func (r *JournalRepository) CountByKind(ctx context.Context, kind EventKind) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM combat_events WHERE kind = $1`, string(kind),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting %s events: %w", kind, err)
	}
	return count, nil
}

// LoadRecent returns up to limit most recent events, newest first.
func (r *JournalRepository) LoadRecent(ctx context.Context, limit int) ([]CombatEvent, error) {
	query := `
		SELECT id, kind, attacker_id, target_id, damage, x, y, z, sim_time_ms, recorded_at
		FROM combat_events
		ORDER BY id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("loading recent combat events: %w", err)
	}
	defer rows.Close()

	events := make([]CombatEvent, 0, limit)
	for rows.Next() {
		var (
			ev                   CombatEvent
			kind                 string
			attackerID, targetID int64
			simTimeMs            int64
		)
		if err := rows.Scan(&ev.ID, &kind, &attackerID, &targetID, &ev.Damage,
			&ev.Position.X, &ev.Position.Y, &ev.Position.Z, &simTimeMs, &ev.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning combat event row: %w", err)
		}
		ev.Kind = EventKind(kind)
		ev.AttackerID = uint32(attackerID)
		ev.TargetID = uint32(targetID)
		ev.SimTime = time.Duration(simTimeMs) * time.Millisecond
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating combat event rows: %w", err)
	}

	return events, nil
}
