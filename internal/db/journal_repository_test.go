package db_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/horde/internal/db"
	"github.com/udisondev/horde/internal/model"
	"github.com/udisondev/horde/internal/testutil"
)

func TestJournalRepository_InsertAndLoad(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewJournalRepository(pool)
	ctx := testutil.Context(t)

	events := []db.CombatEvent{
		{Kind: db.EventAttack, AttackerID: 0x20000001, TargetID: 0x10000001, Damage: 20,
			Position: model.NewVec3(1, 2, 0), SimTime: 100 * time.Millisecond},
		{Kind: db.EventAttack, AttackerID: 0x20000001, TargetID: 0x10000001, Damage: 20,
			Position: model.NewVec3(1, 2, 0), SimTime: 600 * time.Millisecond},
		{Kind: db.EventSurvivorDeath, TargetID: 0x10000001,
			Position: model.NewVec3(1.5, 2, 0), SimTime: 2100 * time.Millisecond},
	}
	require.NoError(t, repo.InsertBatch(ctx, events))
	require.NoError(t, repo.InsertBatch(ctx, nil), "empty batch is a no-op")

	attacks, err := repo.CountByKind(ctx, db.EventAttack)
	require.NoError(t, err)
	assert.Equal(t, int64(2), attacks)

	deaths, err := repo.CountByKind(ctx, db.EventZombieDeath)
	require.NoError(t, err)
	assert.Zero(t, deaths)

	recent, err := repo.LoadRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	assert.Equal(t, db.EventSurvivorDeath, recent[0].Kind, "newest first")
	assert.Equal(t, uint32(0x10000001), recent[0].TargetID)
	assert.Equal(t, 2100*time.Millisecond, recent[0].SimTime)
	assert.Equal(t, model.NewVec3(1.5, 2, 0), recent[0].Position)
	assert.False(t, recent[0].RecordedAt.IsZero())

	assert.Equal(t, db.EventAttack, recent[1].Kind)
	assert.Equal(t, uint32(0x20000001), recent[1].AttackerID)
	assert.Equal(t, 20.0, recent[1].Damage)
}

func TestJournal_WritesThroughRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewJournalRepository(pool)
	journal := db.NewJournal(repo, 2, 50*time.Millisecond)

	ctx, cancel := testutil.ContextWithCancel(t)
	done := make(chan error, 1)
	go func() { done <- journal.Run(ctx) }()

	for i := range 5 {
		require.True(t, journal.Record(db.CombatEvent{
			Kind:    db.EventAttack,
			SimTime: time.Duration(i) * time.Second,
		}))
	}

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, int64(5), journal.Written())

	count, err := repo.CountByKind(testutil.ContextWithTimeout(t, 10*time.Second), db.EventAttack)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
