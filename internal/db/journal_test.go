package db

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInserter struct {
	mu      sync.Mutex
	batches [][]CombatEvent
	err     error
	flushed chan int
}

func newFakeInserter() *fakeInserter {
	return &fakeInserter{flushed: make(chan int, 16)}
}

func (f *fakeInserter) InsertBatch(_ context.Context, events []CombatEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushed <- len(events)
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, append([]CombatEvent(nil), events...))
	return nil
}

func (f *fakeInserter) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func waitFlush(t *testing.T, f *fakeInserter) int {
	t.Helper()
	select {
	case n := <-f.flushed:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("no flush")
		return 0
	}
}

func startJournal(t *testing.T, j *Journal) (cancel func() error) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()
	t.Cleanup(stop)
	return func() error {
		stop()
		return <-done
	}
}

func TestJournal_FlushesOnBatchSize(t *testing.T) {
	f := newFakeInserter()
	j := NewJournal(f, 3, time.Hour)
	stop := startJournal(t, j)

	for range 3 {
		require.True(t, j.Record(CombatEvent{Kind: EventAttack}))
	}

	assert.Equal(t, 3, waitFlush(t, f))
	require.NoError(t, stop())
	assert.Equal(t, int64(3), j.Written())
}

func TestJournal_FlushesOnInterval(t *testing.T) {
	f := newFakeInserter()
	j := NewJournal(f, 100, 20*time.Millisecond)
	stop := startJournal(t, j)

	j.Record(CombatEvent{Kind: EventZombieDeath, TargetID: 7})

	assert.Equal(t, 1, waitFlush(t, f))
	require.NoError(t, stop())

	require.Len(t, f.batches, 1)
	assert.Equal(t, uint32(7), f.batches[0][0].TargetID)
	assert.False(t, f.batches[0][0].RecordedAt.IsZero(), "Record stamps wall time")
}

func TestJournal_FinalFlushOnShutdown(t *testing.T) {
	f := newFakeInserter()
	j := NewJournal(f, 100, time.Hour)

	for range 4 {
		j.Record(CombatEvent{Kind: EventAttack})
	}

	stop := startJournal(t, j)
	require.NoError(t, stop())

	assert.Equal(t, 4, f.total())
	assert.Equal(t, int64(4), j.Written())
}

func TestJournal_DropsWhenFull(t *testing.T) {
	f := newFakeInserter()
	j := NewJournal(f, 1, time.Hour) // buffer of 4, nobody draining

	accepted := 0
	for range 10 {
		if j.Record(CombatEvent{Kind: EventAttack}) {
			accepted++
		}
	}

	assert.Equal(t, 4, accepted)
	assert.Equal(t, int64(6), j.Dropped())
}

func TestJournal_WriteErrorCounted(t *testing.T) {
	f := newFakeInserter()
	f.err = errors.New("connection refused")
	j := NewJournal(f, 2, time.Hour)
	stop := startJournal(t, j)

	j.Record(CombatEvent{Kind: EventAttack})
	j.Record(CombatEvent{Kind: EventAttack})

	assert.Equal(t, 2, waitFlush(t, f))
	require.NoError(t, stop())
	assert.Equal(t, int64(2), j.Failed())
	assert.Zero(t, j.Written())
}

func TestNewJournal_Defaults(t *testing.T) {
	j := NewJournal(newFakeInserter(), 0, 0)

	assert.Equal(t, defaultBatchSize, j.batchSize)
	assert.Equal(t, defaultFlushInterval, j.flushInterval)
	assert.Equal(t, defaultBatchSize*4, cap(j.events))
}
