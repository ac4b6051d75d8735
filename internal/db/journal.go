package db

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// EventInserter persists a batch of combat events. Implemented by JournalRepository.
type EventInserter interface {
	InsertBatch(ctx context.Context, events []CombatEvent) error
}

const (
	defaultBatchSize     = 256
	defaultFlushInterval = time.Second
	writeTimeout         = 5 * time.Second
)

// Journal buffers combat events from the simulation loop and writes them in batches
// from its own goroutine. Record never blocks the loop: when the buffer is full the
// event is dropped and counted.
type Journal struct {
	inserter      EventInserter
	events        chan CombatEvent
	batchSize     int
	flushInterval time.Duration

	written atomic.Int64
	dropped atomic.Int64
	failed  atomic.Int64
}

// NewJournal creates a journal writer. Non-positive settings fall back to defaults.
func NewJournal(inserter EventInserter, batchSize int, flushInterval time.Duration) *Journal {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if flushInterval <= 0 {
		flushInterval = defaultFlushInterval
	}
	return &Journal{
		inserter:      inserter,
		events:        make(chan CombatEvent, batchSize*4),
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
}

// Record enqueues ev. Returns false if the buffer was full and ev was dropped.
func (j *Journal) Record(ev CombatEvent) bool {
	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = time.Now()
	}
	select {
	case j.events <- ev:
		return true
	default:
		if j.dropped.Add(1) == 1 {
			slog.Warn("combat journal buffer full, dropping events", "capacity", cap(j.events))
		}
		return false
	}
}

// Run writes batches until ctx is cancelled, then flushes what is buffered.
// Writes are not cancelled with ctx; each one is bounded by writeTimeout.
// Write errors are logged and the batch is discarded; Run keeps going.
func (j *Journal) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.flushInterval)
	defer ticker.Stop()

	writeCtx := context.WithoutCancel(ctx)
	batch := make([]CombatEvent, 0, j.batchSize)

	slog.Info("combat journal started", "batchSize", j.batchSize, "flushInterval", j.flushInterval)

	for {
		select {
		case <-ctx.Done():
			j.flush(writeCtx, j.drain(batch))
			slog.Info("combat journal stopped",
				"written", j.written.Load(),
				"dropped", j.dropped.Load(),
				"failed", j.failed.Load())
			return nil

		case ev := <-j.events:
			batch = append(batch, ev)
			if len(batch) >= j.batchSize {
				j.flush(writeCtx, batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				j.flush(writeCtx, batch)
				batch = batch[:0]
			}
		}
	}
}

// Written returns number of events persisted.
func (j *Journal) Written() int64 {
	return j.written.Load()
}

// Dropped returns number of events dropped because the buffer was full.
func (j *Journal) Dropped() int64 {
	return j.dropped.Load()
}

// Failed returns number of events lost to write errors.
func (j *Journal) Failed() int64 {
	return j.failed.Load()
}

func (j *Journal) drain(batch []CombatEvent) []CombatEvent {
	for {
		select {
		case ev := <-j.events:
			batch = append(batch, ev)
		default:
			return batch
		}
	}
}

func (j *Journal) flush(ctx context.Context, batch []CombatEvent) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := j.inserter.InsertBatch(ctx, batch); err != nil {
		j.failed.Add(int64(len(batch)))
		slog.Error("writing combat events", "count", len(batch), "error", err)
		return
	}
	j.written.Add(int64(len(batch)))
}
