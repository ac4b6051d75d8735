package sim

import (
	"slices"
	"time"
)

// FrameFunc is called once per simulation frame with the frame step.
type FrameFunc func(dt time.Duration)

// Task is a scheduled recurring or one-shot job.
type Task struct {
	seq      uint64
	next     time.Duration
	interval time.Duration // 0 for one-shot
	cond     func() bool   // nil means always
	fn       func()
	stopped  bool
}

// Stop cancels the task. Safe to call from inside the task itself.
func (t *Task) Stop() {
	t.stopped = true
}

// Stopped reports whether the task was cancelled or finished.
func (t *Task) Stopped() bool {
	return t.stopped
}

// Next returns the simulation time of the next run.
func (t *Task) Next() time.Duration {
	return t.next
}

type frameEntry struct {
	id uint64
	fn FrameFunc
}

// Scheduler drives the simulation cooperatively: frame callbacks run every Advance,
// periodic tasks run when their due time passes. Nothing blocks; a task "waits"
// by being rescheduled.
//
// Not thread-safe: Advance and every registration must happen on the loop goroutine.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	frames []frameEntry
	tasks  []*Task
	frame  uint64
}

// NewScheduler creates a scheduler at simulation time 0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns current simulation time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Frame returns number of frames advanced so far.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// OnFrame registers a per-frame callback. Callbacks run in registration order.
// The returned function unregisters it.
func (s *Scheduler) OnFrame(fn FrameFunc) (cancel func()) {
	s.seq++
	id := s.seq
	s.frames = append(s.frames, frameEntry{id: id, fn: fn})
	return func() {
		s.frames = slices.DeleteFunc(s.frames, func(e frameEntry) bool { return e.id == id })
	}
}

// Every runs fn now and then every interval while cond holds.
// cond is checked at the top of each recurrence (including the first); once it
// returns false the task stops for good. The next run is scheduled interval after
// the run that just happened, so a slow frame never causes a burst of catch-up runs.
func (s *Scheduler) Every(interval time.Duration, cond func() bool, fn func()) *Task {
	s.seq++
	t := &Task{
		seq:      s.seq,
		next:     s.now,
		interval: max(interval, time.Nanosecond),
		cond:     cond,
		fn:       fn,
	}
	if s.run(t) {
		s.tasks = append(s.tasks, t)
	}
	return t
}

// After runs fn once, delay after now.
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	s.seq++
	t := &Task{
		seq:  s.seq,
		next: s.now + max(delay, 0),
		fn:   fn,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves simulation time forward by dt, runs frame callbacks, then runs
// due tasks in due-time order (registration order on ties).
func (s *Scheduler) Advance(dt time.Duration) {
	s.now += dt
	s.frame++

	for _, e := range slices.Clone(s.frames) {
		e.fn(dt)
	}

	due := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.stopped && t.next <= s.now {
			due = append(due, t)
		}
	}
	slices.SortFunc(due, func(a, b *Task) int {
		if a.next != b.next {
			if a.next < b.next {
				return -1
			}
			return 1
		}
		if a.seq < b.seq {
			return -1
		}
		return 1
	})

	for _, t := range due {
		s.run(t)
	}

	s.tasks = slices.DeleteFunc(s.tasks, func(t *Task) bool { return t.stopped })
}

// run executes one recurrence. Returns false if the task is finished.
func (s *Scheduler) run(t *Task) bool {
	if t.stopped {
		return false
	}
	if t.cond != nil && !t.cond() {
		t.stopped = true
		return false
	}

	t.fn()

	if t.interval == 0 {
		t.stopped = true
		return false
	}
	if !t.stopped {
		t.next = s.now + t.interval
	}
	return !t.stopped
}

// PendingTasks returns number of live tasks.
func (s *Scheduler) PendingTasks() int {
	n := 0
	for _, t := range s.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}
